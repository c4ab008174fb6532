package cmd

import (
	"fmt"
	"strconv"

	"github.com/dsakenov/minebudget/internal/cli"
	"github.com/dsakenov/minebudget/internal/ledger"
	"github.com/dsakenov/minebudget/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagSvcContractor string
	flagSvcStart      string
	flagSvcEnd        string
	flagSvcNote       string
	flagActStart      string
	flagActEnd        string
	flagActDate       string
	flagActNote       string
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage services/labor contracts and their acts",
	RunE:  runServicesList,
}

// requireServicesStore opens the store and checks the flavor, so
// services commands fail with a clear message on an invest file.
func requireServicesStore() (*ledger.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	flavor, err := store.DBType()
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if flavor != ledger.FlavorServices {
		_ = store.Close()
		return nil, fmt.Errorf("%s is an invest database; services commands need a services one", dataFilePath())
	}
	return store, nil
}

func runServicesList(_ *cobra.Command, _ []string) error {
	store, err := requireServicesStore()
	if err != nil {
		return err
	}
	defer store.Close()

	contracts, err := store.ListServiceContracts()
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		fmt.Println("\n  No service contracts yet.")
		return nil
	}

	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		totals, err := store.ServiceContractTotals(c.ID)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			cli.Truncate(c.Name, 30),
			fmt.Sprint(c.ID),
			cli.Truncate(c.Contractor, 20),
			cli.FormatMoney(totals.Total),
			cli.FormatMoney(totals.Spent),
			cli.FormatMoney(totals.Remaining),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Contract", "ID", "Contractor", "Total", "Spent", "Remaining"},
		Rows:    rows,
	}))
	return nil
}

var servicesAddCmd = &cobra.Command{
	Use:   "add <name> <total-amount>",
	Short: "Create a service contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		total, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		var start, end model.Date
		if flagSvcStart != "" {
			if start, err = model.ParseDate(flagSvcStart); err != nil {
				return err
			}
		}
		if flagSvcEnd != "" {
			if end, err = model.ParseDate(flagSvcEnd); err != nil {
				return err
			}
		}

		store, err := requireServicesStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.CreateServiceContract(model.ServiceContract{
			Name:        args[0],
			Contractor:  flagSvcContractor,
			TotalAmount: total,
			StartDate:   start,
			EndDate:     end,
			Note:        flagSvcNote,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Created service contract #%d %q\n", id, args[0])
		return nil
	},
}

var servicesRmCmd = &cobra.Command{
	Use:   "rm <contract-id>",
	Short: "Delete a service contract and its acts",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := requireServicesStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DeleteServiceContract(id)
	},
}

var servicesActsCmd = &cobra.Command{
	Use:   "acts <contract-id>",
	Short: "List a contract's acts and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := requireServicesStore()
		if err != nil {
			return err
		}
		defer store.Close()

		acts, err := store.ListServiceActs(id)
		if err != nil {
			return err
		}
		totals, err := store.ServiceContractTotals(id)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(acts))
		for _, a := range acts {
			period := string(a.PeriodStart)
			if a.PeriodEnd != "" {
				period += " - " + string(a.PeriodEnd)
			}
			rows = append(rows, []string{
				string(a.ActDate),
				fmt.Sprint(a.ID),
				period,
				cli.FormatMoney(a.Amount),
				cli.Truncate(a.Note, 30),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Act date", "ID", "Period", "Amount", "Note"},
			Rows:    rows,
		}))
		fmt.Printf("  Total %s, spent %s, remaining %s\n",
			cli.FormatMoney(totals.Total), cli.FormatMoney(totals.Spent), cli.FormatMoney(totals.Remaining))
		return nil
	},
}

var servicesActAddCmd = &cobra.Command{
	Use:   "act-add <contract-id> <amount>",
	Short: "Record a completed-work act against a contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		contractID, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		actDate, err := parseDateFlag(flagActDate)
		if err != nil {
			return err
		}
		periodStart := actDate
		if flagActStart != "" {
			if periodStart, err = model.ParseDate(flagActStart); err != nil {
				return err
			}
		}
		var periodEnd model.Date
		if flagActEnd != "" {
			if periodEnd, err = model.ParseDate(flagActEnd); err != nil {
				return err
			}
		}

		store, err := requireServicesStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.AddServiceAct(model.ServiceAct{
			ContractID:  contractID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			ActDate:     actDate,
			Amount:      amount,
			Note:        flagActNote,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Act #%d: %s against contract %d\n", id, cli.FormatMoney(amount), contractID)
		return nil
	},
}

var servicesActRmCmd = &cobra.Command{
	Use:   "act-rm <act-id>",
	Short: "Delete an act",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := requireServicesStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DeleteServiceAct(id)
	},
}

func init() {
	servicesAddCmd.Flags().StringVar(&flagSvcContractor, "contractor", "", "Contractor name")
	servicesAddCmd.Flags().StringVar(&flagSvcStart, "start", "", "Start date (YYYY-MM-DD)")
	servicesAddCmd.Flags().StringVar(&flagSvcEnd, "end", "", "End date (YYYY-MM-DD)")
	servicesAddCmd.Flags().StringVar(&flagSvcNote, "note", "", "Note")

	servicesActAddCmd.Flags().StringVar(&flagActDate, "date", "", "Act date (YYYY-MM-DD, default today)")
	servicesActAddCmd.Flags().StringVar(&flagActStart, "period-start", "", "Period start (default act date)")
	servicesActAddCmd.Flags().StringVar(&flagActEnd, "period-end", "", "Period end")
	servicesActAddCmd.Flags().StringVar(&flagActNote, "note", "", "Note")

	servicesCmd.AddCommand(servicesAddCmd, servicesRmCmd, servicesActsCmd, servicesActAddCmd, servicesActRmCmd)
	rootCmd.AddCommand(servicesCmd)
}
