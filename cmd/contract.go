package cmd

import (
	"fmt"
	"strconv"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagCntDate       string
	flagCntNote       string
	flagCntFile       string
	flagCntContractor string
	flagCntBy         string
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Record, edit, or delete contracts",
}

var contractAddCmd = &cobra.Command{
	Use:   "add <project-id> <amount>",
	Short: "Record a committed contract amount",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		projectID, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		date, err := parseDateFlag(flagCntDate)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		storedPath := ""
		if flagCntFile != "" {
			if storedPath, err = store.CopyAttachment(flagCntFile, projectID); err != nil {
				return err
			}
		}

		id, err := store.RecordContract(projectID, amount, date, flagCntContractor, storedPath, flagCntNote, flagCntBy)
		if err != nil {
			return err
		}
		fmt.Printf("  Contract #%d: project %d committed %s\n", id, projectID, cli.FormatMoney(amount))
		return nil
	},
}

var contractEditCmd = &cobra.Command{
	Use:   "edit <contract-id> <amount>",
	Short: "Edit a contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		existing, err := store.GetContract(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("contract %d not found", id)
		}

		date := existing.Date
		if flagCntDate != "" {
			if date, err = parseDateFlag(flagCntDate); err != nil {
				return err
			}
		}
		note := existing.Note
		if flagCntNote != "" {
			note = flagCntNote
		}
		contractor := existing.Contractor
		if flagCntContractor != "" {
			contractor = flagCntContractor
		}
		filePath := existing.FilePath
		if flagCntFile != "" {
			if filePath, err = store.CopyAttachment(flagCntFile, existing.ProjectID); err != nil {
				return err
			}
		}
		return store.UpdateContract(id, amount, date, contractor, filePath, note)
	},
}

var contractRmCmd = &cobra.Command{
	Use:   "rm <contract-id>",
	Short: "Delete a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DeleteContract(id)
	},
}

var contractLastCmd = &cobra.Command{
	Use:   "last <project-id>",
	Short: "Show the latest contract for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		projectID, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		c, err := store.LastContract(projectID)
		if err != nil {
			return err
		}
		if c == nil {
			fmt.Println("  No contracts for this project.")
			return nil
		}
		fmt.Printf("  #%d  %s  %s  %s  %s\n", c.ID, c.Date, cli.FormatMoney(c.Amount), c.Contractor, c.Note)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{contractAddCmd, contractEditCmd} {
		c.Flags().StringVar(&flagCntDate, "date", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&flagCntNote, "note", "", "Note")
		c.Flags().StringVar(&flagCntFile, "file", "", "Attachment to copy into the data folder")
		c.Flags().StringVar(&flagCntContractor, "contractor", "", "Contractor name")
	}
	contractAddCmd.Flags().StringVar(&flagCntBy, "by", "", "Recorded-by override")

	contractCmd.AddCommand(contractAddCmd, contractEditCmd, contractRmCmd, contractLastCmd)
	rootCmd.AddCommand(contractCmd)
}
