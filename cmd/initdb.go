package cmd

import (
	"fmt"
	"os"

	"github.com/dsakenov/minebudget/internal/ledger"

	"github.com/spf13/cobra"
)

var flagInitType string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new budget database",
	RunE: func(_ *cobra.Command, _ []string) error {
		path := dataFilePath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; use --db to pick another path", path)
		}

		store, err := ledger.Create(path, ledger.Flavor(flagInitType))
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Printf("  Created %s database at %s\n", flagInitType, path)
		return nil
	},
}

var saveasCmd = &cobra.Command{
	Use:   "saveas <path>",
	Short: "Copy the active database to a new file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		next, err := store.SaveAs(args[0])
		if err != nil {
			return err
		}
		defer next.Close()

		fmt.Printf("  Saved copy to %s\n", next.Path())
		return nil
	},
}

var dbtypeCmd = &cobra.Command{
	Use:   "dbtype [invest|services]",
	Short: "Show or repair the database flavor tag",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 1 {
			if err := store.RepairDBType(ledger.Flavor(args[0])); err != nil {
				return err
			}
		}
		flavor, err := store.DBType()
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %s\n", store.Path(), flavor)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&flagInitType, "type", "t", string(ledger.FlavorInvest),
		"Database flavor: invest or services")
	rootCmd.AddCommand(initCmd, saveasCmd, dbtypeCmd)
}
