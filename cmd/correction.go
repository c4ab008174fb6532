package cmd

import (
	"fmt"
	"strconv"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagCorrDate string
	flagCorrNote string
	flagCorrBy   string
)

var correctionCmd = &cobra.Command{
	Use:   "correction",
	Short: "Record, edit, or delete budget corrections",
}

var correctionAddCmd = &cobra.Command{
	Use:   "add <project-id> <new-budget>",
	Short: "Overwrite a project's base budget",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		projectID, err := parseID(args[0])
		if err != nil {
			return err
		}
		newBudget, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid budget %q", args[1])
		}
		date, err := parseDateFlag(flagCorrDate)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.RecordCorrection(projectID, newBudget, date, flagCorrNote, flagCorrBy)
		if err != nil {
			return err
		}
		fmt.Printf("  Correction #%d: project %d budget set to %s\n",
			id, projectID, cli.FormatMoney(newBudget))
		return nil
	},
}

var correctionEditCmd = &cobra.Command{
	Use:   "edit <correction-id> <new-budget>",
	Short: "Edit a correction (budget re-syncs to the latest by date)",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		newBudget, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid budget %q", args[1])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		existing, err := store.GetCorrection(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("correction %d not found", id)
		}

		date := existing.Date
		if flagCorrDate != "" {
			if date, err = parseDateFlag(flagCorrDate); err != nil {
				return err
			}
		}
		note := existing.Note
		if flagCorrNote != "" {
			note = flagCorrNote
		}
		return store.UpdateCorrection(id, newBudget, date, note)
	},
}

var correctionRmCmd = &cobra.Command{
	Use:   "rm <correction-id>",
	Short: "Delete a correction (the budget overwrite is not rolled back)",
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
		return store.DeleteCorrection(id)
	},
}

func init() {
	for _, c := range []*cobra.Command{correctionAddCmd, correctionEditCmd} {
		c.Flags().StringVar(&flagCorrDate, "date", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&flagCorrNote, "note", "", "Note")
	}
	correctionAddCmd.Flags().StringVar(&flagCorrBy, "by", "", "Recorded-by override")

	correctionCmd.AddCommand(correctionAddCmd, correctionEditCmd, correctionRmCmd)
	rootCmd.AddCommand(correctionCmd)
}
