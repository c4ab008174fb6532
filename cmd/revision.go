package cmd

import (
	"fmt"
	"strconv"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagRevDate string
	flagRevNote string
	flagRevBy   string
)

var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "Transfer funds between projects",
}

var revisionAddCmd = &cobra.Command{
	Use:   "add <source-id> <target-id> <amount>",
	Short: "Transfer available funds from source to target",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		sourceID, err := parseID(args[0])
		if err != nil {
			return err
		}
		targetID, err := parseID(args[1])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[2])
		}
		date, err := parseDateFlag(flagRevDate)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.RecordRevision(sourceID, targetID, amount, date, flagRevNote, flagRevBy)
		if err != nil {
			return reportLedgerErr(err)
		}
		fmt.Printf("  Revision #%d: moved %s from project %d to project %d\n",
			id, cli.FormatMoney(amount), sourceID, targetID)
		return nil
	},
}

var revisionEditCmd = &cobra.Command{
	Use:   "edit <revision-id> <amount>",
	Short: "Edit a revision's amount, date, or note",
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

		existing, err := store.GetRevision(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("revision %d not found", id)
		}

		date := existing.Date
		if flagRevDate != "" {
			if date, err = parseDateFlag(flagRevDate); err != nil {
				return err
			}
		}
		note := existing.Note
		if flagRevNote != "" {
			note = flagRevNote
		}
		return store.UpdateRevision(id, amount, date, note)
	},
}

var revisionRmCmd = &cobra.Command{
	Use:   "rm <revision-id>",
	Short: "Delete a revision (both projects' funds recompute)",
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
		return store.DeleteRevision(id)
	},
}

var revisionLastCmd = &cobra.Command{
	Use:   "last <project-id>",
	Short: "Show the latest revision touching a project",
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

		r, err := store.LastRevision(projectID)
		if err != nil {
			return err
		}
		if r == nil {
			fmt.Println("  No revisions touching this project.")
			return nil
		}
		fmt.Printf("  #%d  %s  %s  %d -> %d  %s\n",
			r.ID, r.Date, cli.FormatMoney(r.Amount), r.SourceProjectID, r.TargetProjectID, r.Note)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{revisionAddCmd, revisionEditCmd} {
		c.Flags().StringVar(&flagRevDate, "date", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&flagRevNote, "note", "", "Note")
	}
	revisionAddCmd.Flags().StringVar(&flagRevBy, "by", "", "Recorded-by override")

	revisionCmd.AddCommand(revisionAddCmd, revisionEditCmd, revisionRmCmd, revisionLastCmd)
	rootCmd.AddCommand(revisionCmd)
}
