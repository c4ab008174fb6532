package cmd

import (
	"fmt"
	"strconv"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagMktDate string
	flagMktNote string
	flagMktFile string
	flagMktBy   string
)

var marketingCmd = &cobra.Command{
	Use:   "marketing",
	Short: "Record, edit, or delete marketing estimates",
}

var marketingAddCmd = &cobra.Command{
	Use:   "add <project-id> <amount>",
	Short: "Record a marketing estimate",
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
		date, err := parseDateFlag(flagMktDate)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		// Copy the attachment first: if the copy fails, no row is
		// written and no dangling path is stored.
		storedPath := ""
		if flagMktFile != "" {
			if storedPath, err = store.CopyAttachment(flagMktFile, projectID); err != nil {
				return err
			}
		}

		id, err := store.RecordMarketing(projectID, amount, date, storedPath, flagMktNote, flagMktBy)
		if err != nil {
			return err
		}
		fmt.Printf("  Marketing #%d: project %d estimate %s\n", id, projectID, cli.FormatMoney(amount))
		return nil
	},
}

var marketingEditCmd = &cobra.Command{
	Use:   "edit <marketing-id> <amount>",
	Short: "Edit a marketing estimate",
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

		existing, err := store.GetMarketing(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("marketing record %d not found", id)
		}

		date := existing.Date
		if flagMktDate != "" {
			if date, err = parseDateFlag(flagMktDate); err != nil {
				return err
			}
		}
		note := existing.Note
		if flagMktNote != "" {
			note = flagMktNote
		}
		filePath := existing.FilePath
		if flagMktFile != "" {
			if filePath, err = store.CopyAttachment(flagMktFile, existing.ProjectID); err != nil {
				return err
			}
		}
		return store.UpdateMarketing(id, amount, date, filePath, note)
	},
}

var marketingRmCmd = &cobra.Command{
	Use:   "rm <marketing-id>",
	Short: "Delete a marketing estimate",
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
		return store.DeleteMarketing(id)
	},
}

var marketingLastCmd = &cobra.Command{
	Use:   "last <project-id>",
	Short: "Show the latest marketing estimate for a project",
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

		m, err := store.LastMarketing(projectID)
		if err != nil {
			return err
		}
		if m == nil {
			fmt.Println("  No marketing records for this project.")
			return nil
		}
		fmt.Printf("  #%d  %s  %s  %s\n", m.ID, m.Date, cli.FormatMoney(m.Amount), m.Note)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{marketingAddCmd, marketingEditCmd} {
		c.Flags().StringVar(&flagMktDate, "date", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&flagMktNote, "note", "", "Note")
		c.Flags().StringVar(&flagMktFile, "file", "", "Attachment to copy into the data folder")
	}
	marketingAddCmd.Flags().StringVar(&flagMktBy, "by", "", "Recorded-by override")

	marketingCmd.AddCommand(marketingAddCmd, marketingEditCmd, marketingRmCmd, marketingLastCmd)
	rootCmd.AddCommand(marketingCmd)
}
