package cmd

import (
	"fmt"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <project-id>",
	Short: "Show a project's merged event chronology",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.GetProject(id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %d not found", id)
	}

	entries, err := engine.Timeline(id)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("\n  No events recorded for this project.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		amount := cli.FormatMoney(e.Amount)
		if e.Sign != "" {
			amount = e.Sign + amount
		}
		rows = append(rows, []string{
			string(e.Date),
			cli.Truncate(e.Label, 44),
			amount,
			cli.Truncate(e.Note, 30),
			e.AddedBy,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TIMELINE  %s", cli.Truncate(p.Name, 40))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Event", "Amount", "Note", "By"},
		Rows:    rows,
	}))

	return nil
}
