package cmd

import (
	"fmt"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <project-id>",
	Short: "Show a project's financial status and activity counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
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

	st, err := engine.ProjectStatus(id)
	if err != nil {
		return err
	}
	counts, err := store.ActivityCounts(id)
	if err != nil {
		return err
	}

	mine, _ := store.MineName(p.MineID)
	section, _ := store.SectionName(p.SectionID)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  (#%d)", cli.Truncate(p.Name, 40), p.ID)))
	fmt.Println()
	fmt.Printf("  Created     %s\n", p.CreatedAt)
	if mine != "" {
		loc := mine
		if section != "" {
			loc += " / " + section
		}
		fmt.Printf("  Location    %s\n", loc)
	}
	if p.Comment != "" {
		fmt.Printf("  Comment     %s\n", p.Comment)
	}
	if p.OutOfBudget {
		fmt.Println(cli.RenderWarning("  Flagged out of budget"))
	}
	fmt.Println()
	fmt.Printf("  Base budget %s\n", cli.FormatMoney(p.Budget))
	fmt.Printf("  Have        %s\n", cli.FormatMoney(st.Have))
	fmt.Printf("  Need        %s  (stage: %s)\n", cli.FormatMoney(st.Need), cli.FormatStage(st.Stage))
	fmt.Printf("  Diff        %s\n", cli.RenderDiff(cli.FormatSigned(st.Diff), st.Diff))
	if st.MarketingAmount != nil {
		fmt.Printf("  Marketing   %s (latest)\n", cli.FormatMoney(*st.MarketingAmount))
	}
	if st.ContractAmount != nil {
		fmt.Printf("  Contract    %s (latest)\n", cli.FormatMoney(*st.ContractAmount))
	}
	fmt.Println()
	fmt.Printf("  Events: %d corrections, %d marketing, %d contracts, %d revisions\n",
		counts.Corrections, counts.Marketing, counts.Contracts, counts.Revisions)

	return nil
}
