package cmd

import (
	"fmt"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects with their financial status",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
	store, engine, err := openEngine()
	if err != nil {
		return err
	}
	defer store.Close()

	projects, err := store.ListProjects()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("\n  No projects yet. Create one with `minebudget add`.")
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		st, err := engine.ProjectStatus(p.ID)
		if err != nil {
			return err
		}

		name := cli.Truncate(p.Name, 28)
		if p.OutOfBudget {
			name += " *"
		}
		mine, _ := store.MineName(p.MineID)

		rows = append(rows, []string{
			name,
			fmt.Sprint(p.ID),
			cli.Truncate(mine, 16),
			cli.FormatMoney(st.Have),
			cli.FormatMoney(st.Need),
			cli.FormatSigned(st.Diff),
			cli.FormatStage(st.Stage),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTS  %s", dataFilePath())))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "ID", "Mine", "Have", "Need", "Diff", "Stage"},
		Rows:    rows,
	}))
	if !flagQuiet {
		fmt.Println("  * = out of budget")
	}

	return nil
}
