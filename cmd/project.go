package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Edit or delete a project",
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
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
		return store.UpdateProjectName(id, args[1])
	},
}

var (
	flagProjectMine    int64
	flagProjectSection int64
)

var projectLocationCmd = &cobra.Command{
	Use:   "location <id>",
	Short: "Set or clear a project's mine/section",
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

		var mineID, sectionID *int64
		if flagProjectMine > 0 {
			mineID = &flagProjectMine
		}
		if flagProjectSection > 0 {
			sectionID = &flagProjectSection
		}
		return store.UpdateProjectMineSection(id, mineID, sectionID)
	},
}

var projectFlagCmd = &cobra.Command{
	Use:   "flag <id> on|off",
	Short: "Set the out-of-budget flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var on bool
		switch strings.ToLower(args[1]) {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.UpdateProjectOutOfBudget(id, on)
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a project (only with no recorded history)",
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
		if err := store.DeleteProject(id); err != nil {
			return reportLedgerErr(err)
		}
		fmt.Printf("  Deleted project #%d\n", id)
		return nil
	},
}

func init() {
	projectLocationCmd.Flags().Int64Var(&flagProjectMine, "mine", 0, "Mine id (0 clears)")
	projectLocationCmd.Flags().Int64Var(&flagProjectSection, "section", 0, "Section id (0 clears)")

	projectCmd.AddCommand(projectRenameCmd, projectLocationCmd, projectFlagCmd, projectRmCmd)
	rootCmd.AddCommand(projectCmd)
}
