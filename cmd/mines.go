package cmd

import (
	"fmt"

	"github.com/dsakenov/minebudget/internal/cli"

	"github.com/spf13/cobra"
)

var minesCmd = &cobra.Command{
	Use:   "mines",
	Short: "Manage mine and section reference data",
	RunE:  runMinesList,
}

var minesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mines and their sections",
	RunE:  runMinesList,
}

func runMinesList(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	mines, err := store.ListMines()
	if err != nil {
		return err
	}
	if len(mines) == 0 {
		fmt.Println("\n  No mines yet. Add one with `minebudget mines add <name>`.")
		return nil
	}

	var rows [][]string
	for _, m := range mines {
		rows = append(rows, []string{m.Name, fmt.Sprint(m.ID), ""})
		sections, err := store.ListSections(&m.ID)
		if err != nil {
			return err
		}
		for _, sec := range sections {
			rows = append(rows, []string{"  " + sec.Name, fmt.Sprint(sec.ID), "section"})
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "ID", ""},
		Rows:    rows,
	}))
	return nil
}

var minesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a mine",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.CreateMine(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("  Added mine #%d %q\n", id, args[0])
		return nil
	},
}

var minesRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a mine",
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
		return store.UpdateMine(id, args[1])
	},
}

var minesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a mine, its sections, and clear references to them",
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
		return store.DeleteMine(id)
	},
}

var sectionAddCmd = &cobra.Command{
	Use:   "add-section <mine-id> <name>",
	Short: "Add a section under a mine",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		mineID, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.CreateSection(mineID, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("  Added section #%d %q\n", id, args[1])
		return nil
	},
}

var sectionEditCmd = &cobra.Command{
	Use:   "edit-section <section-id> <mine-id> <name>",
	Short: "Move or rename a section",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		mineID, err := parseID(args[1])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.UpdateSection(id, mineID, args[2])
	},
}

var sectionRmCmd = &cobra.Command{
	Use:   "rm-section <section-id>",
	Short: "Delete a section and clear references to it",
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
		return store.DeleteSection(id)
	},
}

func init() {
	minesCmd.AddCommand(minesListCmd, minesAddCmd, minesRenameCmd, minesRmCmd,
		sectionAddCmd, sectionEditCmd, sectionRmCmd)
	rootCmd.AddCommand(minesCmd)
}
