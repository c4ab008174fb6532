package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dsakenov/minebudget/internal/cli"
	"github.com/dsakenov/minebudget/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new project interactively",
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	mines, err := store.ListMines()
	if err != nil {
		return err
	}

	var (
		name        string
		budgetStr   string
		comment     string
		outOfBudget bool
		mineID      int64 // 0 = none
	)

	mineOpts := []huh.Option[int64]{huh.NewOption("(none)", int64(0))}
	for _, m := range mines {
		mineOpts = append(mineOpts, huh.NewOption(m.Name, m.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Budget").
				Placeholder("0").
				Value(&budgetStr).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					return err
				}),
			huh.NewInput().
				Title("Comment").
				Value(&comment),
			huh.NewSelect[int64]().
				Title("Mine").
				Options(mineOpts...).
				Value(&mineID),
			huh.NewConfirm().
				Title("Out of budget?").
				Value(&outOfBudget),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	var budget float64
	if s := strings.TrimSpace(budgetStr); s != "" {
		budget, _ = strconv.ParseFloat(s, 64)
	}

	var sectionID *int64
	minePtr := &mineID
	if mineID == 0 {
		minePtr = nil
	} else {
		sectionID, err = pickSection(store, mineID)
		if err != nil {
			return err
		}
	}

	id, err := store.CreateProject(name, budget, comment, outOfBudget, minePtr, sectionID)
	if err != nil {
		return err
	}

	fmt.Printf("  Created project #%d %q with budget %s (%s)\n",
		id, strings.TrimSpace(name), cli.FormatMoney(budget), model.Today())
	return nil
}

// pickSection offers the mine's sections; nil means none chosen.
func pickSection(store interface {
	ListSections(*int64) ([]model.Section, error)
}, mineID int64) (*int64, error) {
	sections, err := store.ListSections(&mineID)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, nil
	}

	opts := []huh.Option[int64]{huh.NewOption("(none)", int64(0))}
	for _, sec := range sections {
		opts = append(opts, huh.NewOption(sec.Name, sec.ID))
	}

	var sectionID int64
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().Title("Section").Options(opts...).Value(&sectionID),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}
	if sectionID == 0 {
		return nil, nil
	}
	return &sectionID, nil
}
