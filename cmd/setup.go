package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dsakenov/minebudget/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to minebudget!")
	fmt.Println()

	// 1. Data file
	fmt.Println("  1. Budget database file")
	fmt.Printf("     Current: %s\n", cfg.General.DataFile)
	fmt.Print("     > ")
	dataFile, _ := reader.ReadString('\n')
	dataFile = strings.TrimSpace(dataFile)
	if dataFile != "" {
		cfg.General.DataFile = dataFile
	}
	fmt.Println()

	// 2. Operator name
	fmt.Println("  2. Your name (recorded on new entries)")
	if cfg.General.Operator != "" {
		fmt.Printf("     Current: %s\n", cfg.General.Operator)
	}
	fmt.Print("     > ")
	operator, _ := reader.ReadString('\n')
	operator = strings.TrimSpace(operator)
	if operator != "" {
		cfg.General.Operator = operator
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `minebudget setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
