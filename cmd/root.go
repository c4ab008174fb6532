package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dsakenov/minebudget/internal/config"
	"github.com/dsakenov/minebudget/internal/ledger"
	"github.com/dsakenov/minebudget/internal/model"
	"github.com/dsakenov/minebudget/internal/status"

	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "minebudget",
	Short: "Budget line-item tracker for a mine site",
	Long: "Track budget line items: allocations, marketing estimates, contracts,\n" +
		"corrections, and cross-project fund transfers, with live financial status.",
	RunE: runProjects,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "f", "", "Path to the budget database file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-essential output")
}

// dataFilePath resolves the active database path: --db flag first, then
// the configured default.
func dataFilePath() string {
	if flagDB != "" {
		return flagDB
	}
	cfg, _ := config.Load()
	return cfg.General.DataFile
}

// openStore opens the active database and applies config defaults.
// Callers own the returned handle and must Close it.
func openStore() (*ledger.Store, error) {
	cfg, _ := config.Load()
	path := flagDB
	if path == "" {
		path = cfg.General.DataFile
	}

	store, err := ledger.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	store.SetOperator(cfg.General.Operator)
	return store, nil
}

// openEngine opens the store and wraps it in a status engine.
func openEngine() (*ledger.Store, *status.Engine, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return store, status.New(store), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseDateFlag validates a --date value, defaulting to today.
func parseDateFlag(s string) (model.Date, error) {
	if s == "" {
		return model.Today(), nil
	}
	return model.ParseDate(s)
}

// reportLedgerErr prints domain errors in a friendlier shape than raw
// cobra error output, returning the error unchanged for exit status.
func reportLedgerErr(err error) error {
	var hist *ledger.HasHistoryError
	if errors.As(err, &hist) {
		fmt.Fprintf(os.Stderr, "  Cannot delete: project has history (%d corrections, %d marketing, %d contracts, %d revisions)\n",
			hist.Counts.Corrections, hist.Counts.Marketing, hist.Counts.Contracts, hist.Counts.Revisions)
		return err
	}
	var funds *ledger.InsufficientFundsError
	if errors.As(err, &funds) {
		fmt.Fprintf(os.Stderr, "  Insufficient funds: available %.2f, requested %.2f\n",
			funds.Available, funds.Requested)
		return err
	}
	return err
}
