package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/engine"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/source"
	"github.com/theirongolddev/tfsaroom/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagYear        int
	flagRoom        float64
	flagLedgerPath  string
	flagCSV         string
	flagInstitution string
	flagQuiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "tfsaroom",
	Short: "TFSA contribution room and penalty calculator",
	Long:  "Track TFSA contributions and withdrawals, estimate the 1%-per-month excess penalty, and project next year's room.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg, _ := config.Load()
	config.ApplyLimitOverrides(cfg)

	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", cfg.Simulation.Year, "Simulation year")
	rootCmd.PersistentFlags().Float64VarP(&flagRoom, "room", "r", cfg.Simulation.StartingRoom, "Starting contribution room (negative means already in excess)")
	rootCmd.PersistentFlags().StringVarP(&flagLedgerPath, "ledger", "d", config.DataPath(), "Ledger database path")
	rootCmd.PersistentFlags().StringVar(&flagCSV, "csv", "", "Simulate from a CSV file or directory instead of the stored ledger")
	rootCmd.PersistentFlags().StringVarP(&flagInstitution, "institution", "i", "", "Filter to institution (substring match)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// workingSet is the resolved input for one simulation run.
type workingSet struct {
	Transactions []model.Transaction
	Year         int
	StartingRoom float64
	FromCSV      bool
}

func (ws *workingSet) simulate() model.SimulationResult {
	return engine.Simulate(ws.Year, ws.StartingRoom, ws.Transactions)
}

// loadWorkingSet is the shared loading path used by all read commands:
// the stored ledger by default, or a one-shot CSV read with --csv that
// never touches the database.
func loadWorkingSet() (*workingSet, error) {
	ws := &workingSet{Year: flagYear, StartingRoom: flagRoom}

	switch {
	case flagCSV != "":
		progressFn := func(current, total int) {
			if flagQuiet {
				return
			}
			fmt.Fprintf(os.Stderr, "\r  Importing %s", cli.RenderProgressBar(current, total, 24))
		}

		dir, err := source.ImportDir(flagCSV, progressFn)
		if err != nil {
			return nil, err
		}
		if dir.TotalFiles == 0 {
			return nil, fmt.Errorf("no CSV files found at %s", flagCSV)
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "\r  Read %d entries from %d files    \n",
				len(dir.Admitted), dir.TotalFiles)
			if dir.Rejected > 0 {
				fmt.Fprintf(os.Stderr, "  Skipped %d unparsable lines\n", dir.Rejected)
			}
		}
		ws.Transactions = dir.Admitted
		ws.FromCSV = true

	case ledgerMissing(flagLedgerPath):
		// A missing database reads as an empty ledger. Only `add` and
		// `import` create it.

	default:
		ledger, err := store.Open(flagLedgerPath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = ledger.Close() }()

		txs, err := ledger.LoadTransactions()
		if err != nil {
			return nil, fmt.Errorf("loading ledger: %w", err)
		}
		ws.Transactions = txs
	}

	if flagInstitution != "" {
		ws.Transactions = engine.FilterByInstitution(ws.Transactions, flagInstitution)
	}
	return ws, nil
}

// openLedger opens the ledger database for mutating commands.
func openLedger() (*store.Ledger, error) {
	return store.Open(flagLedgerPath)
}

func ledgerMissing(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
