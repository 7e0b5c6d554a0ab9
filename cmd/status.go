package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config, ledger, and limit-feed status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println(cli.RenderTitle("STATUS"))
	fmt.Println()

	configValue := config.ConfigPath()
	if !config.Exists() {
		configValue += "  (defaults in effect)"
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Configuration",
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Config file", configValue},
			{"Year", strconv.Itoa(cfg.Simulation.Year)},
			{"Starting room", cli.FormatMoney(cfg.Simulation.StartingRoom)},
			{"Default institution", cfg.Simulation.DefaultInstitution},
			{"Theme", cfg.TUI.Theme},
		},
	}))

	printLedgerStatus()
	printFeedStatus()
	printDaemonStatus()
	fmt.Println()

	return nil
}

func printLedgerStatus() {
	path := flagLedgerPath

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("  Ledger: not created yet (%s)\n", path)
		fmt.Println("  Add an entry or import a CSV to create it.")
		fmt.Println()
		return
	}

	rows := [][]string{
		{"Path", path},
		{"Modified", info.ModTime().Local().Format("2006-01-02 15:04")},
	}

	ledger, err := store.Open(path)
	if err == nil {
		defer func() { _ = ledger.Close() }()
		if n, err := ledger.Count(); err == nil {
			rows = append(rows, []string{"Entries", cli.FormatNumber(int64(n))})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Ledger",
		Headers: []string{"Setting", "Value"},
		Rows:    rows,
	}))
}

func printFeedStatus() {
	st := config.LoadFeedState()
	if st.FetchedAt.IsZero() {
		fmt.Println("  Limit feed: never refreshed (built-in table in use)")
		return
	}
	fmt.Printf("  Limit feed: refreshed %s (%d years)\n",
		st.FetchedAt.UTC().Format("2006-01-02 15:04 UTC"), st.Years)
}

func printDaemonStatus() {
	pid, err := readPID(flagDaemonPIDFile)
	if err != nil {
		fmt.Println("  Daemon: not running")
		return
	}
	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return
	}
	fmt.Printf("  Daemon: running (pid %d) — `tfsaroom daemon status` for details\n", pid)
}
