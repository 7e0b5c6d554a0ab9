package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CONFIG"))
	fmt.Println()

	if config.Exists() {
		fmt.Printf("  File: %s\n", config.ConfigPath())
	} else {
		fmt.Printf("  File: %s (not created — defaults shown)\n", config.ConfigPath())
	}
	fmt.Println()

	fmt.Println("  [simulation]")
	fmt.Printf("  year = %d\n", cfg.Simulation.Year)
	fmt.Printf("  starting_room = %s\n", cli.FormatMoney(cfg.Simulation.StartingRoom))
	fmt.Printf("  default_institution = %q\n", cfg.Simulation.DefaultInstitution)
	fmt.Println()

	fmt.Println("  [tui]")
	fmt.Printf("  theme = %q\n", cfg.TUI.Theme)
	fmt.Printf("  auto_refresh = %t\n", cfg.TUI.AutoRefresh)
	fmt.Printf("  refresh_interval_secs = %d\n", cfg.TUI.RefreshIntervalSecs)
	fmt.Println()

	fmt.Println("  [limits]")
	fmt.Printf("  feed_url = %q\n", config.FeedURL(cfg))
	if len(cfg.Limits.Annual) > 0 {
		keys := make([]string, 0, len(cfg.Limits.Annual))
		for k := range cfg.Limits.Annual {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		fmt.Println("  [limits.annual]")
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", k, strconv.FormatFloat(cfg.Limits.Annual[k], 'f', -1, 64))
		}
	}
	fmt.Println()

	fmt.Println("  Data locations:")
	fmt.Printf("    Ledger: %s\n", config.DataPath())
	fmt.Printf("    Cache:  %s\n", config.CacheDir())
	fmt.Println()
	fmt.Println("  Run `tfsaroom setup` to change these interactively.")
	fmt.Println()

	return nil
}
