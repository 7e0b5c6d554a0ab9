package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/cra"

	"github.com/spf13/cobra"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show the annual contribution limit table",
	RunE:  runLimits,
}

var limitsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the limit table from the published feed",
	RunE:  runLimitsUpdate,
}

func init() {
	limitsCmd.AddCommand(limitsUpdateCmd)
	rootCmd.AddCommand(limitsCmd)
}

func runLimits(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println(cli.RenderTitle("ANNUAL LIMITS"))
	fmt.Println()

	years := config.LimitYears()
	rows := make([][]string, 0, len(years))
	for _, year := range years {
		limit, _ := config.AnnualLimit(year)
		note := ""
		if config.IsLimitOverridden(year) {
			note = "(local)"
		}
		rows = append(rows, []string{
			strconv.Itoa(year),
			cli.FormatMoney(limit),
			note,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Limit", ""},
		Rows:    rows,
	}))
	fmt.Println()

	st := config.LoadFeedState()
	if st.FetchedAt.IsZero() {
		fmt.Println("  Feed never refreshed — run `tfsaroom limits update`.")
	} else {
		fmt.Printf("  Feed refreshed %s (%d years)\n", st.FetchedAt.UTC().Format("2006-01-02 15:04 UTC"), st.Years)
	}
	fmt.Printf("  Unknown years fall back to %s.\n\n", cli.FormatMoney(config.FallbackAnnualLimit))

	return nil
}

func runLimitsUpdate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	feedURL := config.FeedURL(cfg)
	client := cra.NewClient(feedURL)
	if client == nil {
		return fmt.Errorf("invalid feed URL %q", feedURL)
	}

	if !flagQuiet {
		fmt.Printf("  Fetching %s\n", feedURL)
	}

	feed, err := client.FetchLimits(context.Background())
	if err != nil {
		return err
	}

	// Only deviations from the effective table get written, so config.toml
	// stays small and `limits` marks exactly the years the feed moved.
	if cfg.Limits.Annual == nil {
		cfg.Limits.Annual = map[string]float64{}
	}
	changed := 0
	for _, year := range feed.Years() {
		fetched := feed.Limits[year]
		if current, ok := config.AnnualLimit(year); ok && current == fetched {
			continue
		}
		cfg.Limits.Annual[strconv.Itoa(year)] = fetched
		fmt.Printf("  %d: %s\n", year, cli.FormatMoney(fetched))
		changed++
	}

	if changed > 0 {
		if err := config.Save(cfg); err != nil {
			return err
		}
		config.ApplyLimitOverrides(cfg)
	}

	if err := config.SaveFeedState(config.FeedState{
		FetchedAt: feed.FetchedAt,
		Updated:   feed.Updated,
		Years:     len(feed.Limits),
		URL:       feedURL,
	}); err != nil {
		return err
	}

	if changed == 0 {
		fmt.Printf("  Limit table already current (%d years checked).\n", len(feed.Limits))
	} else {
		fmt.Printf("  Updated %d years.\n", changed)
	}

	return nil
}
