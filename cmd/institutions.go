package cmd

import (
	"fmt"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/engine"

	"github.com/spf13/cobra"
)

var institutionsCmd = &cobra.Command{
	Use:     "institutions",
	Aliases: []string{"inst"},
	Short:   "Break down the ledger by institution",
	RunE:    runInstitutions,
}

func init() {
	rootCmd.AddCommand(institutionsCmd)
}

func runInstitutions(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkingSet()
	if err != nil {
		return err
	}

	stats := engine.AggregateInstitutions(ws.Transactions)
	if len(stats) == 0 {
		fmt.Println()
		fmt.Println("  No transactions in range.")
		fmt.Println()
		return nil
	}

	maxIn := 0.0
	totalIn := 0.0
	for _, s := range stats {
		totalIn += s.Contributions
		if s.Contributions > maxIn {
			maxIn = s.Contributions
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INSTITUTIONS  %d", ws.Year)))
	fmt.Println()

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		share := ""
		if totalIn > 0 {
			share = cli.FormatPercent(s.Contributions / totalIn)
		}
		rows = append(rows, []string{
			truncate(s.Institution, 24),
			cli.FormatNumber(int64(s.Entries)),
			cli.FormatMoney(s.Contributions),
			cli.FormatMoney(s.Withdrawals),
			cli.FormatMoney(s.Net),
			share,
			cli.RenderHorizontalBar(s.Contributions, maxIn, 14),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Institution", "Entries", "In", "Out", "Net", "Share", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
