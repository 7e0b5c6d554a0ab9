package cmd

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/engine"
	"github.com/theirongolddev/tfsaroom/internal/source"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger transactions",
	RunE:  runList,
}

var (
	listLimit int
	listKind  string
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "Number of transactions to show (0 for all)")
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "Filter by kind (contribution or withdrawal)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkingSet()
	if err != nil {
		return err
	}

	txs := ws.Transactions
	if listKind != "" {
		txs = engine.FilterByKind(txs, source.ParseKind(listKind))
	}

	if len(txs) == 0 {
		fmt.Println("\n  No matching transactions.")
		return nil
	}

	// Date order with same-day ties in admission order, matching how the
	// simulation applies them.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].DateKey() < txs[j].DateKey()
	})

	total := len(txs)
	if listLimit > 0 && len(txs) > listLimit {
		txs = txs[len(txs)-listLimit:]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LEDGER  %d (showing %d of %d)", ws.Year, len(txs), total)))
	fmt.Println()

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			shortID(tx.ID),
			tx.DateKey(),
			string(tx.Kind),
			cli.FormatMoney(tx.Amount),
			truncate(tx.Institution, 18),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Date", "Kind", "Amount", "Institution"},
		Rows:    rows,
	}))

	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
