package cmd

import (
	"fmt"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/engine"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Month-by-month excess and penalty table",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkingSet()
	if err != nil {
		return err
	}

	res := ws.simulate()
	flows := engine.MonthlyFlows(ws.Year, ws.Transactions)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY PENALTY  %d", res.Year)))
	fmt.Println()

	rows := make([][]string, 0, len(res.Months)+2)
	for i, m := range res.Months {
		bar := ""
		if res.PeakExcess > 0 {
			bar = cli.RenderHorizontalBar(m.MaxExcess, res.PeakExcess, 16)
		}
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatMoney(flows[i].Contributions),
			cli.FormatMoney(flows[i].Withdrawals),
			cli.FormatMoney(m.MaxExcess),
			cli.FormatMoney(m.Penalty),
			bar,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatMoney(res.TotalContributions),
		cli.FormatMoney(res.TotalWithdrawals),
		cli.FormatMoney(res.PeakExcess),
		cli.FormatMoney(res.TotalPenalty),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "In", "Out", "Max Excess", "Penalty", ""},
		Rows:    rows,
	}))

	if res.AffectedMonths > 0 {
		fmt.Printf("  %d of 12 months carry a penalty.\n", res.AffectedMonths)
	}
	fmt.Println()

	return nil
}
