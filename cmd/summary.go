package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Room, excess, and penalty summary for the year",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkingSet()
	if err != nil {
		return err
	}

	res := ws.simulate()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TFSA ROOM  %d", res.Year)))
	fmt.Println()

	rows := [][]string{
		{"Starting Room", cli.FormatMoney(res.StartingRoom)},
		{"Contributions", cli.FormatMoney(res.TotalContributions)},
		{"Withdrawals", cli.FormatMoney(res.TotalWithdrawals)},
		{"Remaining Room", cli.FormatMoney(res.RemainingRoom)},
		{"---"},
		{"Current Excess", cli.FormatMoney(res.CurrentExcess)},
		{"Peak Excess", cli.FormatMoney(res.PeakExcess)},
		{"Affected Months", fmt.Sprintf("%d of 12", res.AffectedMonths)},
		{"Penalty (est)", cli.FormatMoney(res.TotalPenalty)},
		{"---"},
		{"Unused Room (EOY)", cli.FormatMoney(res.UnusedRoomEndOfYear)},
		{fmt.Sprintf("%d Limit", res.Year + 1), cli.FormatMoney(res.NextAnnualLimit)},
		{fmt.Sprintf("%d Opening Room", res.Year + 1), cli.FormatMoney(res.NextYearRoom)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if res.CurrentExcess > 0 {
		fmt.Printf("  %s\n", cli.RenderAlert(fmt.Sprintf(
			"Excess of %s outstanding — accruing %s/month until withdrawn",
			cli.FormatMoney(res.CurrentExcess),
			cli.FormatMoney(res.CurrentExcess*model.PenaltyRate))))
	} else {
		fmt.Printf("  %s\n", cli.RenderOK("No excess outstanding."))
	}
	fmt.Println()

	if len(ws.Transactions) == 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Ledger is empty — add entries with `tfsaroom add` or `tfsaroom import <path>`.\n\n")
	}

	return nil
}
