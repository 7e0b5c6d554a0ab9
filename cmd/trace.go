package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/model"

	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Daily excess trace for the year",
	RunE:  runTrace,
}

var traceFull bool

func init() {
	traceCmd.Flags().BoolVar(&traceFull, "full", false, "List every day the excess changed")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(_ *cobra.Command, _ []string) error {
	ws, err := loadWorkingSet()
	if err != nil {
		return err
	}

	res := ws.simulate()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EXCESS TRACE  %d", res.Year)))
	fmt.Println()

	values := make([]float64, len(res.Trace))
	var peak model.TracePoint
	for i, p := range res.Trace {
		values[i] = p.Excess
		if p.Excess > peak.Excess {
			peak = p
		}
	}

	fmt.Printf("  %s\n", cli.RenderSparkline(downsample(values, 60)))
	fmt.Printf("  Jan 1%sDec 31\n", strings.Repeat(" ", 49))
	fmt.Println()

	if peak.Excess > 0 {
		fmt.Printf("  Peak excess %s on %s\n",
			cli.FormatMoney(peak.Excess), peak.Date.Format("Jan 2"))
		fmt.Printf("  Year-end excess %s\n", cli.FormatMoney(res.CurrentExcess))
	} else {
		fmt.Printf("  %s\n", cli.RenderOK("Never in excess this year."))
	}
	fmt.Println()

	if traceFull {
		rows := make([][]string, 0, 32)
		prev := -1.0
		for _, p := range res.Trace {
			if p.Excess == prev {
				continue
			}
			rows = append(rows, []string{
				p.Date.Format(model.DateLayout),
				cli.FormatMoney(p.Excess),
			})
			prev = p.Excess
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Change Points",
			Headers: []string{"Date", "Excess"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	return nil
}

// downsample reduces a series to at most n points by striding.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n || n <= 0 {
		return values
	}
	out := make([]float64, 0, n)
	step := float64(len(values)) / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, values[int(float64(i)*step)])
	}
	return out
}
