package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/tui/components"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTraceTab(cw int) string {
	t := theme.Active
	res := a.result

	daysOver := 0
	var peak model.TracePoint
	for _, p := range res.Trace {
		if p.Excess > 0 {
			daysOver++
		}
		if p.Excess > peak.Excess {
			peak = p
		}
	}

	// Row 1: day-walk metrics
	peakDelta := "never in excess"
	if peak.Excess > 0 {
		peakDelta = "on " + peak.Date.Format("Jan 2")
	}
	endDelta := "clear at year-end"
	if res.CurrentExcess > 0 {
		endDelta = fmt.Sprintf("carries into %d", res.Year+1)
	}
	affected := fmt.Sprintf("%d affected months", res.AffectedMonths)
	if res.AffectedMonths == 1 {
		affected = "1 affected month"
	}

	cards := components.MetricCardRow([]struct {
		Label string
		Value string
		Delta string
	}{
		{Label: "Days in Excess", Value: cli.FormatNumber(int64(daysOver)), Delta: fmt.Sprintf("of %d days", len(res.Trace))},
		{Label: "Peak Excess", Value: cli.FormatMoney(res.PeakExcess), Delta: peakDelta},
		{Label: "Year-End Excess", Value: cli.FormatMoney(res.CurrentExcess), Delta: endDelta},
		{Label: "Penalty", Value: cli.FormatMoney(res.TotalPenalty), Delta: affected},
	}, cw)

	// Row 2: the daily excess series, Jan 1 through Dec 31
	var chartCard string
	if res.PeakExcess > 0 {
		values := make([]float64, len(res.Trace))
		for i, p := range res.Trace {
			values[i] = p.Excess
		}
		innerW := components.CardInnerWidth(cw)
		chart := components.BarChart(values, traceDateLabels(res.Trace), t.Red, innerW, 12)
		chartCard = components.ContentCard(
			fmt.Sprintf("Daily Excess  Jan 1 – Dec 31 %d", res.Year), chart, cw)
	} else {
		ok := lipgloss.NewStyle().Foreground(t.Green).Render("Never in excess this year — no penalties accrue.")
		chartCard = components.ContentCard(
			fmt.Sprintf("Daily Excess  Jan 1 – Dec 31 %d", res.Year), ok, cw)
	}

	// Row 3: change points + the longest stretch over the limit
	halfW := cw / 2
	changesCard := a.renderChangePoints(halfW)
	stretchCard := a.renderLongestStretch(cw - halfW)

	var bottom string
	if a.width < compactWidth {
		changesCard = a.renderChangePoints(cw)
		stretchCard = a.renderLongestStretch(cw)
		bottom = changesCard + "\n" + stretchCard
	} else {
		bottom = components.CardRow([]string{changesCard, stretchCard})
	}

	return cards + "\n" + chartCard + "\n" + bottom
}

// renderChangePoints lists the days where the excess moved, capped so the
// card stays shorter than the chart above it.
func (a App) renderChangePoints(w int) string {
	t := theme.Active
	res := a.result

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	type change struct {
		point model.TracePoint
		prev  float64
	}
	changes := make([]change, 0, 16)
	prev := 0.0
	for _, p := range res.Trace {
		if p.Excess != prev {
			changes = append(changes, change{point: p, prev: prev})
			prev = p.Excess
		}
	}

	if len(changes) == 0 {
		body := labelStyle.Render("The excess never moved — a flat year.")
		return components.ContentCard("Change Points", body, w)
	}

	const maxRows = 10
	var body strings.Builder
	body.WriteString(labelStyle.Render(fmt.Sprintf("%-8s %12s %12s", "Date", "Excess", "Change")))
	body.WriteString("\n")

	shown := changes
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, c := range shown {
		deltaStyle := lipgloss.NewStyle().Foreground(t.Orange)
		if c.point.Excess < c.prev {
			deltaStyle = lipgloss.NewStyle().Foreground(t.Green)
		}
		body.WriteString(fmt.Sprintf("%s %s %s\n",
			valueStyle.Render(fmt.Sprintf("%-8s", c.point.Date.Format("Jan 2"))),
			valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(c.point.Excess))),
			deltaStyle.Render(fmt.Sprintf("%12s", cli.FormatDelta(c.point.Excess, c.prev)))))
	}
	if len(changes) > maxRows {
		body.WriteString(labelStyle.Render(fmt.Sprintf("… and %d more — `tfsaroom trace --full`", len(changes)-maxRows)))
		body.WriteString("\n")
	}

	return components.ContentCard("Change Points", body.String(), w)
}

// renderLongestStretch finds the longest consecutive run of days in excess.
func (a App) renderLongestStretch(w int) string {
	t := theme.Active
	res := a.result

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i, p := range res.Trace {
		if p.Excess > 0 {
			if curLen == 0 {
				curStart = i
			}
			curLen++
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
		} else {
			curLen = 0
		}
	}

	if bestLen == 0 {
		body := labelStyle.Render("No days in excess.")
		return components.ContentCard("Longest Stretch", body, w)
	}

	start := res.Trace[bestStart]
	end := res.Trace[bestStart+bestLen-1]
	stretchPeak := 0.0
	var stretchPeakDate model.TracePoint
	for _, p := range res.Trace[bestStart : bestStart+bestLen] {
		if p.Excess > stretchPeak {
			stretchPeak = p.Excess
			stretchPeakDate = p
		}
	}

	dayWord := "days"
	if bestLen == 1 {
		dayWord = "day"
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("From:  "), valueStyle.Render(start.Date.Format("January 2"))))
	body.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("To:    "), valueStyle.Render(end.Date.Format("January 2"))))
	body.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Run:   "),
		valueStyle.Render(fmt.Sprintf("%d %s over the limit", bestLen, dayWord))))
	body.WriteString(fmt.Sprintf("%s %s %s\n",
		labelStyle.Render("Peak:  "),
		lipgloss.NewStyle().Foreground(t.Orange).Render(cli.FormatMoney(stretchPeak)),
		labelStyle.Render("on "+stretchPeakDate.Date.Format("Jan 2"))))

	return components.ContentCard("Longest Stretch", body.String(), w)
}

// traceDateLabels labels every trace point with its date; the chart thins
// them to whatever spacing fits the axis.
func traceDateLabels(trace []model.TracePoint) []string {
	labels := make([]string, len(trace))
	for i, p := range trace {
		labels[i] = p.Date.Format("Jan 2")
	}
	return labels
}
