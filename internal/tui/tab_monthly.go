package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/tui/components"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMonthlyTab(cw int) string {
	t := theme.Active
	res := a.result

	var b strings.Builder

	// Row 1: Monthly metric cards
	peakDelta := ""
	if res.PeakExcess > 0 {
		for _, m := range res.Months {
			if m.MaxExcess == res.PeakExcess {
				peakDelta = "in " + m.Month.String()
				break
			}
		}
	}

	perMonth := res.TotalContributions / 12

	cards := []struct{ Label, Value, Delta string }{
		{"Contributions", cli.FormatMoney(res.TotalContributions), cli.FormatMoney(perMonth) + "/mo avg"},
		{"Withdrawals", cli.FormatMoney(res.TotalWithdrawals), ""},
		{"Peak Excess", cli.FormatMoney(res.PeakExcess), peakDelta},
		{"Total Penalty", cli.FormatMoney(res.TotalPenalty), fmt.Sprintf("%.0f%% of monthly peaks", model.PenaltyRate*100)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Penalty schedule table
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	excessStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	penaltyStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	cleanStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	tableW := 9 + 14 + 12 + 2
	if tableW > innerW {
		tableW = innerW
	}

	var tableBody strings.Builder
	tableBody.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %13s %11s", "Month", "Max Excess", "Penalty")))
	tableBody.WriteString("\n")
	tableBody.WriteString(mutedStyle.Render(strings.Repeat("─", tableW)))
	tableBody.WriteString("\n")

	for _, m := range res.Months {
		if !m.Affected {
			tableBody.WriteString(cleanStyle.Render(fmt.Sprintf("%-9s %13s %11s", m.Month.String(), "—", "—")))
			tableBody.WriteString("\n")
			continue
		}
		tableBody.WriteString(valueStyle.Render(fmt.Sprintf("%-9s ", m.Month.String())))
		tableBody.WriteString(excessStyle.Render(fmt.Sprintf("%13s", cli.FormatMoney(m.MaxExcess))))
		tableBody.WriteString(penaltyStyle.Render(fmt.Sprintf(" %11s", cli.FormatMoney(m.Penalty))))
		tableBody.WriteString("\n")
	}

	tableBody.WriteString(mutedStyle.Render(strings.Repeat("─", tableW)))
	tableBody.WriteString("\n")
	tableBody.WriteString(valueStyle.Render(fmt.Sprintf("%-9s %13s ", "TOTAL", "")))
	tableBody.WriteString(penaltyStyle.Render(fmt.Sprintf("%11s", cli.FormatMoney(res.TotalPenalty))))

	title := fmt.Sprintf("Penalty Schedule  %s (%d)", cli.FormatMoney(res.TotalPenalty), a.year)
	b.WriteString(components.ContentCard(title, tableBody.String(), cw))
	b.WriteString("\n")

	// Row 3: Excess gauges + Top penalty months
	halves := components.LayoutRow(cw, 2)

	// Left: per-month excess relative to the year's peak
	var gaugeBody strings.Builder
	if res.PeakExcess > 0 {
		barW := components.CardInnerWidth(halves[0]) - 12
		if barW < 10 {
			barW = 10
		}
		for i, m := range res.Months {
			pct := m.MaxExcess / res.PeakExcess
			gaugeBody.WriteString(components.Gauge(cli.FormatMonth(m.Month), pct, 3, barW))
			if i < len(res.Months)-1 {
				gaugeBody.WriteString("\n")
			}
		}
	} else {
		gaugeBody.WriteString(cleanStyle.Render("No excess in any month"))
	}
	gaugeCard := components.ContentCard("Excess by Month", gaugeBody.String(), halves[0])

	// Right: worst months by penalty, most recent first among ties
	var topBody strings.Builder
	affected := make([]model.MonthlyRecord, 0, len(res.Months))
	for _, m := range res.Months {
		if m.Affected {
			affected = append(affected, m)
		}
	}
	if len(affected) > 0 {
		sort.SliceStable(affected, func(i, j int) bool {
			return affected[i].Penalty > affected[j].Penalty
		})
		topLimit := 5
		if len(affected) < topLimit {
			topLimit = len(affected)
		}
		for _, m := range affected[:topLimit] {
			topBody.WriteString(valueStyle.Render(fmt.Sprintf("%-9s", m.Month.String())))
			topBody.WriteString(mutedStyle.Render("  "))
			topBody.WriteString(penaltyStyle.Render(cli.FormatMoney(m.Penalty)))
			topBody.WriteString("\n")
		}
	} else {
		topBody.WriteString(cleanStyle.Render("No penalties this year"))
		topBody.WriteString("\n")
	}
	topCard := components.ContentCard("Top Penalty Months", topBody.String(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(gaugeCard)
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Top Penalty Months", topBody.String(), cw))
	} else {
		b.WriteString(components.CardRow([]string{gaugeCard, topCard}))
	}

	return b.String()
}
