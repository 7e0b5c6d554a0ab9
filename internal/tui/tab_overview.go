package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/tui/components"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	res := a.result
	var b strings.Builder

	// Unreadable ledger: surface the error instead of a silently empty dashboard
	if a.loadErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		b.WriteString(components.ContentCard("Ledger",
			warnStyle.Render(fmt.Sprintf("Could not read ledger: %s", a.loadErr)),
			cw))
		b.WriteString("\n")
	}

	// Row 1: Metric cards
	roomDelta := fmt.Sprintf("of %s start", cli.FormatMoney(res.StartingRoom))

	excessDelta := "no excess this year"
	if res.PeakExcess > 0 {
		excessDelta = fmt.Sprintf("peak %s", cli.FormatMoney(res.PeakExcess))
	}

	penaltyDelta := ""
	switch {
	case res.AffectedMonths == 1:
		penaltyDelta = "1 affected month"
	case res.AffectedMonths > 1:
		penaltyDelta = fmt.Sprintf("%d affected months", res.AffectedMonths)
	}

	nextDelta := fmt.Sprintf("+%s limit", cli.FormatMoney(res.NextAnnualLimit))

	cards := []struct{ Label, Value, Delta string }{
		{"Remaining Room", cli.FormatMoney(res.RemainingRoom), roomDelta},
		{"Current Excess", cli.FormatMoney(res.CurrentExcess), excessDelta},
		{"Penalty", cli.FormatMoney(res.TotalPenalty), penaltyDelta},
		{"Next Year Room", cli.FormatMoney(res.NextYearRoom), nextDelta},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Monthly contribution chart
	if len(a.flows) > 0 {
		chartVals := make([]float64, len(a.flows))
		for i, f := range a.flows {
			chartVals[i] = f.Contributions
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly Contributions (%d)", a.year),
			components.BarChart(chartVals, monthLabels(), t.Blue, chartInnerW, 10),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Room usage + Carryforward
	halves := components.LayoutRow(cw, 2)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	// Left: how much of this year's room the contributions consumed
	usedPct := 0.0
	if res.StartingRoom > 0 {
		usedPct = res.TotalContributions / res.StartingRoom
		if usedPct > 1 {
			usedPct = 1
		}
	} else if res.TotalContributions > 0 {
		usedPct = 1 // no room to begin with; anything contributed is excess
	}

	var roomBody strings.Builder
	roomBody.WriteString(components.ProgressBar(usedPct, components.CardInnerWidth(halves[0])-10))
	roomBody.WriteString("\n")
	roomBody.WriteString(labelStyle.Render("Contributed"))
	roomBody.WriteString(spaceStyle.Render("  "))
	roomBody.WriteString(valueStyle.Render(cli.FormatMoney(res.TotalContributions)))
	roomBody.WriteString(spaceStyle.Render(" / "))
	roomBody.WriteString(valueStyle.Render(cli.FormatMoney(res.StartingRoom)))
	roomBody.WriteString("\n")
	roomBody.WriteString(components.CompactUsageBar("room", usedPct, components.CardInnerWidth(halves[0])-2))
	roomCard := components.ContentCard("Room Used", roomBody.String(), halves[0])

	// Right: next year's room from this year's ledger
	unusedStyle := valueStyle
	if res.UnusedRoomEndOfYear < 0 {
		unusedStyle = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	}
	nextRoomStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)

	var carryBody strings.Builder
	carryBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", "Unused at Dec 31:")))
	carryBody.WriteString(unusedStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(res.UnusedRoomEndOfYear))))
	carryBody.WriteString("\n")
	carryBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", "Withdrawals:")))
	carryBody.WriteString(valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(res.TotalWithdrawals))))
	carryBody.WriteString("\n")
	carryBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", fmt.Sprintf("%d limit:", a.year+1))))
	carryBody.WriteString(valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(res.NextAnnualLimit))))
	carryBody.WriteString("\n")
	carryBody.WriteString(labelStyle.Render(strings.Repeat("─", 32)))
	carryBody.WriteString("\n")
	carryBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", fmt.Sprintf("%d room:", a.year+1))))
	carryBody.WriteString(nextRoomStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(res.NextYearRoom))))
	carryCard := components.ContentCard("Carryforward", carryBody.String(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Room Used", roomBody.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Carryforward", carryBody.String(), cw))
	} else {
		b.WriteString(components.CardRow([]string{roomCard, carryCard}))
	}
	b.WriteString("\n")

	// Row 4: Institution split
	if len(a.institutions) > 0 {
		innerW := components.CardInnerWidth(cw)

		nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
		barStyle := lipgloss.NewStyle().Foreground(t.Accent)
		amtStyle := lipgloss.NewStyle().Foreground(t.TextDim)

		limit := 5
		if len(a.institutions) < limit {
			limit = len(a.institutions)
		}
		maxIn := 0.0
		for _, s := range a.institutions[:limit] {
			if s.Contributions > maxIn {
				maxIn = s.Contributions
			}
		}

		nameW := innerW / 3
		if nameW < 10 {
			nameW = 10
		}
		barMaxLen := innerW - nameW - 14
		if barMaxLen < 1 {
			barMaxLen = 1
		}

		var instBody strings.Builder
		for _, s := range a.institutions[:limit] {
			barLen := 0
			if maxIn > 0 {
				barLen = int(s.Contributions / maxIn * float64(barMaxLen))
			}
			fmt.Fprintf(&instBody, "%s %s %s\n",
				nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(s.Institution, nameW))),
				barStyle.Render(strings.Repeat("█", barLen)),
				amtStyle.Render(cli.FormatMoney(s.Contributions)))
		}

		b.WriteString(components.ContentCard("Institutions", instBody.String(), cw))
	} else {
		hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(components.ContentCard("Institutions",
			hintStyle.Render("No ledger entries yet — `tfsaroom add` or `tfsaroom import` to get started"),
			cw))
	}

	return b.String()
}

// monthLabels returns X-axis labels for the 12 calendar months.
func monthLabels() []string {
	return []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
}
