package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/tui/components"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Ledger view modes. Split is the zero value and therefore the default.
const (
	ledgerViewSplit  = iota // List + full entry detail side by side (default)
	ledgerViewDetail        // Full-screen detail
)

// ledgerState holds the ledger tab state.
type ledgerState struct {
	cursor       int
	viewMode     int
	offset       int // scroll offset for the list
	detailScroll int // scroll offset for the detail pane
	searching    bool
	searchInput  textinput.Model
	searchQuery  string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "institution, kind, or YYYY-MM"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 28
	return ti
}

// filterTransactionsBySearch matches the query against institution, kind,
// date, and ID prefix, case-insensitively.
func filterTransactionsBySearch(txs []model.Transaction, query string) []model.Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return txs
	}

	var out []model.Transaction
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Institution), q) ||
			strings.Contains(strings.ToLower(string(tx.Kind)), q) ||
			strings.Contains(tx.DateKey(), q) ||
			strings.HasPrefix(strings.ToLower(tx.ID), q) {
			out = append(out, tx)
		}
	}
	return out
}

func (a App) renderLedgerContent(filtered []model.Transaction, cw, h int) string {
	t := theme.Active
	ls := a.ledState

	if len(filtered) == 0 {
		hint := "No ledger entries yet — `tfsaroom add` or `tfsaroom import` to get started"
		if ls.searchQuery != "" {
			hint = fmt.Sprintf("No entries match %q — Esc clears the filter", ls.searchQuery)
		}
		return components.ContentCard("Ledger", lipgloss.NewStyle().Foreground(t.TextMuted).Render(hint), cw)
	}

	switch ls.viewMode {
	case ledgerViewDetail:
		return a.renderLedgerDetail(filtered, cw, h)
	default:
		return a.renderLedgerSplit(filtered, cw, h)
	}
}

func (a App) renderLedgerSplit(txs []model.Transaction, cw, h int) string {
	t := theme.Active
	ls := a.ledState

	if ls.cursor >= len(txs) {
		return ""
	}

	leftW := cw / 3
	if leftW < 30 {
		leftW = 30
	}
	rightW := cw - leftW

	// Left pane: condensed entry list
	leftInner := components.CardInnerWidth(leftW)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var leftBody strings.Builder
	visible := h - 6 // card border (2) + header row (2) + footer hint (2)
	if visible < 5 {
		visible = 5
	}

	if ls.searching {
		leftBody.WriteString(ls.searchInput.View())
		leftBody.WriteString("\n")
		visible--
	} else if ls.searchQuery != "" {
		leftBody.WriteString(mutedStyle.Render("filter: " + ls.searchQuery))
		leftBody.WriteString("\n")
		visible--
	}

	offset := ls.offset
	if ls.cursor < offset {
		offset = ls.cursor
	}
	if ls.cursor >= offset+visible {
		offset = ls.cursor - visible + 1
	}

	end := offset + visible
	if end > len(txs) {
		end = len(txs)
	}

	for i := offset; i < end; i++ {
		tx := txs[i]
		line := fmt.Sprintf("%s  %s %10s", tx.DateKey(), kindChar(tx.Kind), cli.FormatMoney(tx.Amount))
		if len(line) > leftInner {
			line = line[:leftInner]
		}

		if i == ls.cursor {
			leftBody.WriteString(selectedStyle.Render(line))
		} else {
			leftBody.WriteString(rowStyle.Render(line))
		}
		leftBody.WriteString("\n")
	}

	leftCard := components.ContentCard(fmt.Sprintf("Entries [%d]", a.year), leftBody.String(), leftW)

	// Right pane: full entry detail
	sel := txs[ls.cursor]
	rightBody := a.renderDetailBody(sel, rightW, headerStyle, mutedStyle)
	rightBody = scrollLines(rightBody, ls.detailScroll)

	titleStr := fmt.Sprintf("Entry %s", shortID(sel.ID))
	rightCard := components.ContentCard(titleStr, rightBody, rightW)

	return components.CardRow([]string{leftCard, rightCard})
}

func (a App) renderLedgerDetail(txs []model.Transaction, cw, h int) string {
	t := theme.Active
	ls := a.ledState

	if ls.cursor >= len(txs) {
		return ""
	}
	sel := txs[ls.cursor]

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := a.renderDetailBody(sel, cw, headerStyle, mutedStyle)
	body = scrollLines(body, ls.detailScroll)

	title := fmt.Sprintf("Entry %s", shortID(sel.ID))
	return components.ContentCard(title, body, cw)
}

// renderDetailBody generates the full detail content for a ledger entry.
// Used by both the split right pane and the full-screen detail view.
func (a App) renderDetailBody(sel model.Transaction, w int, headerStyle, mutedStyle lipgloss.Style) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green)
	if sel.Kind == model.Withdrawal {
		amountStyle = lipgloss.NewStyle().Foreground(t.Blue)
	}

	var body strings.Builder
	body.WriteString(mutedStyle.Render(sel.Institution))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n\n")

	body.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Date:  "),
		valueStyle.Render(sel.Date.Format("Monday, January 2 2006"))))
	body.WriteString(fmt.Sprintf("%s %s of %s\n",
		labelStyle.Render("Entry: "),
		valueStyle.Render(kindLabel(sel.Kind)),
		amountStyle.Render(cli.FormatMoney(sel.Amount))))
	body.WriteString(fmt.Sprintf("%s %s\n\n",
		labelStyle.Render("ID:    "),
		mutedStyle.Render(sel.ID)))

	// Simulation context for entries inside the simulated year
	if sel.InYear(a.year) && a.result.Year == a.year {
		res := a.result

		body.WriteString(headerStyle.Render("AFTER THIS DAY"))
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(strings.Repeat("─", 30)))
		body.WriteString("\n")

		dayIdx := sel.Date.YearDay() - 1
		if dayIdx >= 0 && dayIdx < len(res.Trace) {
			excess := res.Trace[dayIdx].Excess
			exStyle := lipgloss.NewStyle().Foreground(t.Green)
			exText := "within room"
			if excess > 0 {
				exStyle = lipgloss.NewStyle().Foreground(t.Orange)
				exText = cli.FormatMoney(excess) + " over the limit"
			}
			body.WriteString(fmt.Sprintf("%s %s\n",
				labelStyle.Render("Excess:       "),
				exStyle.Render(exText)))
		}

		rec := res.Months[sel.Date.Month()-1]
		if rec.Affected {
			body.WriteString(fmt.Sprintf("%s %s peak %s, penalty %s\n",
				labelStyle.Render("Month:        "),
				valueStyle.Render(rec.Month.String()),
				valueStyle.Render(cli.FormatMoney(rec.MaxExcess)),
				lipgloss.NewStyle().Foreground(t.Red).Render(cli.FormatMoney(rec.Penalty))))
		} else {
			body.WriteString(fmt.Sprintf("%s %s is penalty-free\n",
				labelStyle.Render("Month:        "),
				valueStyle.Render(rec.Month.String())))
		}
	} else if !sel.InYear(a.year) {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("(outside the simulated year %d)", a.year)))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[Enter] expand  [j/k] navigate  [/] search  [q] quit"))

	return body.String()
}

// scrollLines drops the first n lines, keeping at least the last line visible.
func scrollLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if n >= len(lines) {
		n = len(lines) - 1
	}
	return strings.Join(lines[n:], "\n")
}

func kindChar(k model.Kind) string {
	if k == model.Withdrawal {
		return "W"
	}
	return "C"
}

func kindLabel(k model.Kind) string {
	if k == model.Withdrawal {
		return "Withdrawal"
	}
	return "Contribution"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
