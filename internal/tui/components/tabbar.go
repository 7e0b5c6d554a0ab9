package components

import (
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Monthly", Key: 'm', KeyPos: 0},
	{Name: "Ledger", Key: 'l', KeyPos: 0},
	{Name: "Trace", Key: 't', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// TabVisualWidth returns the rendered cell width of one tab. Mouse hit
// testing depends on this staying in sync with RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	w := len(tab.Name) + 2 // one space of padding each side
	if !active && tab.KeyPos < 0 {
		w += 3 // "[x]" shortcut hint
	}
	return w
}

// RenderTabBar renders the single-row tab bar with the given active index.
// Tabs are separated by exactly one column.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		var rendered string
		switch {
		case i == activeIdx:
			rendered = activeStyle.Render(" " + tab.Name + " ")
		case tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name):
			// Highlight the shortcut letter in place.
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			rendered = inactiveStyle.Render(" "+before) +
				keyStyle.Render(key) +
				inactiveStyle.Render(after+" ")
		default:
			// Key not in the name, so append a bracketed hint.
			rendered = inactiveStyle.Render(" "+tab.Name) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(" ")
		}
		parts = append(parts, rendered)
	}

	bar := strings.Join(parts, " ")

	// Fill the remainder of the row so the bar spans the full width.
	pad := width - lipgloss.Width(bar)
	if pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return bar
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
