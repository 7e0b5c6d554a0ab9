package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the live simulation readout and data age on the right.
func RenderStatusBar(width int, dataAge, summary string, refreshing, autoRefresh bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	switch {
	case refreshing:
		left += "  " + lipgloss.NewStyle().Foreground(t.Accent).Render("⟳ refreshing")
	case autoRefresh:
		left += "  ⟳ auto"
	}

	right := ""
	if summary != "" {
		right = summary + "  "
	}
	if dataAge != "" {
		right += fmt.Sprintf("Data: %s ", dataAge)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
