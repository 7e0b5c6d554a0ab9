package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/tui/components"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldYear = iota
	settingsFieldRoom
	settingsFieldInstitution
	settingsFieldTheme
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsFieldCount is used by app.go for cursor bounds checking

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldYear:
		ti.Placeholder = "2025"
		ti.SetValue(strconv.Itoa(a.year))
	case settingsFieldRoom:
		ti.Placeholder = "7000 or -500"
		ti.SetValue(strconv.FormatFloat(a.startingRoom, 'f', -1, 64))
	case settingsFieldInstitution:
		ti.Placeholder = "Imported"
		ti.SetValue(cfg.Simulation.DefaultInstitution)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(cfg.TUI.Theme)
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "30 (seconds, minimum 10)"
		// Use effective value from App state to match display
		intervalSecs := int(a.refreshInterval.Seconds())
		if intervalSecs < 10 {
			intervalSecs = 30
		}
		ti.SetValue(strconv.Itoa(intervalSecs))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldYear:
		var y int
		if _, err := fmt.Sscanf(val, "%d", &y); err == nil && y >= 2009 {
			cfg.Simulation.Year = y
			a.year = y
			a.recompute()
		}
	case settingsFieldRoom:
		var r float64
		if _, err := fmt.Sscanf(val, "%f", &r); err == nil {
			cfg.Simulation.StartingRoom = r
			a.startingRoom = r
			a.recompute()
		}
	case settingsFieldInstitution:
		cfg.Simulation.DefaultInstitution = val
	case settingsFieldTheme:
		// Validate theme name
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if found {
			cfg.TUI.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldAutoRefresh:
		cfg.TUI.AutoRefresh = val == "true" || val == "1" || val == "yes"
		a.autoRefresh = cfg.TUI.AutoRefresh
	case settingsFieldRefreshInterval:
		var interval int
		if _, err := fmt.Sscanf(val, "%d", &interval); err == nil && interval >= 10 {
			cfg.TUI.RefreshIntervalSecs = interval
			a.refreshInterval = time.Duration(interval) * time.Second
		}
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	institutionDisplay := cfg.Simulation.DefaultInstitution
	if institutionDisplay == "" {
		institutionDisplay = "(not set)"
	}

	// Year and room show the live simulation inputs; CLI flags may have
	// overridden what the config file says.
	refreshIntervalSecs := int(a.refreshInterval.Seconds())
	if refreshIntervalSecs < 10 {
		refreshIntervalSecs = 30 // match the effective default
	}

	fields := []field{
		{"Simulation Year", strconv.Itoa(a.year)},
		{"Starting Room", cli.FormatMoney(a.startingRoom)},
		{"Institution", institutionDisplay},
		{"Theme", cfg.TUI.Theme},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", refreshIntervalSecs)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			// Use lipgloss.Width() for correct visual width calculation
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			// Normal row
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Ledger:          ") + valueStyle.Render(a.ledgerPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Entries loaded:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.transactions)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:       ") + valueStyle.Render(fmt.Sprintf("%dms", a.loadTime.Milliseconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
