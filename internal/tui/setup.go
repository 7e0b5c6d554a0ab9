package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run form answers until they are saved.
type setupValues struct {
	year        string
	room        string
	institution string
	theme       string
	autoRefresh bool
}

// newSetupForm builds the first-run setup form. entryCount and ledgerPath
// are shown so the user can tell whether an existing ledger was picked up.
func newSetupForm(entryCount int, ledgerPath string, vals *setupValues) *huh.Form {
	if vals.year == "" {
		vals.year = strconv.Itoa(time.Now().UTC().Year())
	}
	if vals.room == "" {
		vals.room = "0"
	}
	if vals.institution == "" {
		vals.institution = model.DefaultInstitution
	}
	if vals.theme == "" {
		vals.theme = theme.Active.Name
	}

	ledgerNote := fmt.Sprintf("No ledger yet at %s — add entries with `tfsaroom add` or `tfsaroom import`.", ledgerPath)
	if entryCount > 0 {
		ledgerNote = fmt.Sprintf("Found %d ledger entries at %s.", entryCount, ledgerPath)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("◈ tfsaroom setup").
				Description(ledgerNote),
			huh.NewInput().
				Title("Simulation year").
				Description("The calendar year to simulate.").
				Validate(validateSetupYear).
				Value(&vals.year),
			huh.NewInput().
				Title("Starting contribution room").
				Description("Room on January 1. Negative means you begin the year in excess.").
				Validate(validateSetupRoom).
				Value(&vals.room),
			huh.NewInput().
				Title("Default institution").
				Description("Used when an entry doesn't name one.").
				Value(&vals.institution),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.theme),
			huh.NewConfirm().
				Title("Auto-refresh the dashboard?").
				Value(&vals.autoRefresh),
		),
	)
}

// saveSetupConfig persists the setup answers and applies them to the
// running app so the dashboard reflects them without a restart.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()

	if y, err := strconv.Atoi(strings.TrimSpace(a.setupVals.year)); err == nil {
		cfg.Simulation.Year = y
		a.year = y
	}
	if r, err := strconv.ParseFloat(strings.TrimSpace(a.setupVals.room), 64); err == nil {
		cfg.Simulation.StartingRoom = r
		a.startingRoom = r
	}
	if inst := strings.TrimSpace(a.setupVals.institution); inst != "" {
		cfg.Simulation.DefaultInstitution = inst
	}
	if a.setupVals.theme != "" {
		cfg.TUI.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}
	cfg.TUI.AutoRefresh = a.setupVals.autoRefresh
	a.autoRefresh = a.setupVals.autoRefresh

	return config.Save(cfg)
}

func validateSetupYear(s string) error {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a four-digit year")
	}
	if y < 2009 {
		return errors.New("TFSAs began in 2009")
	}
	if y > 2100 {
		return errors.New("year is too far out")
	}
	return nil
}

func validateSetupRoom(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a dollar amount, like 7000 or -500")
	}
	return nil
}
