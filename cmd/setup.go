package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-run configuration",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	yearStr := strconv.Itoa(cfg.Simulation.Year)
	roomStr := strconv.FormatFloat(cfg.Simulation.StartingRoom, 'f', -1, 64)
	institution := cfg.Simulation.DefaultInstitution
	themeName := cfg.TUI.Theme
	autoRefresh := cfg.TUI.AutoRefresh

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Simulation year").
				Description("The calendar year to simulate.").
				Value(&yearStr).
				Validate(validateYear),
			huh.NewInput().
				Title("Starting contribution room").
				Description("Room on January 1. Negative means you begin the year in excess.").
				Value(&roomStr).
				Validate(validateRoom),
			huh.NewInput().
				Title("Default institution").
				Description("Used when an entry doesn't name one.").
				Value(&institution),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
			huh.NewConfirm().
				Title("Auto-refresh the dashboard?").
				Value(&autoRefresh),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled.")
			return nil
		}
		return err
	}

	year, _ := strconv.Atoi(strings.TrimSpace(yearStr))
	room, _ := strconv.ParseFloat(strings.TrimSpace(roomStr), 64)

	cfg.Simulation.Year = year
	cfg.Simulation.StartingRoom = room
	cfg.Simulation.DefaultInstitution = strings.TrimSpace(institution)
	cfg.TUI.Theme = themeName
	cfg.TUI.AutoRefresh = autoRefresh

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved %s\n", config.ConfigPath())
	fmt.Printf("  Simulating %d with %s starting room.\n", year, cli.FormatMoney(room))
	fmt.Println("  Run `tfsaroom` for a summary or `tfsaroom tui` for the dashboard.")
	fmt.Println()

	return nil
}

func validateYear(s string) error {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a four-digit year")
	}
	if year < 2009 {
		return errors.New("TFSAs began in 2009")
	}
	if year > 2100 {
		return errors.New("year is too far out")
	}
	return nil
}

func validateRoom(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a dollar amount, like 7000 or -500")
	}
	return nil
}
