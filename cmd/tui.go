package cmd

import (
	"fmt"

	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/tui"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive dashboard",
	Long:  "Full-screen dashboard with overview, monthly penalties, ledger browser, excess trace, and settings.",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.TUI.Theme)

	// Force truecolor so themes render identically across terminals.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(flagLedgerPath, flagYear, flagRoom, flagInstitution)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
