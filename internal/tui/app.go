// Package tui provides the interactive Bubble Tea dashboard for tfsaroom.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/cli"
	"github.com/theirongolddev/tfsaroom/internal/config"
	"github.com/theirongolddev/tfsaroom/internal/engine"
	"github.com/theirongolddev/tfsaroom/internal/model"
	"github.com/theirongolddev/tfsaroom/internal/store"
	"github.com/theirongolddev/tfsaroom/internal/tui/components"
	"github.com/theirongolddev/tfsaroom/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial ledger read finishes.
type DataLoadedMsg struct {
	Transactions []model.Transaction
	LoadTime     time.Duration
	Err          error
}

// RefreshDataMsg is sent when a background ledger reload completes.
type RefreshDataMsg struct {
	Transactions []model.Transaction
	LoadTime     time.Duration
	Err          error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	transactions []model.Transaction
	loaded       bool
	loadTime     time.Duration
	loadErr      error

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Pre-computed for the current filter
	result       model.SimulationResult
	institutions []model.InstitutionStats
	flows        []model.MonthFlow
	display      []model.Transaction // ledger tab list, most recent first

	// Simulation inputs, adjustable from the settings tab
	year         int
	startingRoom float64

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Filter state
	institution string

	// Per-tab state
	ledState ledgerState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	// Ledger database location
	ledgerPath string
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(ledgerPath string, year int, startingRoom float64, institution string) App {
	needSetup := !config.Exists()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	// Load refresh settings from config
	cfg := loadConfigOrDefault()
	refreshInterval := time.Duration(cfg.TUI.RefreshIntervalSecs) * time.Second
	if refreshInterval < 10*time.Second {
		refreshInterval = 30 * time.Second // minimum 10s, default 30s
	}

	return App{
		ledgerPath:      ledgerPath,
		year:            year,
		startingRoom:    startingRoom,
		institution:     institution,
		needSetup:       needSetup,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion, // Enable mouse support
		loadDataCmd(a.ledgerPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	txs := a.transactions
	if a.institution != "" {
		txs = engine.FilterByInstitution(txs, a.institution)
	}

	a.result = engine.Simulate(a.year, a.startingRoom, txs)
	a.institutions = engine.AggregateInstitutions(txs)
	a.flows = engine.MonthlyFlows(a.year, txs)

	// Sort the ledger tab list (most recent first; admission order within a day)
	display := make([]model.Transaction, len(txs))
	copy(display, txs)
	sort.SliceStable(display, func(i, j int) bool {
		return display[i].DateKey() > display[j].DateKey()
	})
	a.display = display

	// Clamp ledger cursor to the new list bounds
	if a.ledState.cursor >= len(a.display) {
		a.ledState.cursor = len(a.display) - 1
	}
	if a.ledState.cursor < 0 {
		a.ledState.cursor = 0
	}
	a.ledState.detailScroll = 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			// Scroll up in ledger tab
			if a.activeTab == 2 && !a.ledState.searching {
				if a.ledState.cursor > 0 {
					a.ledState.cursor--
					a.ledState.detailScroll = 0
				}
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			// Scroll down in ledger tab
			if a.activeTab == 2 && !a.ledState.searching {
				searchFiltered := a.getSearchFilteredTransactions()
				if a.ledState.cursor < len(searchFiltered)-1 {
					a.ledState.cursor++
					a.ledState.detailScroll = 0
				}
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Check if click is in tab bar area (first 2 lines)
			if msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == 4 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Ledger search mode intercepts all keys when active
		if a.activeTab == 2 && a.ledState.searching {
			return a.updateLedgerSearch(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Ledger tab has its own keybindings
		if a.activeTab == 2 {
			compactLedger := a.isCompactLayout()
			searchFiltered := a.getSearchFilteredTransactions()

			switch key {
			case "/":
				// Start search mode
				a.ledState.searching = true
				a.ledState.searchInput = newSearchInput()
				a.ledState.searchInput.Focus()
				return a, a.ledState.searchInput.Cursor.BlinkCmd()
			case "q":
				if !compactLedger && a.ledState.viewMode == ledgerViewDetail {
					a.ledState.viewMode = ledgerViewSplit
					return a, nil
				}
				return a, tea.Quit
			case "enter", "f":
				if compactLedger {
					return a, nil
				}
				if a.ledState.viewMode == ledgerViewSplit {
					a.ledState.viewMode = ledgerViewDetail
				}
				return a, nil
			case "esc":
				// Clear search if active, otherwise exit detail view
				if a.ledState.searchQuery != "" {
					a.ledState.searchQuery = ""
					a.ledState.cursor = 0
					a.ledState.offset = 0
					return a, nil
				}
				if compactLedger {
					return a, nil
				}
				if a.ledState.viewMode == ledgerViewDetail {
					a.ledState.viewMode = ledgerViewSplit
				}
				return a, nil
			case "j", "down":
				if a.ledState.cursor < len(searchFiltered)-1 {
					a.ledState.cursor++
					a.ledState.detailScroll = 0
				}
				return a, nil
			case "k", "up":
				if a.ledState.cursor > 0 {
					a.ledState.cursor--
					a.ledState.detailScroll = 0
				}
				return a, nil
			case "g":
				a.ledState.cursor = 0
				a.ledState.offset = 0
				a.ledState.detailScroll = 0
				return a, nil
			case "G":
				a.ledState.cursor = len(searchFiltered) - 1
				if a.ledState.cursor < 0 {
					a.ledState.cursor = 0
				}
				a.ledState.detailScroll = 0
				return a, nil
			case "J":
				a.ledState.detailScroll++
				return a, nil
			case "K":
				if a.ledState.detailScroll > 0 {
					a.ledState.detailScroll--
				}
				return a, nil
			case "ctrl+d":
				halfPage := (a.height - scrollOverhead) / 2
				if halfPage < minHalfPageScroll {
					halfPage = minHalfPageScroll
				}
				a.ledState.detailScroll += halfPage
				return a, nil
			case "ctrl+u":
				halfPage := (a.height - scrollOverhead) / 2
				if halfPage < minHalfPageScroll {
					halfPage = minHalfPageScroll
				}
				a.ledState.detailScroll -= halfPage
				if a.ledState.detailScroll < 0 {
					a.ledState.detailScroll = 0
				}
				return a, nil
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == 4 {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Global quit from non-ledger tabs
		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.ledgerPath)
		}

		// Toggle auto-refresh
		if key == "R" {
			a.autoRefresh = !a.autoRefresh
			// Persist to config (best-effort, ignore errors)
			cfg := loadConfigOrDefault()
			cfg.TUI.AutoRefresh = a.autoRefresh
			_ = config.Save(cfg)
			return a, nil
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.transactions = msg.Transactions
		a.loadErr = msg.Err
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(len(a.transactions), a.ledgerPath, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}

		// Auto-refresh ledger data
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.ledgerPath))
			}
		}

		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err == nil {
			a.transactions = msg.Transactions
			a.loadErr = nil
			a.loadTime = msg.LoadTime
			a.recompute()
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tfsaroom needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ tfsaroom"))
	b.WriteString(subtitleStyle.Render(" · TFSA Room & Penalty Tracker"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	// Navigation section
	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o m l t x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"J K", "Scroll detail pane"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"/", "Search the ledger"},
		{"Enter", "Expand / Confirm"},
		{"Esc", "Back / Cancel"},
		{"r", "Reload the ledger"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + filter pill)
	filterPillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	filterAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	filterStr := filterPillStyle.Render(" ") +
		filterAccentStyle.Render(strconv.Itoa(a.year))
	if a.institution != "" {
		filterStr += filterPillStyle.Render(" │ ") + filterAccentStyle.Render(a.institution)
	}
	filterStr += filterPillStyle.Render(" ")

	// Pad filter line to full width
	filterRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		filterRowStyle.Render(filterStr)

	// 2. Render status bar
	dataAge := fmt.Sprintf("%dms", a.loadTime.Milliseconds())
	statusBar := components.RenderStatusBar(w, dataAge, a.statusSummary(), a.refreshing, a.autoRefresh)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content (pass contentH to the ledger list)
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderMonthlyTab(cw)
	case 2:
		searchFiltered := a.getSearchFilteredTransactions()
		content = a.renderLedgerContent(searchFiltered, cw, contentH)
	case 3:
		content = a.renderTraceTab(cw)
	case 4:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure entire terminal is filled with background
	// This handles any edge cases where the calculated heights don't perfectly match
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// statusSummary condenses the simulation into a one-line status bar readout.
func (a App) statusSummary() string {
	res := a.result
	if res.CurrentExcess > 0 {
		return fmt.Sprintf("excess %s · penalty %s", cli.FormatMoney(res.CurrentExcess), cli.FormatMoney(res.TotalPenalty))
	}
	if res.TotalPenalty > 0 {
		return fmt.Sprintf("penalty %s", cli.FormatMoney(res.TotalPenalty))
	}
	return fmt.Sprintf("room %s", cli.FormatMoney(res.RemainingRoom))
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadLedgerTransactions loads every admitted entry from the ledger database.
// A missing database is an empty ledger, not an error, so the dashboard can
// open before the first `add`.
func loadLedgerTransactions(path string) ([]model.Transaction, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	return db.LoadTransactions()
}

// loadDataCmd reads the ledger database in a background command.
func loadDataCmd(ledgerPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		txs, err := loadLedgerTransactions(ledgerPath)
		return DataLoadedMsg{
			Transactions: txs,
			LoadTime:     time.Since(start),
			Err:          err,
		}
	}
}

// refreshDataCmd reloads the ledger in the background (no loading screen).
func refreshDataCmd(ledgerPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		txs, err := loadLedgerTransactions(ledgerPath)
		return RefreshDataMsg{
			Transactions: txs,
			LoadTime:     time.Since(start),
			Err:          err,
		}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		// Use PlaceHorizontal to ensure proper width and background fill
		// This is more reliable than just Background().Render(spaces)
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		// Must match RenderTabBar's visual width calculation exactly.
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// ─── Ledger Search ──────────────────────────────────────────────

// updateLedgerSearch handles key events while in search mode.
func (a App) updateLedgerSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		// Apply search and exit search mode
		a.ledState.searchQuery = strings.TrimSpace(a.ledState.searchInput.Value())
		a.ledState.searching = false
		a.ledState.cursor = 0
		a.ledState.offset = 0
		a.ledState.detailScroll = 0
		return a, nil

	case "esc":
		// Cancel search mode without applying
		a.ledState.searching = false
		return a, nil
	}

	// Forward other keys to the text input
	var cmd tea.Cmd
	a.ledState.searchInput, cmd = a.ledState.searchInput.Update(msg)
	return a, cmd
}

// getSearchFilteredTransactions returns ledger entries filtered by the current search query.
func (a App) getSearchFilteredTransactions() []model.Transaction {
	if a.ledState.searchQuery == "" {
		return a.display
	}
	return filterTransactionsBySearch(a.display, a.ledState.searchQuery)
}
