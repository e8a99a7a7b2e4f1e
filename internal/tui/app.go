// Package tui provides the interactive Bubble Tea dashboard for debtpath.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"
	"github.com/theirongolddev/debtpath/internal/scenario"
	"github.com/theirongolddev/debtpath/internal/tui/components"
	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 180
	minContentHeight = 5
)

// BudgetStep is how much + and - move the monthly budget.
var BudgetStep = decimal.NewFromInt(25)

// Loader fetches the debts to plan for and names where they came from.
type Loader func() ([]model.Debt, string, error)

// DebtsLoadedMsg is sent when the loader finishes.
type DebtsLoadedMsg struct {
	Debts    []model.Debt
	Source   string
	Err      error
	LoadTime time.Duration
}

// Options configures a new App.
type Options struct {
	Load      Loader
	Strategy  model.Strategy
	Budget    decimal.Decimal // zero starts at the recommended scenario budget
	MaxMonths int
	Scenarios []model.ScenarioDef
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	debts    []model.Debt
	source   string
	loaded   bool
	loadErr  error
	loadTime time.Duration
	load     Loader

	// Plan inputs
	strategy  model.Strategy
	budget    decimal.Decimal
	maxMonths int
	defs      []model.ScenarioDef

	// Pre-computed for the current inputs
	result     model.SimulationResult
	comparison model.Comparison
	scenarios  []model.ScenarioView
	simErr     error
	scenErr    error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// Schedule tab state
	schedDebt   int
	schedScroll int
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	if opts.Strategy.Kind == "" {
		opts.Strategy = model.Strategy{Kind: model.Avalanche}
	}
	if opts.MaxMonths <= 0 {
		opts.MaxMonths = scenario.DefaultMaxMonths
	}
	if len(opts.Scenarios) == 0 {
		opts.Scenarios = scenario.DefaultDefinitions()
	}

	return App{
		load:      opts.Load,
		strategy:  opts.Strategy,
		budget:    opts.Budget,
		maxMonths: opts.MaxMonths,
		defs:      opts.Scenarios,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDebtsCmd(a.load),
		a.spinner.Tick,
	)
}

func loadDebtsCmd(load Loader) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return DebtsLoadedMsg{Err: errors.New("no debt source configured")}
		}
		start := time.Now()
		debts, source, err := load()
		return DebtsLoadedMsg{Debts: debts, Source: source, Err: err, LoadTime: time.Since(start)}
	}
}

// recompute reruns every simulation for the current inputs.
func (a *App) recompute() {
	a.result = model.SimulationResult{}
	a.comparison = model.Comparison{}
	a.scenarios = nil
	a.simErr, a.scenErr = nil, nil

	if len(a.debts) == 0 {
		return
	}

	if a.budget.IsZero() {
		a.budget = recommendedBudget(a.debts, a.strategy)
	}

	a.result, a.simErr = payoff.Simulate(a.debts, a.strategy, a.budget, a.maxMonths)
	if a.simErr == nil {
		a.comparison, a.simErr = payoff.Compare(a.debts, a.budget, a.maxMonths)
	}

	pres, err := scenario.Present(context.Background(), a.debts, a.defs, a.strategy)
	if err != nil {
		a.scenErr = err
	} else {
		a.scenarios = pres.Ordered(a.defs)
	}

	if ids := a.scheduleIDs(); a.schedDebt >= len(ids) {
		a.schedDebt = max(0, len(ids)-1)
	}
}

// recommendedBudget is the budget of the default "recommended" scenario,
// falling back to the minimum budget.
func recommendedBudget(debts []model.Debt, s model.Strategy) decimal.Decimal {
	for _, def := range scenario.DefaultDefinitions() {
		if def.Label != "recommended" {
			continue
		}
		if b, err := scenario.Budget(debts, def.Budget, s); err == nil {
			return b
		}
	}
	return payoff.MinimumBudget(debts)
}

// scheduleIDs lists debts in the order the plan targets them, followed by
// any without a schedule.
func (a App) scheduleIDs() []string {
	ids := append([]string(nil), a.result.Order...)
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, d := range a.debts {
		if _, ok := seen[d.ID]; !ok {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func (a App) debtByID(id string) (model.Debt, bool) {
	for _, d := range a.debts {
		if d.ID == id {
			return d, true
		}
	}
	return model.Debt{}, false
}

func (a *App) toggleStrategy() {
	if a.strategy.Kind == model.Snowball {
		a.strategy = model.Strategy{Kind: model.Avalanche}
	} else {
		a.strategy = model.Strategy{Kind: model.Snowball}
	}
	a.recompute()
}

// adjustBudget moves the budget by delta, never below the minimum budget.
func (a *App) adjustBudget(delta decimal.Decimal) {
	next := a.budget.Add(delta)
	if floor := payoff.MinimumBudget(a.debts); next.LessThan(floor) {
		next = floor
	}
	if next.Equal(a.budget) {
		return
	}
	a.budget = next
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabSchedule {
				a.scroll(-1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabSchedule {
				a.scroll(1)
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DebtsLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.debts = msg.Debts
		a.source = msg.Source
		a.loadTime = msg.LoadTime
		if a.loadErr == nil {
			a.recompute()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabSchedule {
		switch key {
		case "j", "down":
			a.scroll(1)
			return a, nil
		case "k", "up":
			a.scroll(-1)
			return a, nil
		case "g":
			a.schedScroll = 0
			return a, nil
		case "G":
			a.schedScroll = a.maxScroll()
			return a, nil
		case "]":
			if n := len(a.scheduleIDs()); n > 0 {
				a.schedDebt = (a.schedDebt + 1) % n
				a.schedScroll = 0
			}
			return a, nil
		case "[":
			if n := len(a.scheduleIDs()); n > 0 {
				a.schedDebt = (a.schedDebt - 1 + n) % n
				a.schedScroll = 0
			}
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "t":
		if len(a.debts) > 0 {
			a.toggleStrategy()
		}
	case "+", "=":
		if len(a.debts) > 0 {
			a.adjustBudget(BudgetStep)
		}
	case "-", "_":
		if len(a.debts) > 0 {
			a.adjustBudget(BudgetStep.Neg())
		}
	case "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
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
	if a.loadErr != nil {
		return a.viewMessage("Could not load debts", a.loadErr.Error())
	}
	if len(a.debts) == 0 {
		return a.viewMessage("No debts yet",
			"Add one with `debtpath debts add` or pass a debts file with --debts.")
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  debtpath needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ debtpath"))
	b.WriteString(subtitleStyle.Render(" · Debt Payoff Planner"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading debts..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMessage(title, body string) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	content := titleStyle.Render(title) + "\n\n" +
		bodyStyle.Render(body) + "\n\n" +
		dimStyle.Render("Press q to quit")

	return lipgloss.Place(a.width, max(a.height, 5), lipgloss.Center, lipgloss.Center,
		cardStyle.Render(content),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"p s c n", "Jump to Plan / Schedule / Compare / Scenarios"},
		{"←/→", "Previous / next tab"},
		{"t", "Toggle snowball / avalanche"},
		{"+ / -", fmt.Sprintf("Raise / lower budget by %s", cli.FormatMoney(BudgetStep))},
		{"[ / ]", "Previous / next debt (Schedule)"},
		{"j / k", "Scroll schedule"},
		{"g / G", "Top / bottom of schedule"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	status := components.Status{
		Strategy: a.strategy.String(),
		Budget:   cli.FormatMoney(a.budget),
		Source:   a.source,
	}
	switch {
	case a.simErr != nil:
		status.Warning = "budget too low"
	case a.result.Incomplete:
		status.Warning = "not paid off within " + cli.FormatMonths(a.maxMonths)
	}
	statusBar := components.RenderStatusBar(w, status)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabPlan:
		content = a.renderPlanTab(cw)
	case tabSchedule:
		content = a.renderScheduleTab(cw)
	case tabCompare:
		content = a.renderCompareTab(cw)
	case tabScenarios:
		content = a.renderScenariosTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

const (
	tabPlan = iota
	tabSchedule
	tabCompare
	tabScenarios
)

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
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
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if pad := w - lipgloss.Width(line); pad > 0 {
			lines[i] = line + style.Render(strings.Repeat(" ", pad))
		}
	}
	return strings.Join(lines, "\n")
}

// errorLine renders an engine error as a one-line warning.
func errorLine(err error) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)
	var be *payoff.BudgetError
	if errors.As(err, &be) {
		return style.Render(fmt.Sprintf("Budget %s is below the %s in minimum payments. Press + to raise it.",
			cli.FormatMoney(be.Budget), cli.FormatMoney(be.Required)))
	}
	return style.Render(err.Error())
}
