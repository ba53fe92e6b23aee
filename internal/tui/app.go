// Package tui provides the interactive Bubble Tea dashboard for navi.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/report"
	"github.com/laosia/navi/internal/session"
	"github.com/laosia/navi/internal/tui/components"
	"github.com/laosia/navi/internal/tui/theme"
)

const (
	tabDashboard = iota
	tabAnalysis
	tabMenus
	tabCashflow
	tabSimulate
	tabCount
)

type formKind int

const (
	formNone formKind = iota
	formPlan
	formSetup
)

// Options tune the initial state of the dashboard.
type Options struct {
	// Year and Month select the cash-flow calendar. Zero means the month of
	// the latest ledger event.
	Year  int
	Month time.Month
	// FirstRun opens the setup wizard before the dashboard.
	FirstRun bool
}

// App is the root Bubble Tea model.
type App struct {
	sess   *session.Session
	policy finance.Policy
	cfg    config.Config

	// Views rebuilt from the session after every change
	dash     report.Dashboard
	analysis report.Analysis
	menus    report.MenuList
	detail   report.MenuDetail
	cashflow report.Cashflow
	sim      *finance.SimulationResult
	errs     [tabCount]error
	notice   string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	menu menusState
	cash cashState
	plan planState

	// huh forms
	form      *huh.Form
	formKind  formKind
	planVals  PlanValues
	setupVals SetupValues
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
)

// NewApp creates the dashboard over s.
func NewApp(s *session.Session, p finance.Policy, cfg config.Config, opts Options) App {
	a := App{
		sess:   s,
		policy: p,
		cfg:    cfg,
		plan:   planState{template: string(config.NormalizeTemplateName(cfg.General.Template))},
	}
	a.menu.input = newSearchInput()

	a.cash.year, a.cash.month = opts.Year, opts.Month
	if a.cash.year == 0 {
		a.cash.year, a.cash.month = latestMonth(s.Ledger())
	}

	a.recompute()

	if opts.FirstRun {
		a.setupVals = SetupValuesFrom(cfg)
		a.form = NewSetupForm(cfg, &a.setupVals)
		a.formKind = formSetup
	}
	return a
}

// latestMonth is the month of the last ledger event, or the current month
// for an empty ledger.
func latestMonth(l model.CashFlowLedger) (int, time.Month) {
	var last time.Time
	for _, ev := range l.Events {
		if ev.Date.After(last) {
			last = ev.Date
		}
	}
	if last.IsZero() {
		last = time.Now()
	}
	return last.Year(), last.Month()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// recompute rebuilds every view from the session. Each tab keeps its own
// error so one bad figure does not blank the whole dashboard.
func (a *App) recompute() {
	var err error
	a.dash, err = report.BuildDashboard(a.sess, a.policy)
	a.errs[tabDashboard] = err

	a.analysis, err = report.BuildAnalysis(a.sess, a.policy)
	a.errs[tabAnalysis] = err

	a.menus, err = report.BuildMenuList(a.sess, a.policy, a.menu.query())
	a.errs[tabMenus] = err
	if a.menu.cursor >= len(a.menus.Rows) {
		a.menu.cursor = len(a.menus.Rows) - 1
	}
	if a.menu.cursor < 0 {
		a.menu.cursor = 0
	}
	a.detail = report.MenuDetail{}
	if err == nil && len(a.menus.Rows) > 0 {
		id := a.menus.Rows[a.menu.cursor].Item.ID
		a.detail, err = report.BuildMenuDetail(a.sess, a.policy, id, a.menu.candidate)
		a.errs[tabMenus] = err
	}

	a.cashflow = report.BuildCashflow(a.sess, a.policy, a.cash.year, a.cash.month)

	a.sim = nil
	a.errs[tabSimulate] = nil
	if in, ok := a.sess.Simulation(); ok {
		r, err := a.policy.Simulate(in)
		if err != nil {
			a.errs[tabSimulate] = err
		} else {
			a.sim = &r
		}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabMenus && !a.menu.searching {
				a.moveMenuCursor(-1)
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabMenus && !a.menu.searching {
				a.moveMenuCursor(1)
			}
			return a, nil

		case tea.MouseButtonLeft:
			// The tab bar is the first row.
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			return a.updateForm(msg)
		}

		if a.activeTab == tabMenus && a.menu.searching {
			return a.updateMenuSearch(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.notice = ""

		var handled bool
		var cmd tea.Cmd
		switch a.activeTab {
		case tabMenus:
			handled, cmd = a.updateMenusKey(key)
		case tabCashflow:
			handled = a.updateCashflowKey(key)
		case tabSimulate:
			handled, cmd = a.updatePlanKey(key)
		}
		if handled {
			return a, cmd
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left":
			a.activeTab = (a.activeTab - 1 + tabCount) % tabCount
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % tabCount
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward everything else (cursor blinks, etc.) to the open form or the
	// search input.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.menu.searching {
		var cmd tea.Cmd
		a.menu.input, cmd = a.menu.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) openForm(f *huh.Form, kind formKind) (App, tea.Cmd) {
	a.form = f
	a.formKind = kind
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form, a.formKind = nil, formNone
		switch kind {
		case formPlan:
			a.finishPlan()
		case formSetup:
			a.finishSetup()
		}
		return a, nil

	case huh.StateAborted:
		a.form, a.formKind = nil, formNone
		return a, nil
	}

	return a, cmd
}

func (a *App) finishPlan() {
	in, err := a.planVals.Input()
	if err != nil {
		a.notice = err.Error()
		return
	}
	a.sess.SetSimulation(in)
	a.recompute()
	a.activeTab = tabSimulate
	if a.errs[tabSimulate] == nil {
		a.notice = "Plan simulated"
	}
}

func (a *App) finishSetup() {
	a.setupVals.Apply(&a.cfg)
	theme.SetActive(a.cfg.Appearance.Theme)
	cli.Currency = a.cfg.Display.Currency
	a.plan.template = string(config.NormalizeTemplateName(a.cfg.General.Template))
	if err := config.Save(a.cfg); err != nil {
		log.Warnf("saving config: %v", err)
		a.notice = "Could not save config; settings apply to this run only"
		return
	}
	a.notice = "Saved " + config.ConfigPath()
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

func (a App) percentPlaces() int {
	return a.cfg.Display.PercentPlaces
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.form.View()
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
		"\n  Terminal too narrow (%d cols)\n\n  navi needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

type binding struct{ key, desc string }

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"d a m c s", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
		{"Menus", []binding{
			{"j k", "Select item"},
			{"+ -", "Try a higher / lower price"},
			{"Enter", "Apply the tried price"},
			{"o f", "Cycle sort / category"},
			{"/", "Search by name"},
			{"Esc", "Clear search or price"},
		}},
		{"Cashflow", []binding{
			{"[ ]", "Previous / Next month"},
		}},
		{"Simulate", []binding{
			{"Enter", "New plan from template"},
			{"e", "Edit the current plan"},
			{"t", "Cycle template"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// contextLine is the pill under the tab bar: store, business type and what
// the active tab is looking at.
func (a App) contextLine() string {
	t := theme.Active
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	store := a.sess.Store()
	parts := []string{accent.Render(store.Name)}
	if store.BusinessType != "" {
		parts = append(parts, pill.Render(cli.FormatLabel(string(store.BusinessType))))
	}
	switch a.activeTab {
	case tabMenus:
		parts = append(parts, pill.Render("sort "+string(a.menu.sortMode())))
		if c := a.menu.categoryFilter(); c != "" {
			parts = append(parts, pill.Render(string(c)))
		}
		if a.menu.search != "" {
			parts = append(parts, pill.Render(fmt.Sprintf("%q", a.menu.search)))
		}
	case tabCashflow:
		parts = append(parts, accent.Render(fmt.Sprintf("%d-%02d", a.cash.year, int(a.cash.month))))
	case tabSimulate:
		parts = append(parts, pill.Render("template "+a.plan.template))
	}
	return pill.Render(" ") + strings.Join(parts, pill.Render(" │ ")) + pill.Render(" ")
}

func (a App) statusHints() string {
	switch a.activeTab {
	case tabMenus:
		return "[j/k]select  [+/-]price  [o]sort  [f]filter  [/]search"
	case tabCashflow:
		return "[ [ ] ]month"
	case tabSimulate:
		return "[enter]new plan  [e]dit  [t]emplate"
	default:
		return ""
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context pill
	contextRow := lipgloss.NewStyle().Background(t.Surface).Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" + contextRow.Render(a.contextLine())

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.notice)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	if err := a.errs[a.activeTab]; err != nil {
		content = a.renderError(err, cw)
	} else {
		switch a.activeTab {
		case tabDashboard:
			content = a.renderDashboardTab(cw)
		case tabAnalysis:
			content = a.renderAnalysisTab(cw)
		case tabMenus:
			content = a.renderMenusTab(cw, contentH)
		case tabCashflow:
			content = a.renderCashflowTab(cw)
		case tabSimulate:
			content = a.renderSimulateTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines, fill the background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderError(err error, cw int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	return components.ContentCard("Cannot compute this view", style.Render(err.Error()), cw)
}

// ─── Helpers ────────────────────────────────────────────────────

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "menu name"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 30
	return ti
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
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
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
