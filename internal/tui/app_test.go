package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
	"github.com/laosia/navi/internal/tui/components"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func newTestApp(t *testing.T) App {
	t.Helper()
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	a := NewApp(s, finance.DefaultPolicy(), config.DefaultConfig(), Options{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < tabCount; active++ {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}
		assert.Equal(t, -1, a.tabAtX(pos+5))
	}
}

func TestNewApp(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, tabDashboard, a.activeTab)
	assert.Equal(t, 2025, a.cash.year)
	assert.Equal(t, time.March, a.cash.month, "calendar opens on the latest ledger month")
	assert.Nil(t, a.sim)
	for i, err := range a.errs {
		assert.NoError(t, err, "tab %d", i)
	}
	assert.Equal(t, "cafe", a.plan.template)
}

func TestTabNavigation(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "m")
	assert.Equal(t, tabMenus, a.activeTab)
	a = press(t, a, "c")
	assert.Equal(t, tabCashflow, a.activeTab)
	a = press(t, a, "right", "right")
	assert.Equal(t, tabDashboard, a.activeTab, "wraps around")
	a = press(t, a, "left")
	assert.Equal(t, tabSimulate, a.activeTab)
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := newTestApp(t)
	x := components.TabVisualWidth(components.Tabs[0], true) + 1 + 2
	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, tabAnalysis, m.(App).activeTab)
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "?")
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	a = press(t, a, "x")
	assert.False(t, a.showHelp)
}

func TestMenusTab(t *testing.T) {
	a := press(t, newTestApp(t), "m")
	require.Len(t, a.menus.Rows, 2)
	assert.Equal(t, "Carbonara", a.detail.Item.Name, "profit sort puts carbonara first")

	t.Run("cursor", func(t *testing.T) {
		b := press(t, a, "j")
		assert.Equal(t, "Blend coffee", b.detail.Item.Name)
		b = press(t, b, "j")
		assert.Equal(t, 1, b.menu.cursor, "stops at the last row")
		b = press(t, b, "k")
		assert.Equal(t, "Carbonara", b.detail.Item.Name)
	})

	t.Run("price simulation", func(t *testing.T) {
		b := press(t, a, "+")
		assert.Equal(t, model.Money(990), b.menu.candidate)
		require.NotNil(t, b.detail.Simulation)
		assert.Equal(t, model.Money(10), b.detail.Simulation.ProfitDelta)

		b = press(t, b, "-")
		assert.Zero(t, b.menu.candidate, "back at the current price")
		assert.Nil(t, b.detail.Simulation)

		b = press(t, b, "+", "+", "esc")
		assert.Zero(t, b.menu.candidate)
	})

	t.Run("sort and filter", func(t *testing.T) {
		b := press(t, a, "o")
		assert.Equal(t, finance.SortCostRateDesc, b.menu.sortMode())
		b = press(t, b, "f")
		assert.Equal(t, model.MenuFood, b.menu.categoryFilter())
		require.Len(t, b.menus.Rows, 1)
		assert.Equal(t, "Carbonara", b.menus.Rows[0].Item.Name)
	})

	t.Run("search", func(t *testing.T) {
		b := press(t, a, "/")
		require.True(t, b.menu.searching)
		b = press(t, b, "c", "o", "f", "enter")
		assert.False(t, b.menu.searching)
		assert.Equal(t, "cof", b.menu.search)
		require.Len(t, b.menus.Rows, 1)
		assert.Equal(t, "Blend coffee", b.detail.Item.Name)

		b = press(t, b, "esc")
		assert.Empty(t, b.menu.search)
		assert.Len(t, b.menus.Rows, 2)
	})
}

func TestMenusApplyPrice(t *testing.T) {
	a := press(t, newTestApp(t), "m")
	for i := 0; i < 10; i++ {
		a = press(t, a, "+")
	}
	assert.Equal(t, model.Money(1_080), a.menu.candidate)

	a = press(t, a, "enter")
	assert.Zero(t, a.menu.candidate)
	assert.Contains(t, a.notice, "Carbonara now")

	m, err := a.sess.Menu("2")
	require.NoError(t, err)
	assert.Equal(t, model.Money(1_080), m.Price)
	assert.Equal(t, model.Money(1_080), a.detail.Item.Price)
}

func TestCashflowMonthNavigation(t *testing.T) {
	a := press(t, newTestApp(t), "c")
	assert.Equal(t, model.Money(3_620_000), a.cashflow.Summary.Closing)

	a = press(t, a, "[", "[")
	assert.Equal(t, time.January, a.cash.month)
	assert.Equal(t, model.Money(2_720_000), a.cashflow.Summary.Closing)

	a = press(t, a, "]", "]", "]")
	assert.Equal(t, time.April, a.cash.month)
	assert.Empty(t, a.cashflow.EventDays())
	assert.Equal(t, model.Money(3_620_000), a.cashflow.Summary.Closing, "quiet month carries the balance")

	a = press(t, a, "[", "[", "[", "[")
	assert.Equal(t, 2024, a.cash.year)
	assert.Equal(t, time.December, a.cash.month)
}

func TestSimulateTab(t *testing.T) {
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	tpl, ok := config.LookupTemplate(config.DefaultConfig(), "cafe")
	require.True(t, ok)
	s.SetSimulation(tpl.Input(model.BusinessCafe))

	a := NewApp(s, finance.DefaultPolicy(), config.DefaultConfig(), Options{})
	require.NotNil(t, a.sim)
	assert.Equal(t, model.Money(1_188_571), a.sim.BreakEvenSales)

	a = press(t, a, "s", "t")
	assert.Equal(t, "izakaya", a.plan.template)

	a = press(t, a, "e")
	require.NotNil(t, a.form, "edit opens the wizard")
	assert.Equal(t, "800", a.planVals.AvgSpending)
}

func TestSimulateTabInvalidPlan(t *testing.T) {
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	s.SetSimulation(model.SimulationInput{CostRatePercent: 100})

	a := NewApp(s, finance.DefaultPolicy(), config.DefaultConfig(), Options{})
	assert.ErrorIs(t, a.errs[tabSimulate], finance.ErrDomain)
	assert.Nil(t, a.sim)
}

func TestFirstRunOpensSetup(t *testing.T) {
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	a := NewApp(s, finance.DefaultPolicy(), config.DefaultConfig(), Options{FirstRun: true})
	require.NotNil(t, a.form)
	assert.Equal(t, formSetup, a.formKind)
	assert.Equal(t, "cafe", a.setupVals.Template)
}

func TestViewRendersEveryTab(t *testing.T) {
	for _, width := range []int{140, 100} {
		a := newTestApp(t)
		m, _ := a.Update(tea.WindowSizeMsg{Width: width, Height: 45})
		a = m.(App)
		for _, key := range []string{"d", "a", "m", "c", "s"} {
			a = press(t, a, key)
			view := a.View()
			lines := strings.Split(view, "\n")
			assert.Len(t, lines, 45, "width=%d tab=%s", width, key)
			assert.Contains(t, view, "Cafe Laosia")
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, m.(App).View(), "too narrow")
}
