package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/report"
	"github.com/laosia/navi/internal/tui/components"
	"github.com/laosia/navi/internal/tui/theme"
)

// priceStep is how far one +/- press moves the candidate price.
const priceStep model.Money = 10

var menuCategories = []model.MenuCategory{"", model.MenuFood, model.MenuDrink, model.MenuDessert}

// menusState holds the menus tab state.
type menusState struct {
	cursor      int
	offset      int // scroll offset for the list
	sortIdx     int // index into finance.SortModes
	categoryIdx int // index into menuCategories
	search      string
	searching   bool
	input       textinput.Model
	candidate   model.Money // 0 means no price simulation
}

func (m menusState) sortMode() finance.SortMode {
	return finance.SortModes[m.sortIdx%len(finance.SortModes)]
}

func (m menusState) categoryFilter() model.MenuCategory {
	return menuCategories[m.categoryIdx%len(menuCategories)]
}

func (m menusState) query() report.MenuQuery {
	return report.MenuQuery{
		Sort:     m.sortMode(),
		Category: m.categoryFilter(),
		Search:   m.search,
	}
}

func (a *App) moveMenuCursor(delta int) {
	next := a.menu.cursor + delta
	if next < 0 || next >= len(a.menus.Rows) {
		return
	}
	a.menu.cursor = next
	a.menu.candidate = 0
	a.recompute()
}

// updateMenusKey handles keys on the menus tab. It reports false for keys
// the tab does not use so global bindings still apply.
func (a *App) updateMenusKey(key string) (bool, tea.Cmd) {
	switch key {
	case "/":
		a.menu.searching = true
		a.menu.input = newSearchInput()
		a.menu.input.SetValue(a.menu.search)
		a.menu.input.Focus()
		return true, a.menu.input.Cursor.BlinkCmd()
	case "j", "down":
		a.moveMenuCursor(1)
	case "k", "up":
		a.moveMenuCursor(-1)
	case "g":
		a.moveMenuCursor(-a.menu.cursor)
	case "G":
		a.moveMenuCursor(len(a.menus.Rows) - 1 - a.menu.cursor)
	case "o":
		a.menu.sortIdx = (a.menu.sortIdx + 1) % len(finance.SortModes)
		a.menu.cursor, a.menu.offset, a.menu.candidate = 0, 0, 0
		a.recompute()
	case "f":
		a.menu.categoryIdx = (a.menu.categoryIdx + 1) % len(menuCategories)
		a.menu.cursor, a.menu.offset, a.menu.candidate = 0, 0, 0
		a.recompute()
	case "+", "=":
		a.stepPrice(priceStep)
	case "-", "_":
		a.stepPrice(-priceStep)
	case "0":
		a.menu.candidate = 0
		a.recompute()
	case "enter":
		a.applyCandidatePrice()
	case "esc":
		switch {
		case a.menu.candidate != 0:
			a.menu.candidate = 0
		case a.menu.search != "":
			a.menu.search = ""
			a.menu.cursor, a.menu.offset = 0, 0
		default:
			return false, nil
		}
		a.recompute()
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) stepPrice(delta model.Money) {
	if len(a.menus.Rows) == 0 {
		return
	}
	base := a.menu.candidate
	if base == 0 {
		base = a.detail.Item.Price
	}
	next := base + delta
	if next < priceStep {
		next = priceStep
	}
	if next == a.detail.Item.Price {
		next = 0
	}
	a.menu.candidate = next
	a.recompute()
}

func (a *App) applyCandidatePrice() {
	if a.menu.candidate == 0 || len(a.menus.Rows) == 0 {
		return
	}
	price := a.menu.candidate
	item, err := a.sess.UpdateMenu(a.detail.Item.ID, func(m *model.MenuItem) { m.Price = price })
	if err != nil {
		a.notice = err.Error()
		return
	}
	a.menu.candidate = 0
	a.recompute()
	a.notice = fmt.Sprintf("%s now %s", item.Name, cli.FormatMoney(item.Price))
}

// updateMenuSearch handles key events while in search mode.
func (a App) updateMenuSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.menu.search = strings.TrimSpace(a.menu.input.Value())
		a.menu.searching = false
		a.menu.cursor, a.menu.offset, a.menu.candidate = 0, 0, 0
		a.recompute()
		return a, nil
	case "esc":
		a.menu.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.menu.input, cmd = a.menu.input.Update(msg)
	return a, cmd
}

func (a App) renderMenusTab(cw, h int) string {
	t := theme.Active

	summary := a.menus.Summary
	cards := []components.Metric{
		{Label: "Items", Value: cli.FormatNumber(int64(summary.Count))},
		{Label: "Avg cost rate", Value: cli.FormatPercent(summary.AvgCostRate, a.percentPlaces()),
			Color: components.StatusColor(string(a.policy.CostRateBand(summary.AvgCostRate)))},
		{Label: "Monthly profit", Value: cli.FormatMoney(summary.TotalMonthlyProfit)},
		{Label: "Needs work", Value: cli.FormatNumber(int64(a.countNeedsWork()))},
	}
	top := components.MetricCardRow(cards, cw)

	listH := h - lipgloss.Height(top)
	if a.menu.searching {
		listH--
	}

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	if a.menu.searching {
		b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(a.menu.input.View()))
		b.WriteString("\n")
	}

	if len(a.menus.Rows) == 0 {
		b.WriteString(components.ContentCard("Menu",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("No menu items match"), cw))
		return b.String()
	}

	if a.isCompactLayout() {
		b.WriteString(a.renderMenuList(cw, listH))
		b.WriteString("\n")
		b.WriteString(a.renderMenuDetail(cw))
		return b.String()
	}

	leftW := cw * 2 / 5
	if leftW < 40 {
		leftW = 40
	}
	rightW := cw - leftW
	b.WriteString(components.CardRow([]string{
		a.renderMenuList(leftW, listH),
		a.renderMenuDetail(rightW),
	}))
	return b.String()
}

func (a App) countNeedsWork() int {
	n := 0
	for _, r := range a.menus.Rows {
		if r.Status == finance.MenuNeedsImprovement {
			n++
		}
	}
	return n
}

func (a App) renderMenuList(w, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	const priceW, rateW, profitW = 8, 7, 7
	nameW := inner - priceW - rateW - profitW - 4
	if nameW < 8 {
		nameW = 8
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %*s %*s %*s",
		nameW-2, "Item", priceW, "Price", rateW, "Cost%", profitW, "Profit")))
	body.WriteString("\n")

	visible := h - 4 // card border (2) + title (1) + header (1)
	if visible < 3 {
		visible = 3
	}
	offset := a.menu.offset
	if a.menu.cursor < offset {
		offset = a.menu.cursor
	}
	if a.menu.cursor >= offset+visible {
		offset = a.menu.cursor - visible + 1
	}
	end := min(offset+visible, len(a.menus.Rows))

	for i := offset; i < end; i++ {
		r := a.menus.Rows[i]
		marker := "  "
		style := rowStyle
		if i == a.menu.cursor {
			marker = "▸ "
			style = selectedStyle
		}
		name := strings.TrimSpace(r.Item.Emoji + " " + r.Item.Name)
		line := fmt.Sprintf("%s%-*s %*s %*s %*s",
			marker,
			nameW-2, truncStr(name, nameW-2),
			priceW, cli.FormatMoney(r.Item.Price),
			rateW, cli.FormatPercent(r.CostRate, a.percentPlaces()),
			profitW, cli.FormatMoney(r.Profit),
		)
		body.WriteString(style.Render(line))
		if i < end-1 {
			body.WriteString("\n")
		}
	}

	return components.ContentCard(fmt.Sprintf("Menu (%d)", len(a.menus.Rows)), body.String(), w)
}

func (a App) renderMenuDetail(w int) string {
	t := theme.Active
	d := a.detail
	inner := components.CardInnerWidth(w)
	places := a.percentPlaces()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(components.Badge(string(d.Status), cli.FormatLabel(string(d.Status))))
	b.WriteString("\n\n")
	b.WriteString(row("Price", cli.FormatMoney(d.Item.Price)))
	b.WriteString(row("Ingredient cost", cli.FormatMoney(d.Profitability.TotalCost)))
	b.WriteString(row("Profit / unit", cli.FormatMoney(d.Profitability.Profit)))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Cost rate")))
	b.WriteString(components.Badge(string(d.Band), cli.FormatPercent(d.Profitability.CostRate, places)))
	b.WriteString("\n")
	b.WriteString(row("Sold / month", cli.FormatNumber(int64(d.Item.MonthlySalesVolume))))
	b.WriteString(row("Monthly profit", cli.FormatMoney(d.MonthlyProfit)))

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Recipe"))
	b.WriteString("\n")
	for _, ing := range d.Ingredients {
		qty := ing.Quantity.String() + ing.Unit
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-*s", max(inner-22, 8), truncStr(ing.Name, max(inner-22, 8)))))
		b.WriteString(dimStyle.Render(fmt.Sprintf("%8s", qty)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%10s", ing.Cost.StringFixed(1))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if d.Simulation == nil {
		b.WriteString(dimStyle.Render("Press + or - to try another price"))
	} else {
		sim := d.Simulation
		b.WriteString(labelStyle.Render("At " + cli.FormatMoney(d.CandidatePrice)))
		b.WriteString("\n")
		b.WriteString(row("  Profit / unit", fmt.Sprintf("%s (%s)", cli.FormatMoney(sim.Profit), cli.FormatDelta(sim.ProfitDelta))))
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "  Cost rate")))
		b.WriteString(components.Badge(string(d.SimulatedBand), cli.FormatPercent(sim.CostRate, places)))
		b.WriteString(dimStyle.Render(" " + cli.FormatPointDelta(sim.CostRateDelta, places)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Enter applies the price, Esc resets"))
	}

	return components.ContentCard(d.Item.Name, b.String(), w)
}
