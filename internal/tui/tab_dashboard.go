package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/tui/components"
	"github.com/laosia/navi/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	d := a.dash
	data := d.Data
	places := a.percentPlaces()
	var b strings.Builder

	// Row 1: Metric cards
	achDelta := "break-even reached"
	if !d.Achievement.Achieved {
		achDelta = cli.FormatMoney(d.Achievement.Shortfall) + " to go"
	}
	cards := []components.Metric{
		{Label: "Sales this month", Value: cli.FormatMoney(data.MonthlySales), Delta: achDelta},
		{Label: "Break-even", Value: cli.FormatMoney(data.BreakEvenSales),
			Delta: cli.FormatPercent(d.Achievement.Rate, places) + " achieved",
			Color: components.ColorForAchievement(d.Achievement.Rate)},
		{Label: "Cash", Value: cli.FormatMoney(data.CashBalance),
			Delta: cli.FormatLabel(string(d.CashStatus)),
			Color: components.StatusColor(string(d.CashStatus))},
		{Label: "Projected profit", Value: cli.FormatMoney(data.ProjectedProfit),
			Delta: cli.FormatPointDelta(data.ProfitTrend, places) + " vs last month"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Achievement and cost rates
	inner := components.CardInnerWidth(cw)
	barW := inner - 14 - 8
	if barW < 10 {
		barW = 10
	}
	var gauges strings.Builder
	gauges.WriteString(components.AchievementBar("Break-even", d.Achievement.Rate, 14, barW))
	gauges.WriteString("\n")
	gauges.WriteString(labelValue("Cost of goods", cli.FormatPercent(data.CostOfGoodsRate, places), 14))
	gauges.WriteString("\n")
	gauges.WriteString(labelValue("Labor", cli.FormatPercent(data.LaborCostRate, places), 14))
	b.WriteString(components.ContentCard("This Month", gauges.String(), cw))
	b.WriteString("\n")

	// Row 3: Sales history chart + table
	if len(d.History) == 0 {
		return b.String()
	}
	points := make([]components.ChartPoint, len(d.History))
	for i, h := range d.History {
		points[i] = components.ChartPoint{Label: h.Month, Value: h.Sales, Target: h.BreakEven}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var table strings.Builder
	table.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s %12s %12s %8s", "Month", "Sales", "Break-even", "Rate")))
	for _, h := range d.History {
		table.WriteString("\n")
		rate := lipgloss.NewStyle().Foreground(components.ColorForAchievement(h.Rate)).
			Render(fmt.Sprintf("%8s", cli.FormatPercent(h.Rate, places)))
		fmt.Fprintf(&table, "%-10s %12s %12s ", h.Month, cli.FormatMoney(h.Sales), cli.FormatMoney(h.BreakEven))
		table.WriteString(rate)
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Sales History",
			components.SalesChart(points, inner, 8), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Achievement by Month", table.String(), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Sales History",
			components.SalesChart(points, components.CardInnerWidth(halves[0]), 8), halves[0]),
		components.ContentCard("Achievement by Month", table.String(), halves[1]),
	}))
	return b.String()
}

func labelValue(label, value string, labelW int) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " + lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(value)
}
