package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/tui/components"
	"github.com/laosia/navi/internal/tui/theme"
)

func (a App) renderAnalysisTab(cw int) string {
	t := theme.Active
	an := a.analysis
	places := a.percentPlaces()
	var b strings.Builder

	// Row 1: break-even figures
	cards := []components.Metric{
		{Label: "Break-even sales", Value: cli.FormatMoney(an.BreakEvenSales)},
		{Label: "Projected sales", Value: cli.FormatMoney(an.ProjectedSales),
			Delta: cli.FormatPercent(an.Achievement.Rate, places) + " of break-even",
			Color: components.ColorForAchievement(an.Achievement.Rate)},
		{Label: "Total costs", Value: cli.FormatMoney(an.TotalCost)},
		{Label: "Shortfall", Value: cli.FormatMoney(an.Achievement.Shortfall)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: cost structure (left) and industry comparison (right)
	var left, right int
	if a.isCompactLayout() {
		left, right = cw, cw
	} else {
		halves := components.LayoutRow(cw, 2)
		left, right = halves[0], halves[1]
	}

	leftInner := components.CardInnerWidth(left)
	nameW := 14
	barW := leftInner - nameW - 10 - 8
	if barW < 8 {
		barW = 8
	}
	// Bars scale to the largest share so small categories stay visible.
	var largest float64
	for _, s := range an.Shares {
		largest = max(largest, s.Percentage)
	}
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var costs strings.Builder
	for i, s := range an.Shares {
		color := t.ForRole(s.Category.Role())
		costs.WriteString(lipgloss.NewStyle().Foreground(color).Render("● "))
		costs.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", nameW-2, truncStr(s.Name, nameW-2))))
		costs.WriteString(mutedStyle.Render(fmt.Sprintf("%10s ", cli.FormatMoney(s.Amount))))
		costs.WriteString(components.HBar(s.Percentage, largest, barW, color))
		costs.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).
			Render(fmt.Sprintf(" %6s", cli.FormatPercent(s.Percentage, places))))
		if i < len(an.Shares)-1 {
			costs.WriteString("\n")
		}
	}
	costCard := components.ContentCard("Cost Structure", costs.String(), left)

	var cmp strings.Builder
	cmp.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s %8s %8s %9s  %s", "Category", "Yours", "Industry", "Diff", "")))
	for _, row := range an.Comparisons {
		cmp.WriteString("\n")
		fmt.Fprintf(&cmp, "%-14s %8s %8s %9s  ",
			truncStr(row.Share.Category.Label(), 14),
			cli.FormatPercent(row.Share.Percentage, places),
			cli.FormatPercent(row.IndustryAverage, places),
			cli.FormatPointDelta(row.Diff, places),
		)
		cmp.WriteString(components.Badge(string(row.Classification), cli.FormatLabel(string(row.Classification))))
	}
	cmpCard := components.ContentCard("Against Industry Average", cmp.String(), right)

	if a.isCompactLayout() {
		b.WriteString(costCard)
		b.WriteString("\n")
		b.WriteString(cmpCard)
	} else {
		b.WriteString(components.CardRow([]string{costCard, cmpCard}))
	}
	b.WriteString("\n")

	// Row 3: improvement points
	var imp strings.Builder
	if len(an.Improvements) == 0 {
		imp.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render("Every cost is within the industry band"))
	}
	for i, row := range an.Improvements {
		fmt.Fprintf(&imp, "%s is %s above the industry average.",
			row.Share.Category.Label(), cli.FormatPointDelta(row.Diff, places))
		if row.Savings > 0 {
			imp.WriteString(" Bringing it in line saves about ")
			imp.WriteString(lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(cli.FormatMoney(row.Savings)))
			imp.WriteString(" a month.")
		}
		if i < len(an.Improvements)-1 {
			imp.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("Improvement Points", imp.String(), cw))

	return b.String()
}
