package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/tui/components"
	"github.com/laosia/navi/internal/tui/theme"
)

// planState holds the simulate tab state.
type planState struct {
	template string // business type the next new plan starts from
}

func (a *App) cycleTemplate() {
	names := config.TemplateNames()
	next := 0
	for i, bt := range names {
		if string(bt) == a.plan.template {
			next = (i + 1) % len(names)
			break
		}
	}
	a.plan.template = string(names[next])
}

func (a *App) updatePlanKey(key string) (bool, tea.Cmd) {
	switch key {
	case "enter", "n":
		tpl, ok := config.LookupTemplate(a.cfg, a.plan.template)
		if !ok {
			a.notice = "unknown template " + a.plan.template
			return true, nil
		}
		a.planVals = PlanValuesFrom(tpl.Input(config.NormalizeTemplateName(a.plan.template)))
	case "e":
		in, ok := a.sess.Simulation()
		if !ok {
			return false, nil
		}
		a.planVals = PlanValuesFrom(in)
	case "t":
		a.cycleTemplate()
		return true, nil
	default:
		return false, nil
	}
	next, cmd := a.openForm(NewPlanForm(&a.planVals), formPlan)
	*a = next
	return true, cmd
}

func (a App) renderSimulateTab(cw int) string {
	t := theme.Active
	if a.sim == nil {
		tpl, _ := config.LookupTemplate(a.cfg, a.plan.template)
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			fmt.Sprintf("No plan yet. Press Enter to start one from the %s %s template, t to switch template.",
				tpl.Emoji, tpl.Label))
		return components.ContentCard("Business Plan", body, cw)
	}

	r := *a.sim
	places := a.percentPlaces()
	var b strings.Builder

	// Row 1: headline figures
	cards := []components.Metric{
		{Label: "Projected sales", Value: cli.FormatMoney(r.ProjectedSales),
			Delta: fmt.Sprintf("%d customers/day", r.Input.CustomersPerDay)},
		{Label: "Break-even sales", Value: cli.FormatMoney(r.BreakEvenSales),
			Delta: fmt.Sprintf("%d customers/day", r.BreakEvenCustomers)},
		{Label: "Projected profit", Value: cli.FormatMoney(r.ProjectedProfit()),
			Color: profitColor(r.ProjectedProfit())},
		{Label: "Risk", Value: cli.FormatLabel(string(r.Risk)),
			Delta: "labor " + cli.FormatPercent(r.LaborCostRate, places) + " of sales",
			Color: components.StatusColor(string(r.Risk))},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: costs and achievement
	var left, right int
	if a.isCompactLayout() {
		left, right = cw, cw
	} else {
		halves := components.LayoutRow(cw, 2)
		left, right = halves[0], halves[1]
	}

	leftInner := components.CardInnerWidth(left)
	var costs strings.Builder
	costs.WriteString(labelValue("Rent", cli.FormatMoney(r.Input.Rent), 16) + "\n")
	costs.WriteString(labelValue("Utilities", cli.FormatMoney(r.Input.Utilities), 16) + "\n")
	costs.WriteString(labelValue("Other fixed", cli.FormatMoney(r.Input.OtherFixed), 16) + "\n")
	costs.WriteString(labelValue("Labor", cli.FormatMoney(r.LaborCost), 16) + "\n")
	costs.WriteString(labelValue("Total fixed", cli.FormatMoney(r.TotalFixedCost), 16) + "\n")
	costs.WriteString(labelValue("Cost of goods", cli.FormatMoney(r.COGS), 16) + "\n\n")
	barW := max(leftInner-16-8, 8)
	for _, s := range r.Breakdown {
		color := t.ForRole(s.Category.Role())
		costs.WriteString(lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-15s ", truncStr(s.Name, 15))))
		costs.WriteString(components.ProgressBar(s.Percentage, barW, color))
		costs.WriteString("\n")
	}
	costCard := components.ContentCard("Monthly Costs", strings.TrimRight(costs.String(), "\n"), left)

	rightInner := components.CardInnerWidth(right)
	var ach strings.Builder
	ach.WriteString(components.AchievementBar("Break-even", r.Achievement.Rate, 12, max(rightInner-12-8, 8)))
	ach.WriteString("\n\n")
	ach.WriteString(labelValue("Seat turnover", fmt.Sprintf("%.1f /day", r.SeatTurnover), 16) + "\n")
	if r.Achievement.Achieved {
		ach.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render("Break-even reached"))
	} else {
		ach.WriteString(labelValue("Shortfall", cli.FormatMoney(r.Achievement.Shortfall), 16))
	}
	ach.WriteString("\n\n")
	for _, adv := range r.Advice {
		ach.WriteString("• " + adviceText(adv, places) + "\n")
	}
	achCard := components.ContentCard("Outlook", strings.TrimRight(ach.String(), "\n"), right)

	if a.isCompactLayout() {
		b.WriteString(costCard)
		b.WriteString("\n")
		b.WriteString(achCard)
	} else {
		b.WriteString(components.CardRow([]string{costCard, achCard}))
	}
	return b.String()
}

func profitColor(p model.Money) lipgloss.Color {
	if p < 0 {
		return theme.Active.Red
	}
	return theme.Active.Green
}

func adviceText(adv finance.Advice, places int) string {
	switch adv.Kind {
	case finance.AdviceReduceLabor:
		return fmt.Sprintf("Labor runs at %s of sales. Trimming it to target frees about %s a month.",
			cli.FormatPercent(adv.LaborRate, places), cli.FormatMoney(adv.Amount))
	case finance.AdviceImproveMenu:
		return fmt.Sprintf("Menu and pricing work could add about %s a month.", cli.FormatMoney(adv.Amount))
	default:
		return "The plan clears break-even with healthy labor costs."
	}
}
