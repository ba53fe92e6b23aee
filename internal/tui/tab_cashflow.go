package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/tui/components"
	"github.com/laosia/navi/internal/tui/theme"
)

// cashState holds the cash-flow tab state.
type cashState struct {
	year  int
	month time.Month
}

func (a *App) shiftMonth(delta int) {
	first := model.Day(a.cash.year, a.cash.month, 1).AddDate(0, delta, 0)
	a.cash.year, a.cash.month = first.Year(), first.Month()
	a.recompute()
}

func (a *App) updateCashflowKey(key string) bool {
	switch key {
	case "[", "h", "pgup":
		a.shiftMonth(-1)
	case "]", "l", "pgdown":
		a.shiftMonth(1)
	default:
		return false
	}
	return true
}

func (a App) renderCashflowTab(cw int) string {
	t := theme.Active
	cf := a.cashflow
	sum := cf.Summary
	var b strings.Builder

	cards := []components.Metric{
		{Label: "Opening", Value: cli.FormatMoney(sum.Opening)},
		{Label: "Inflow", Value: cli.FormatMoney(sum.Inflow), Color: t.Green},
		{Label: "Outflow", Value: cli.FormatMoney(sum.Outflow), Color: t.Orange},
		{Label: "Closing", Value: cli.FormatMoney(sum.Closing),
			Delta: cli.FormatDelta(sum.Net()) + " net",
			Color: components.StatusColor(string(sum.Status))},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	for _, ev := range sum.Alerts {
		banner := lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Yellow).
			Bold(true).
			Width(cw).
			Render(fmt.Sprintf(" ⚠ %s  %s %s", ev.Date.Format("Jan 2"), ev.Name, cli.FormatMoney(ev.Amount)))
		b.WriteString(banner)
		b.WriteString("\n")
	}

	var calW, listW int
	if a.isCompactLayout() {
		calW, listW = cw, cw
	} else {
		calW = min(cw*3/5, 7*12+4)
		listW = cw - calW
	}

	calCard := components.ContentCard(
		fmt.Sprintf("%s %d", cf.Summary.Month, cf.Summary.Year),
		a.renderCalendar(components.CardInnerWidth(calW)),
		calW,
	)
	listCard := components.ContentCard("Events", a.renderEventList(components.CardInnerWidth(listW)), listW)

	if a.isCompactLayout() {
		b.WriteString(calCard)
		b.WriteString("\n")
		b.WriteString(listCard)
	} else {
		b.WriteString(components.CardRow([]string{calCard, listCard}))
	}
	return b.String()
}

// renderCalendar draws the month as a week grid: day number on the first
// line of each cell, end-of-day balance in thousands on the second.
func (a App) renderCalendar(inner int) string {
	t := theme.Active
	cf := a.cashflow
	cell := max(inner/7, 6)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dayStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	alertStyle := lipgloss.NewStyle().Foreground(t.Yellow).Bold(true)
	eventStyle := lipgloss.NewStyle().Foreground(t.Accent)

	pad := func(s string) string {
		if w := lipgloss.Width(s); w < cell {
			return s + strings.Repeat(" ", cell-w)
		}
		return s
	}

	var b strings.Builder
	for wd := 0; wd < 7; wd++ {
		b.WriteString(headerStyle.Render(pad(cli.FormatDayOfWeek(wd))))
	}

	slots := cf.Offset + len(cf.Days)
	for slots%7 != 0 {
		slots++
	}
	for week := 0; week < slots; week += 7 {
		var dayLine, balLine strings.Builder
		for i := week; i < week+7; i++ {
			idx := i - cf.Offset
			if idx < 0 || idx >= len(cf.Days) {
				dayLine.WriteString(strings.Repeat(" ", cell))
				balLine.WriteString(strings.Repeat(" ", cell))
				continue
			}
			d := cf.Days[idx]
			num := dayStyle.Render(fmt.Sprintf("%2d", d.Date.Day()))
			switch {
			case d.Alert:
				num += alertStyle.Render(" !")
			case len(d.Events) > 0:
				num += eventStyle.Render(" •")
			}
			dayLine.WriteString(pad(num))
			bal := truncStr(cli.FormatThousands(d.Balance, a.cfg.Display.ThousandsPlaces), cell-1)
			balLine.WriteString(lipgloss.NewStyle().
				Foreground(components.StatusColor(string(d.Status))).
				Render(pad(bal)))
		}
		b.WriteString("\n")
		b.WriteString(dayLine.String())
		b.WriteString("\n")
		b.WriteString(balLine.String())
	}
	return b.String()
}

func (a App) renderEventList(inner int) string {
	t := theme.Active
	days := a.cashflow.EventDays()
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(days) == 0 {
		return mutedStyle.Render("No cash movements this month")
	}

	inStyle := lipgloss.NewStyle().Foreground(t.Green)
	outStyle := lipgloss.NewStyle().Foreground(t.Orange)
	nameW := max(inner-6-12-2, 8)

	var lines []string
	for _, d := range days {
		for _, ev := range d.Events {
			amount := cli.FormatDelta(ev.Signed())
			style := inStyle
			if ev.Direction == model.Outflow {
				style = outStyle
			}
			name := ev.Name
			if ev.Alert {
				name = "⚠ " + name
			}
			lines = append(lines,
				mutedStyle.Render(fmt.Sprintf("%-6s", ev.Date.Format("Jan 2")))+
					fmt.Sprintf("%-*s ", nameW, truncStr(name, nameW))+
					style.Render(fmt.Sprintf("%12s", amount)))
		}
	}
	return strings.Join(lines, "\n")
}
