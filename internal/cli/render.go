package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/report"
)

// Theme colors (Flexoki Dark)
var (
	ColorBg        = lipgloss.Color("#100F0F")
	ColorSurface   = lipgloss.Color("#1C1B1A")
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// RoleColor maps a cost category display role onto the palette.
func RoleColor(r model.Role) lipgloss.Color {
	switch r {
	case model.RoleBlue:
		return ColorBlue
	case model.RoleOrange:
		return ColorOrange
	case model.RoleGreen:
		return ColorGreen
	case model.RolePurple:
		return ColorPurple
	default:
		return ColorTextMuted
	}
}

// StatusColor colours traffic-light style classifications. Risk levels, cost
// bands, balance and menu statuses share the same words.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case string(finance.BalanceDanger), string(finance.RiskHigh),
		string(finance.MenuNeedsImprovement), string(finance.AboveAverage):
		return ColorRed
	case string(finance.BalanceWarning), string(finance.RiskMedium), string(finance.BandCaution):
		return ColorYellow
	case string(finance.BalanceSafe), string(finance.RiskLow), string(finance.BandGood), string(finance.Excellent):
		return ColorGreen
	default:
		return ColorTextMuted
	}
}

// Badge renders a classification in its status colour.
func Badge(status string) string {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Render(FormatLabel(status))
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return strings.Repeat(" ", w-n) + s
	}
	return s
}

func rule(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = " " + padRight(cell, widths[i]) + " "
			} else {
				padded = " " + padLeft(cell, widths[i]) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule(&b, widths, "╰", "┴", "╯")

	return b.String()
}

// RenderProgressBar renders a percentage as a bar capped at 100%.
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := pct / 100
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}

	filled := int(frac * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", mutedStyle.Render(bar), FormatPercent(pct, 0))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	top := values[0]
	for _, v := range values[1:] {
		top = max(top, v)
	}
	if top == 0 {
		top = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders one bar of a bar chart in the given colour.
func RenderHorizontalBar(value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	if maxValue <= 0 {
		return ""
	}
	barLen := max(int(value/maxValue*float64(maxWidth)), 0)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))
}

// RenderCalendar draws a month grid with each day's end-of-day balance in
// thousands, coloured by balance status. Days with an alert are marked with "!".
func RenderCalendar(cf report.Cashflow, thousandsPlaces int) string {
	const cell = 10
	var b strings.Builder

	for wd := 0; wd < 7; wd++ {
		b.WriteString(headerStyle.Render(padRight(FormatDayOfWeek(wd), cell)))
	}
	b.WriteString("\n")

	slots := make([]*report.DayCell, cf.Offset, cf.Offset+len(cf.Days))
	for i := range cf.Days {
		slots = append(slots, &cf.Days[i])
	}
	for len(slots)%7 != 0 {
		slots = append(slots, nil)
	}

	for week := 0; week < len(slots); week += 7 {
		var dayLine, balLine strings.Builder
		for _, d := range slots[week : week+7] {
			if d == nil {
				dayLine.WriteString(strings.Repeat(" ", cell))
				balLine.WriteString(strings.Repeat(" ", cell))
				continue
			}
			label := fmt.Sprintf("%2d", d.Date.Day())
			if d.Alert {
				label += " !"
			} else if len(d.Events) > 0 {
				label += " •"
			}
			dayLine.WriteString(valueStyle.Render(padRight(label, cell)))

			bal := padRight(FormatThousands(d.Balance, thousandsPlaces), cell)
			balLine.WriteString(lipgloss.NewStyle().Foreground(StatusColor(string(d.Status))).Render(bal))
		}
		b.WriteString(dayLine.String())
		b.WriteString("\n")
		b.WriteString(balLine.String())
		b.WriteString("\n")
	}
	return b.String()
}
