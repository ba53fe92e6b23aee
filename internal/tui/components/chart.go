package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/tui/theme"
)

// ChartPoint is one column of a SalesChart: an amount and the target it is
// measured against.
type ChartPoint struct {
	Label  string
	Value  model.Money
	Target model.Money
}

// HBar renders one horizontal bar scaled so that maxValue fills maxWidth.
func HBar(value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	if maxValue <= 0 || maxWidth <= 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(maxWidth)))
	n = min(max(n, 0), maxWidth)
	t := theme.Active
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", maxWidth-n))
}

// SalesChart draws one column per point on a money axis. Columns that reach
// their target are green and the rest orange; a dotted mark shows where a
// short column's target sits.
func SalesChart(points []ChartPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	if width < 20 || height < 3 {
		return compactSalesChart(points, width)
	}
	t := theme.Active

	peak := model.Money(1)
	for _, p := range points {
		peak = max(peak, p.Value, p.Target)
	}
	step := chartTickStep(float64(peak))
	maxIntervals := max(height/2, 2)
	for math.Ceil(float64(peak)/step) > float64(maxIntervals) {
		step *= 2
	}
	intervals := max(int(math.Ceil(float64(peak)/step)), 1)
	ceiling := step * float64(intervals)
	rowsPerTick := max(height/intervals, 1)
	rows := rowsPerTick * intervals

	tickLabels := make(map[int]string, intervals+1)
	axisW := 0
	for i := 0; i <= intervals; i++ {
		lbl := cli.FormatThousands(model.Money(step*float64(i)), 0)
		tickLabels[i*rowsPerTick] = lbl
		axisW = max(axisW, lipgloss.Width(lbl))
	}

	// Keep the most recent points when the columns cannot fit.
	avail := width - axisW - 1
	if fit := (avail + 1) / 2; len(points) > fit {
		points = points[len(points)-fit:]
	}
	n := len(points)
	colW := min((avail-(n-1))/n, 8)

	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	eighths := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		top := ceiling * float64(row) / float64(rows)
		bottom := ceiling * float64(row-1) / float64(rows)

		tick, labelled := tickLabels[row]
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", axisW, tick)))
		if labelled {
			b.WriteString(axisStyle.Render("┤"))
		} else {
			b.WriteString(axisStyle.Render("│"))
		}

		for i, p := range points {
			if i > 0 {
				b.WriteString(surface.Render(" "))
			}
			v, target := float64(p.Value), float64(p.Target)
			barStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
			if p.Target > 0 && p.Value >= p.Target {
				barStyle = barStyle.Foreground(t.Green)
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", colW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(eighths)))
				idx = min(max(idx, 0), len(eighths)-1)
				b.WriteString(barStyle.Render(strings.Repeat(string(eighths[idx]), colW)))
			case target > bottom && target <= top:
				b.WriteString(markStyle.Render(strings.Repeat("┄", colW)))
			default:
				b.WriteString(surface.Render(strings.Repeat(" ", colW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*colW + n - 1
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", axisW, tickLabels[0])))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	var labels strings.Builder
	for i, p := range points {
		if i > 0 {
			labels.WriteString(" ")
		}
		labels.WriteString(fitLabel(p.Label, colW))
	}
	b.WriteString(surface.Render(strings.Repeat(" ", axisW+1)))
	b.WriteString(axisStyle.Render(strings.TrimRight(labels.String(), " ")))
	return b.String()
}

// compactSalesChart falls back to one bar per line.
func compactSalesChart(points []ChartPoint, width int) string {
	t := theme.Active
	peak := model.Money(1)
	labelW := 0
	for _, p := range points {
		peak = max(peak, p.Value)
		labelW = max(labelW, lipgloss.Width(p.Label))
	}
	barW := max(width-labelW-1, 1)
	lines := make([]string, 0, len(points))
	for _, p := range points {
		color := t.Orange
		if p.Target > 0 && p.Value >= p.Target {
			color = t.Green
		}
		lines = append(lines, fmt.Sprintf("%-*s ", labelW, p.Label)+HBar(float64(p.Value), float64(peak), barW, color))
	}
	return strings.Join(lines, "\n")
}

// fitLabel centres label in w cells, keeping its tail when it is too long
// ("2025-01" becomes "01").
func fitLabel(label string, w int) string {
	r := []rune(label)
	if len(r) > w {
		r = r[len(r)-w:]
	}
	pad := w - len(r)
	return strings.Repeat(" ", pad/2) + string(r) + strings.Repeat(" ", pad-pad/2)
}

// chartTickStep picks a 1-2-5 tick interval targeting about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}
