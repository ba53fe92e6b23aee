package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/tui/theme"
)

// ProgressBar renders a share bar with its percentage. pct is 0-100; the bar
// is drawn in color and the label keeps one decimal.
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// ColorForAchievement returns red below 80% of break-even, yellow below 100%
// and green once break-even is reached.
func ColorForAchievement(rate float64) lipgloss.Color {
	t := theme.Active
	switch {
	case rate >= 100:
		return t.Green
	case rate >= 80:
		return t.Yellow
	default:
		return t.Red
	}
}

// AchievementBar renders a labeled break-even achievement bar. The bar caps at
// 100% while the label shows the real rate.
func AchievementBar(label string, rate float64, labelW, barWidth int) string {
	t := theme.Active

	frac := rate / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	color := ColorForAchievement(rate)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", rate))
}
