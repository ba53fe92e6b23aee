package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// context (store, month, notices) on the right.
func RenderStatusBar(width int, hints, context string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width).
		MaxHeight(1)

	left := " [?]help  [q]uit"
	if hints != "" {
		left += "  " + hints
	}
	right := ""
	if context != "" {
		right = context + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
