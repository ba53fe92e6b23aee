package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/tui/theme"
)

// StatusColor maps a classification word (balance status, risk level, cost
// band, menu status, industry comparison) onto the traffic-light colours.
func StatusColor(status string) lipgloss.Color {
	t := theme.Active
	switch status {
	case string(finance.BalanceDanger), string(finance.RiskHigh),
		string(finance.MenuNeedsImprovement), string(finance.AboveAverage):
		return t.Red
	case string(finance.BalanceWarning), string(finance.RiskMedium), string(finance.BandCaution):
		return t.Yellow
	case string(finance.BalanceSafe), string(finance.RiskLow), string(finance.BandGood), string(finance.Excellent):
		return t.Green
	default:
		return t.TextMuted
	}
}

// Badge renders label in the colour of status.
func Badge(status, label string) string {
	return lipgloss.NewStyle().
		Foreground(StatusColor(status)).
		Background(theme.Active.Surface).
		Bold(true).
		Render(label)
}
