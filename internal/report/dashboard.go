// Package report turns session data into per-screen views by running it
// through the finance engine. Views are plain structs; rendering lives in
// the cli, tui and server packages.
package report

import (
	"fmt"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

// HistoryRow is one month of the sales chart with its achievement rate.
type HistoryRow struct {
	model.SalesHistoryItem
	Rate float64
}

// Dashboard is the home screen.
type Dashboard struct {
	Store       model.StoreProfile
	Data        model.DashboardData
	Achievement finance.Achievement
	CashStatus  finance.BalanceStatus
	History     []HistoryRow
}

// BuildDashboard evaluates the current dashboard snapshot.
func BuildDashboard(s *session.Session, p finance.Policy) (Dashboard, error) {
	data := s.Dashboard()
	ach, err := finance.ComputeAchievement(data.MonthlySales, data.BreakEvenSales)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard achievement: %w", err)
	}
	d := Dashboard{
		Store:       s.Store(),
		Data:        data,
		Achievement: ach,
		CashStatus:  p.BalanceStatus(data.CashBalance),
	}
	for _, h := range data.SalesHistory {
		a, err := finance.ComputeAchievement(h.Sales, h.BreakEven)
		if err != nil {
			return Dashboard{}, fmt.Errorf("sales history %s: %w", h.Month, err)
		}
		d.History = append(d.History, HistoryRow{SalesHistoryItem: h, Rate: a.Rate})
	}
	return d, nil
}
