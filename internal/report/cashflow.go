package report

import (
	"time"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

// DayCell is one day of the cash-flow calendar.
type DayCell struct {
	Date    time.Time
	Balance model.Money
	Status  finance.BalanceStatus
	Events  []model.CashFlowEvent
	Alert   bool
}

// Cashflow is the cash-flow calendar for one month.
type Cashflow struct {
	Summary finance.MonthSummary
	Days    []DayCell
	// Offset is the weekday of the first day (Sunday = 0), for grid layout.
	Offset int
}

// BuildCashflow lays out a month of balances from the session's ledger.
func BuildCashflow(s *session.Session, p finance.Policy, year int, month time.Month) Cashflow {
	idx := s.Balances()
	first := model.Day(year, month, 1)
	last := first.AddDate(0, 1, -1)

	byDay := make(map[time.Time][]model.CashFlowEvent)
	summary := p.SummarizeMonth(idx, year, month)
	for _, ev := range summary.MonthEvents {
		byDay[ev.Date] = append(byDay[ev.Date], ev)
	}

	cf := Cashflow{Summary: summary, Offset: int(first.Weekday())}
	for d, bal := range idx.Days(first, last) {
		cell := DayCell{
			Date:    d,
			Balance: bal,
			Status:  p.BalanceStatus(bal),
			Events:  byDay[d],
		}
		for _, ev := range cell.Events {
			if ev.Alert {
				cell.Alert = true
			}
		}
		cf.Days = append(cf.Days, cell)
	}
	return cf
}

// EventDays returns the cells that carry events, for list views.
func (c Cashflow) EventDays() []DayCell {
	var out []DayCell
	for _, d := range c.Days {
		if len(d.Events) > 0 {
			out = append(out, d)
		}
	}
	return out
}
