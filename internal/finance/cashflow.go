package finance

import (
	"iter"
	"sort"
	"time"

	"github.com/laosia/navi/internal/model"
)

func checkEvents(events []model.CashFlowEvent) error {
	for _, ev := range events {
		if ev.Amount <= 0 {
			return invalid("cash event amount", "must be positive for "+ev.Name)
		}
		if ev.Direction != model.Inflow && ev.Direction != model.Outflow {
			return invalid("cash event direction", "must be in or out for "+ev.Name)
		}
	}
	return nil
}

// RunningBalance returns the opening balance plus every signed event dated on
// or before asOf. Only the calendar day of asOf matters.
func RunningBalance(ledger model.CashFlowLedger, asOf time.Time) (model.Money, error) {
	if err := checkEvents(ledger.Events); err != nil {
		return 0, err
	}
	cutoff := model.DateOf(asOf)
	bal := ledger.OpeningBalance
	for _, ev := range ledger.Events {
		if !model.DateOf(ev.Date).After(cutoff) {
			bal += ev.Signed()
		}
	}
	return bal, nil
}

// BalanceIndex holds the end-of-day balance of every day that has events,
// built once per ledger version.
type BalanceIndex struct {
	opening model.Money
	days    []time.Time   // ascending, distinct
	closing []model.Money // balance at the end of days[i]
	events  []model.CashFlowEvent
}

// NewBalanceIndex sorts the ledger (stable on insertion order) and folds it
// into per-day prefix sums in a single pass.
func NewBalanceIndex(ledger model.CashFlowLedger) (*BalanceIndex, error) {
	if err := checkEvents(ledger.Events); err != nil {
		return nil, err
	}
	events := make([]model.CashFlowEvent, len(ledger.Events))
	copy(events, ledger.Events)
	for i := range events {
		events[i].Date = model.DateOf(events[i].Date)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	idx := &BalanceIndex{opening: ledger.OpeningBalance, events: events}
	bal := ledger.OpeningBalance
	for _, ev := range events {
		bal += ev.Signed()
		if n := len(idx.days); n > 0 && idx.days[n-1].Equal(ev.Date) {
			idx.closing[n-1] = bal
			continue
		}
		idx.days = append(idx.days, ev.Date)
		idx.closing = append(idx.closing, bal)
	}
	return idx, nil
}

// Opening returns the ledger's opening balance.
func (b *BalanceIndex) Opening() model.Money { return b.opening }

// Events returns the events in date order.
func (b *BalanceIndex) Events() []model.CashFlowEvent {
	out := make([]model.CashFlowEvent, len(b.events))
	copy(out, b.events)
	return out
}

// At returns the balance at the end of the given day.
func (b *BalanceIndex) At(date time.Time) model.Money {
	d := model.DateOf(date)
	// first index whose day is after d
	i := sort.Search(len(b.days), func(i int) bool { return b.days[i].After(d) })
	if i == 0 {
		return b.opening
	}
	return b.closing[i-1]
}

// Days yields (day, end-of-day balance) for every calendar day from..to
// inclusive. The sequence walks the index once and can be ranged over any
// number of times.
func (b *BalanceIndex) Days(from, to time.Time) iter.Seq2[time.Time, model.Money] {
	start, end := model.DateOf(from), model.DateOf(to)
	return func(yield func(time.Time, model.Money) bool) {
		i := sort.Search(len(b.days), func(i int) bool { return b.days[i].After(start) })
		bal := b.opening
		if i > 0 {
			bal = b.closing[i-1]
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if i < len(b.days) && b.days[i].Equal(d) {
				bal = b.closing[i]
				i++
			}
			if !yield(d, bal) {
				return
			}
		}
	}
}

// BalanceStatus grades a cash balance.
type BalanceStatus string

const (
	BalanceDanger  BalanceStatus = "danger"
	BalanceWarning BalanceStatus = "warning"
	BalanceSafe    BalanceStatus = "safe"
)

// BalanceStatus returns danger below the danger threshold, warning below the
// warning threshold and safe otherwise.
func (p Policy) BalanceStatus(balance model.Money) BalanceStatus {
	switch {
	case balance < p.Cash.Danger:
		return BalanceDanger
	case balance < p.Cash.Warning:
		return BalanceWarning
	default:
		return BalanceSafe
	}
}

// MonthSummary is the header of the cash-flow calendar.
type MonthSummary struct {
	Year        int
	Month       time.Month
	Inflow      model.Money
	Outflow     model.Money
	Opening     model.Money // balance at the end of the previous month
	Closing     model.Money
	Status      BalanceStatus
	LowestDay   time.Time
	Lowest      model.Money
	Alerts      []model.CashFlowEvent
	MonthEvents []model.CashFlowEvent
}

// Net returns inflow minus outflow for the month.
func (s MonthSummary) Net() model.Money { return s.Inflow - s.Outflow }

// SummarizeMonth totals the month's events and grades its closing balance.
func (p Policy) SummarizeMonth(b *BalanceIndex, year int, month time.Month) MonthSummary {
	first := model.Day(year, month, 1)
	last := first.AddDate(0, 1, -1)
	s := MonthSummary{
		Year:    year,
		Month:   month,
		Opening: b.At(first.AddDate(0, 0, -1)),
	}
	for _, ev := range b.events {
		if ev.Date.Before(first) || ev.Date.After(last) {
			continue
		}
		s.MonthEvents = append(s.MonthEvents, ev)
		if ev.Direction == model.Inflow {
			s.Inflow += ev.Amount
		} else {
			s.Outflow += ev.Amount
		}
		if ev.Alert {
			s.Alerts = append(s.Alerts, ev)
		}
	}
	for d, bal := range b.Days(first, last) {
		if s.LowestDay.IsZero() || bal < s.Lowest {
			s.LowestDay, s.Lowest = d, bal
		}
		s.Closing = bal
	}
	s.Status = p.BalanceStatus(s.Closing)
	return s
}
