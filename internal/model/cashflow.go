package model

import "time"

// Direction tells whether a cash event adds to or draws from the balance.
type Direction string

const (
	Inflow  Direction = "in"
	Outflow Direction = "out"
)

// CashFlowEvent is a single scheduled or booked movement of cash.
type CashFlowEvent struct {
	Date      time.Time
	Direction Direction
	Amount    Money
	Name      string
	Alert     bool
}

// Signed returns the amount with the sign implied by its direction.
func (e CashFlowEvent) Signed() Money {
	if e.Direction == Outflow {
		return -e.Amount
	}
	return e.Amount
}

// CashFlowLedger is an append-only sequence of events on top of an opening balance.
type CashFlowLedger struct {
	OpeningBalance Money
	Events         []CashFlowEvent
}

// Append returns a new ledger with ev added after the existing events.
// The receiver is left untouched.
func (l CashFlowLedger) Append(ev ...CashFlowEvent) CashFlowLedger {
	events := make([]CashFlowEvent, 0, len(l.Events)+len(ev))
	events = append(events, l.Events...)
	events = append(events, ev...)
	return CashFlowLedger{OpeningBalance: l.OpeningBalance, Events: events}
}
