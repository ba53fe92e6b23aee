package finance

import (
	"slices"
	"testing"
	"time"

	"github.com/laosia/navi/internal/model"
)

func testLedger() model.CashFlowLedger {
	return model.CashFlowLedger{
		OpeningBalance: 1_000_000,
		Events: []model.CashFlowEvent{
			{Date: model.Day(2025, 1, 25), Direction: model.Outflow, Amount: 150_000, Name: "Rent", Alert: true},
			{Date: model.Day(2025, 1, 5), Direction: model.Inflow, Amount: 300_000, Name: "Card settlement"},
			{Date: model.Day(2025, 1, 5), Direction: model.Outflow, Amount: 100_000, Name: "Supplier"},
			{Date: model.Day(2025, 2, 10), Direction: model.Outflow, Amount: 700_000, Name: "Payroll", Alert: true},
		},
	}
}

func mustIndex(t *testing.T, l model.CashFlowLedger) *BalanceIndex {
	t.Helper()
	idx, err := NewBalanceIndex(l)
	if err != nil {
		t.Fatalf("NewBalanceIndex: unexpected error: %v", err)
	}
	return idx
}

func TestRunningBalance(t *testing.T) {
	l := testLedger()
	tests := []struct {
		asOf time.Time
		want model.Money
	}{
		{model.Day(2025, 1, 4), 1_000_000},
		{model.Day(2025, 1, 5), 1_200_000},
		{time.Date(2025, 1, 5, 23, 59, 0, 0, time.UTC), 1_200_000},
		{model.Day(2025, 1, 25), 1_050_000},
		{model.Day(2025, 1, 31), 1_050_000},
		{model.Day(2025, 2, 28), 350_000},
	}
	for _, tt := range tests {
		for range 2 {
			got, err := RunningBalance(l, tt.asOf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RunningBalance(%s) = %d, want %d", tt.asOf.Format(time.DateOnly), got, tt.want)
			}
		}
	}

	bad := []model.CashFlowEvent{
		{Date: model.Day(2025, 1, 1), Direction: model.Inflow, Amount: 0},
		{Date: model.Day(2025, 1, 1), Direction: "sideways", Amount: 1},
	}
	for _, ev := range bad {
		_, err := RunningBalance(l.Append(ev), model.Day(2025, 1, 31))
		requireErr(t, err, ErrInvalidInput)
	}
}

func TestBalanceIndex(t *testing.T) {
	l := testLedger()
	idx := mustIndex(t, l)

	for d := model.Day(2024, 12, 30); d.Before(model.Day(2025, 3, 2)); d = d.AddDate(0, 0, 1) {
		want, err := RunningBalance(l, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := idx.At(d); got != want {
			t.Errorf("At(%s) = %d, want %d", d.Format(time.DateOnly), got, want)
		}
	}

	var days []time.Time
	var bals []model.Money
	for d, b := range idx.Days(model.Day(2025, 1, 1), model.Day(2025, 1, 31)) {
		days = append(days, d)
		bals = append(bals, b)
	}
	if len(days) != 31 {
		t.Fatalf("len(days) = %d, want 31", len(days))
	}
	if !days[0].Equal(model.Day(2025, 1, 1)) || bals[0] != 1_000_000 || bals[4] != 1_200_000 || bals[30] != 1_050_000 {
		t.Errorf("January days start %s with balances %d, %d, %d", days[0].Format(time.DateOnly), bals[0], bals[4], bals[30])
	}

	seq := idx.Days(model.Day(2025, 1, 1), model.Day(2025, 2, 28))
	collect := func() []model.Money {
		var out []model.Money
		for _, b := range seq {
			out = append(out, b)
		}
		return out
	}
	first := collect()
	if len(first) != 59 || !slices.Equal(first, collect()) {
		t.Errorf("Days is not restartable: %d then %d values", len(first), len(collect()))
	}

	n := 0
	for range idx.Days(model.Day(2025, 1, 1), model.Day(2025, 12, 31)) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("early break yielded %d days, want 3", n)
	}

	for range idx.Days(model.Day(2025, 2, 1), model.Day(2025, 1, 1)) {
		t.Fatal("inverted range yielded a day")
	}

	next := l.Append(model.CashFlowEvent{Date: model.Day(2025, 1, 2), Direction: model.Inflow, Amount: 5})
	idx2 := mustIndex(t, next)
	if got := idx2.At(model.Day(2025, 1, 2)); got != 1_000_005 {
		t.Errorf("appended index At = %d, want 1000005", got)
	}
	if got := idx.At(model.Day(2025, 1, 2)); got != 1_000_000 {
		t.Errorf("original index At = %d after append, want 1000000", got)
	}
	if len(l.Events) != 4 {
		t.Errorf("Append mutated the ledger: %d events", len(l.Events))
	}

	evs := idx.Events()
	if len(evs) != 4 || evs[0].Name != "Card settlement" || evs[1].Name != "Supplier" || evs[2].Name != "Rent" {
		t.Errorf("Events not in date order: %+v", evs)
	}
}

func TestBalanceStatus(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		balance model.Money
		want    BalanceStatus
	}{
		{-1, BalanceDanger},
		{499_999, BalanceDanger},
		{500_000, BalanceWarning},
		{999_999, BalanceWarning},
		{1_000_000, BalanceSafe},
	}
	for _, tt := range tests {
		if got := p.BalanceStatus(tt.balance); got != tt.want {
			t.Errorf("BalanceStatus(%d) = %s, want %s", tt.balance, got, tt.want)
		}
	}
}

func TestSummarizeMonth(t *testing.T) {
	idx := mustIndex(t, testLedger())
	p := DefaultPolicy()

	jan := p.SummarizeMonth(idx, 2025, time.January)
	money := []struct {
		name      string
		got, want model.Money
	}{
		{"Inflow", jan.Inflow, 300_000},
		{"Outflow", jan.Outflow, 250_000},
		{"Net", jan.Net(), 50_000},
		{"Opening", jan.Opening, 1_000_000},
		{"Closing", jan.Closing, 1_050_000},
		{"Lowest", jan.Lowest, 1_000_000},
	}
	for _, m := range money {
		if m.got != m.want {
			t.Errorf("January %s = %d, want %d", m.name, m.got, m.want)
		}
	}
	if jan.Status != BalanceSafe {
		t.Errorf("January Status = %s, want %s", jan.Status, BalanceSafe)
	}
	if !jan.LowestDay.Equal(model.Day(2025, 1, 1)) {
		t.Errorf("January LowestDay = %s, want 2025-01-01", jan.LowestDay.Format(time.DateOnly))
	}
	if len(jan.Alerts) != 1 || jan.Alerts[0].Name != "Rent" {
		t.Errorf("January Alerts = %+v, want Rent only", jan.Alerts)
	}
	if len(jan.MonthEvents) != 3 {
		t.Errorf("len(January MonthEvents) = %d, want 3", len(jan.MonthEvents))
	}

	feb := p.SummarizeMonth(idx, 2025, time.February)
	if feb.Opening != 1_050_000 || feb.Closing != 350_000 || feb.Status != BalanceDanger {
		t.Errorf("February = opening %d closing %d %s, want 1050000, 350000, danger", feb.Opening, feb.Closing, feb.Status)
	}
	if !feb.LowestDay.Equal(model.Day(2025, 2, 10)) {
		t.Errorf("February LowestDay = %s, want 2025-02-10", feb.LowestDay.Format(time.DateOnly))
	}
}
