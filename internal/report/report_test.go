package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

func seeded(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(session.Seed())
	require.NoError(t, err)
	return s
}

func TestBuildDashboard(t *testing.T) {
	d, err := BuildDashboard(seeded(t), finance.DefaultPolicy())
	require.NoError(t, err)

	assert.InDelta(t, 70.83, d.Achievement.Rate, 0.01)
	assert.Equal(t, model.Money(350_000), d.Achievement.Shortfall)
	assert.Equal(t, finance.BalanceSafe, d.CashStatus)
	require.Len(t, d.History, 3)
	assert.InDelta(t, 65.0, d.History[0].Rate, 1e-9)
}

func TestBuildDashboard_ZeroBreakEven(t *testing.T) {
	data := session.Seed()
	data.Dashboard.BreakEvenSales = 0
	s, err := session.New(data)
	require.NoError(t, err)

	_, err = BuildDashboard(s, finance.DefaultPolicy())
	assert.ErrorIs(t, err, finance.ErrDomain)
}

func TestBuildAnalysis(t *testing.T) {
	a, err := BuildAnalysis(seeded(t), finance.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, model.Money(935_000), a.TotalCost)
	require.Len(t, a.Shares, 5)
	var sum float64
	for _, s := range a.Shares {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)

	require.Len(t, a.Improvements, 1)
	assert.Equal(t, model.CategoryLabor, a.Improvements[0].Share.Category)
	assert.Equal(t, model.Money(170_850), a.Improvements[0].Savings)
}

func TestBuildMenuList(t *testing.T) {
	s := seeded(t)
	p := finance.DefaultPolicy()

	list, err := BuildMenuList(s, p, MenuQuery{Sort: finance.SortProfitDesc})
	require.NoError(t, err)
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "Carbonara", list.Rows[0].Item.Name)
	assert.Equal(t, finance.MenuNeedsImprovement, list.Rows[0].Status)
	assert.Equal(t, finance.MenuStandard, list.Rows[1].Status)
	assert.Equal(t, model.Money(374_800), list.Summary.TotalMonthlyProfit)

	drinks, err := BuildMenuList(s, p, MenuQuery{Category: model.MenuDrink})
	require.NoError(t, err)
	require.Len(t, drinks.Rows, 1)
	assert.Equal(t, 1, drinks.Summary.Count)

	none, err := BuildMenuList(s, p, MenuQuery{Search: "ramen"})
	require.NoError(t, err)
	assert.Empty(t, none.Rows)
	assert.Zero(t, none.Summary.AvgCostRate)
}

func TestBuildMenuDetail(t *testing.T) {
	s := seeded(t)
	p := finance.DefaultPolicy()

	d, err := BuildMenuDetail(s, p, "2", 0)
	require.NoError(t, err)
	assert.Equal(t, model.Money(560), d.Profitability.Profit)
	assert.Equal(t, finance.BandHigh, d.Band)
	assert.Equal(t, model.Money(212_800), d.MonthlyProfit)
	assert.Len(t, d.Ingredients, 4)
	assert.Nil(t, d.Simulation)

	d, err = BuildMenuDetail(s, p, "2", 1_080)
	require.NoError(t, err)
	require.NotNil(t, d.Simulation)
	assert.Equal(t, model.Money(100), d.Simulation.ProfitDelta)
	assert.Equal(t, finance.BandCaution, d.SimulatedBand)

	_, err = BuildMenuDetail(s, p, "nope", 0)
	assert.ErrorIs(t, err, session.ErrMenuNotFound)

	_, err = BuildMenuDetail(s, p, "2", -10)
	assert.ErrorIs(t, err, finance.ErrDomain)
}

func TestBuildCashflow(t *testing.T) {
	s := seeded(t)
	p := finance.DefaultPolicy()

	jan := BuildCashflow(s, p, 2025, time.January)
	require.Len(t, jan.Days, 31)
	assert.Equal(t, 3, jan.Offset) // 2025-01-01 is a Wednesday
	assert.Equal(t, model.Money(2_300_000), jan.Days[0].Balance)
	assert.Equal(t, model.Money(2_750_000), jan.Days[4].Balance)
	assert.Equal(t, model.Money(2_720_000), jan.Summary.Closing)
	assert.Equal(t, model.Money(1_250_000), jan.Summary.Inflow)
	assert.Equal(t, model.Money(830_000), jan.Summary.Outflow)
	assert.Len(t, jan.EventDays(), 6)
	assert.Len(t, jan.Days[14].Events, 2)

	feb := BuildCashflow(s, p, 2025, time.February)
	require.Len(t, feb.Days, 28)
	assert.True(t, feb.Days[19].Alert)
	assert.Equal(t, model.Money(3_110_000), feb.Summary.Closing)

	mar := BuildCashflow(s, p, 2025, time.March)
	assert.Len(t, mar.Summary.Alerts, 2)
	assert.Equal(t, model.Money(3_620_000), mar.Summary.Closing)

	t.Run("matches the running balance", func(t *testing.T) {
		for _, cell := range mar.Days {
			want, err := finance.RunningBalance(s.Ledger(), cell.Date)
			require.NoError(t, err)
			assert.Equal(t, want, cell.Balance)
		}
	})
}
