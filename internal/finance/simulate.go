package finance

import (
	"math"

	"github.com/laosia/navi/internal/model"
)

// SimulationResult is the full business-plan evaluation.
type SimulationResult struct {
	Input              model.SimulationInput
	FixedCost          model.Money // rent + utilities + other, labor excluded
	LaborCost          model.Money
	TotalFixedCost     model.Money
	ProjectedSales     model.Money
	COGS               model.Money
	BreakEvenSales     model.Money
	BreakEvenCustomers int
	SeatTurnover       float64 // break-even customers per seat per day
	Achievement        Achievement
	Breakdown          []model.CostShare
	LaborCostRate      float64
	Risk               RiskLevel
	Advice             []Advice
}

// ProjectedProfit is projected sales less COGS and total fixed cost.
func (r SimulationResult) ProjectedProfit() model.Money {
	return r.ProjectedSales - r.COGS - r.TotalFixedCost
}

// Simulate evaluates a business plan end to end.
func (p Policy) Simulate(in model.SimulationInput) (SimulationResult, error) {
	if finite(in.CostRatePercent) && (in.CostRatePercent < 0 || in.CostRatePercent >= 100) {
		return SimulationResult{}, undefined("invalid cost rate")
	}
	rate, err := RateFromPercent(in.CostRatePercent)
	if err != nil {
		return SimulationResult{}, err
	}
	labor, err := LaborCost(in.Labor)
	if err != nil {
		return SimulationResult{}, err
	}
	fixed := model.FixedCostSet{
		Rent:       in.Rent,
		Utilities:  in.Utilities,
		OtherFixed: in.OtherFixed,
		LaborCost:  labor,
	}
	total, err := TotalFixedCost(fixed)
	if err != nil {
		return SimulationResult{}, err
	}
	sales, err := ProjectedSales(model.SalesProjection{
		AvgSpending:     in.AvgSpending,
		CustomersPerDay: in.CustomersPerDay,
		OperatingDays:   in.Store.OperatingDays,
	})
	if err != nil {
		return SimulationResult{}, err
	}
	be, err := BreakEvenSales(total, rate)
	if err != nil {
		return SimulationResult{}, err
	}
	customers, err := BreakEvenCustomers(be, in.AvgSpending, in.Store.OperatingDays)
	if err != nil {
		return SimulationResult{}, err
	}
	turnover, err := SeatTurnover(customers, in.Store.Seats)
	if err != nil {
		return SimulationResult{}, err
	}
	ach, err := ComputeAchievement(sales, be)
	if err != nil {
		return SimulationResult{}, err
	}
	laborRate, err := LaborCostRate(labor, sales)
	if err != nil {
		return SimulationResult{}, err
	}
	shares, err := CostBreakdown([]model.CostItem{
		{Name: model.CategoryRent.Label(), Category: model.CategoryRent, Amount: in.Rent},
		{Name: model.CategoryLabor.Label(), Category: model.CategoryLabor, Amount: labor},
		{Name: model.CategoryUtilities.Label(), Category: model.CategoryUtilities, Amount: in.Utilities},
		{Name: model.CategoryOther.Label(), Category: model.CategoryOther, Amount: in.OtherFixed},
	}, p.PercentPlaces)
	if err != nil {
		return SimulationResult{}, err
	}

	return SimulationResult{
		Input:              in,
		FixedCost:          in.Rent + in.Utilities + in.OtherFixed,
		LaborCost:          labor,
		TotalFixedCost:     total,
		ProjectedSales:     sales,
		COGS:               model.Money(math.Round(float64(sales) * rate)),
		BreakEvenSales:     be,
		BreakEvenCustomers: customers,
		SeatTurnover:       turnover,
		Achievement:        ach,
		Breakdown:          shares,
		LaborCostRate:      laborRate,
		Risk:               p.RiskLevel(ach.Achieved, laborRate),
		Advice:             p.Advise(ach, laborRate, sales),
	}, nil
}
