// Package finance is the financial metrics engine: break-even, profitability,
// risk and cash-balance formulas shared by every screen.
//
// Every function is pure. Inputs that violate a precondition fail with an
// *InputError; inputs for which a formula is undefined fail with a *DomainError.
// No function substitutes a default for an undefined result.
package finance

import (
	"math"

	"github.com/laosia/navi/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// mulMoney multiplies non-negative factors, reporting false on int64 overflow.
func mulMoney(factors ...model.Money) (model.Money, bool) {
	product := model.Money(1)
	for _, f := range factors {
		if f == 0 {
			return 0, true
		}
		if product > math.MaxInt64/f {
			return 0, false
		}
		product *= f
	}
	return product, true
}

// addMoney sums non-negative terms, reporting false on int64 overflow.
func addMoney(terms ...model.Money) (model.Money, bool) {
	var sum model.Money
	for _, v := range terms {
		if sum > math.MaxInt64-v {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

// TotalFixedCost sums rent, utilities, other fixed costs and labor.
func TotalFixedCost(c model.FixedCostSet) (model.Money, error) {
	fields := []struct {
		name string
		v    model.Money
	}{
		{"rent", c.Rent},
		{"utilities", c.Utilities},
		{"other fixed", c.OtherFixed},
		{"labor cost", c.LaborCost},
	}
	var total model.Money
	for _, f := range fields {
		if f.v < 0 {
			return 0, invalid(f.name, "must be non-negative")
		}
		var ok bool
		if total, ok = addMoney(total, f.v); !ok {
			return 0, invalid("total fixed cost", "is too large")
		}
	}
	return total, nil
}

// LaborCost returns ownerSalary + staffCount * hourlyWage * monthlyHoursPerStaff.
func LaborCost(in model.LaborCostInputs) (model.Money, error) {
	switch {
	case in.OwnerSalary < 0:
		return 0, invalid("owner salary", "must be non-negative")
	case in.StaffCount < 0:
		return 0, invalid("staff count", "must be a non-negative integer")
	case in.HourlyWage < 0:
		return 0, invalid("hourly wage", "must be non-negative")
	case in.MonthlyHoursPerStaff < 0:
		return 0, invalid("monthly hours per staff", "must be non-negative")
	}
	staff, ok := mulMoney(model.Money(in.StaffCount), in.HourlyWage, model.Money(in.MonthlyHoursPerStaff))
	if !ok {
		return 0, invalid("labor cost", "is too large")
	}
	total, ok := addMoney(in.OwnerSalary, staff)
	if !ok {
		return 0, invalid("labor cost", "is too large")
	}
	return total, nil
}

// ProjectedSales returns avgSpending * customersPerDay * operatingDays.
func ProjectedSales(p model.SalesProjection) (model.Money, error) {
	switch {
	case p.AvgSpending <= 0:
		return 0, invalid("average spending", "must be positive")
	case p.CustomersPerDay < 0:
		return 0, invalid("customers per day", "must be non-negative")
	case p.OperatingDays < 0:
		return 0, invalid("operating days", "must be non-negative")
	}
	sales, ok := mulMoney(p.AvgSpending, model.Money(p.CustomersPerDay), model.Money(p.OperatingDays))
	if !ok {
		return 0, invalid("projected sales", "is too large")
	}
	return sales, nil
}

// RateFromPercent converts a percentage such as 30 into the fraction 0.30.
func RateFromPercent(pct float64) (float64, error) {
	if !finite(pct) {
		return 0, invalid("cost rate", "must be a finite number")
	}
	if pct < 0 {
		return 0, invalid("cost rate", "must be non-negative")
	}
	return pct / 100, nil
}

// BreakEvenSales returns totalFixedCost / (1 - variableCostRate), rounded to
// the currency unit. A rate outside [0, 1), NaN included, has no break-even
// point.
func BreakEvenSales(totalFixedCost model.Money, variableCostRate float64) (model.Money, error) {
	if totalFixedCost < 0 {
		return 0, invalid("total fixed cost", "must be non-negative")
	}
	if !finite(variableCostRate) || variableCostRate < 0 || variableCostRate >= 1 {
		return 0, undefined("invalid cost rate")
	}
	margin := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(variableCostRate))
	be := decimal.NewFromInt(int64(totalFixedCost)).Div(margin).Round(0)
	return model.Money(be.IntPart()), nil
}

// Achievement is sales measured against the break-even point.
type Achievement struct {
	Rate      float64 // percent of break-even reached
	Achieved  bool
	Shortfall model.Money // never negative
}

// ComputeAchievement returns sales / breakEven * 100 with the derived flag and
// shortfall.
func ComputeAchievement(sales, breakEven model.Money) (Achievement, error) {
	if sales < 0 {
		return Achievement{}, invalid("sales", "must be non-negative")
	}
	if breakEven < 0 {
		return Achievement{}, invalid("break-even sales", "must be non-negative")
	}
	if breakEven == 0 {
		return Achievement{}, undefined("zero break-even")
	}
	rate := float64(sales) / float64(breakEven) * 100
	shortfall := breakEven - sales
	if shortfall < 0 {
		shortfall = 0
	}
	return Achievement{
		Rate:      rate,
		Achieved:  rate >= 100,
		Shortfall: shortfall,
	}, nil
}

// BreakEvenCustomers returns the daily customer count needed to reach
// break-even: ceil(breakEven / avgSpending / operatingDays).
func BreakEvenCustomers(breakEven, avgSpending model.Money, operatingDays int) (int, error) {
	if breakEven < 0 {
		return 0, invalid("break-even sales", "must be non-negative")
	}
	if avgSpending <= 0 {
		return 0, undefined("non-positive average spending")
	}
	if operatingDays <= 0 {
		return 0, undefined("non-positive operating days")
	}
	perDay, ok := mulMoney(avgSpending, model.Money(operatingDays))
	if !ok {
		return 0, invalid("average spending", "is too large")
	}
	return int((breakEven + perDay - 1) / perDay), nil
}

// SeatTurnover returns how many times each seat must turn over per day.
func SeatTurnover(customersPerDay, seats int) (float64, error) {
	if customersPerDay < 0 {
		return 0, invalid("customers per day", "must be non-negative")
	}
	if seats <= 0 {
		return 0, undefined("non-positive seat count")
	}
	return float64(customersPerDay) / float64(seats), nil
}

// LaborCostRate returns labor cost as a percentage of sales.
func LaborCostRate(labor, sales model.Money) (float64, error) {
	if labor < 0 {
		return 0, invalid("labor cost", "must be non-negative")
	}
	if sales < 0 {
		return 0, invalid("sales", "must be non-negative")
	}
	if sales == 0 {
		return 0, undefined("zero sales")
	}
	return float64(labor) / float64(sales) * 100, nil
}
