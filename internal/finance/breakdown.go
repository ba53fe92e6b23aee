package finance

import (
	"math"
	"sort"

	"github.com/laosia/navi/internal/model"

	"github.com/shopspring/decimal"
)

// industryBand is the fixed +-5 point band around the industry average.
const industryBand = 5.0

// CostBreakdown returns each item's share of the total, in percent rounded to
// places decimals. Rounding uses the largest-remainder method so the shares of
// a positive total always add up to exactly 100 at that precision. A zero total
// yields zero shares.
func CostBreakdown(items []model.CostItem, places int) ([]model.CostShare, error) {
	if places < 0 {
		return nil, invalid("percent places", "must be non-negative")
	}
	var total model.Money
	for _, it := range items {
		if it.Amount < 0 {
			return nil, invalid("cost amount", "must be non-negative for "+it.Name)
		}
		total += it.Amount
	}

	shares := make([]model.CostShare, len(items))
	for i, it := range items {
		shares[i] = model.CostShare{CostItem: it}
	}
	if total == 0 {
		return shares, nil
	}

	// Work in integer units of 10^-places percent.
	scale := decimal.New(1, int32(places))
	target := hundred.Mul(scale).IntPart()
	whole := decimal.NewFromInt(int64(total))

	units := make([]int64, len(items))
	rems := make([]decimal.Decimal, len(items))
	var assigned int64
	for i, it := range items {
		exact := decimal.NewFromInt(int64(it.Amount)).Mul(hundred).Mul(scale).Div(whole)
		floor := exact.Floor()
		units[i] = floor.IntPart()
		rems[i] = exact.Sub(floor)
		assigned += units[i]
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rems[order[a]].GreaterThan(rems[order[b]])
	})
	for k := 0; assigned < target && k < len(order); k++ {
		units[order[k]]++
		assigned++
	}

	for i := range shares {
		shares[i].Percentage = decimal.NewFromInt(units[i]).Div(scale).InexactFloat64()
	}
	return shares, nil
}

// Classification places a cost share relative to the industry average.
type Classification string

const (
	AboveAverage Classification = "above-average"
	Normal       Classification = "normal"
	Excellent    Classification = "excellent"
)

// Comparison is one category measured against its industry average.
type Comparison struct {
	Diff           float64
	Classification Classification
}

// Concern reports whether the comparison flags a cost problem.
func (c Comparison) Concern() bool {
	return c.Classification == AboveAverage
}

// CompareToIndustry classifies yourPercentage against industryAvgPercentage:
// more than 5 points above is above-average, more than 5 below is excellent.
func CompareToIndustry(yourPercentage, industryAvgPercentage float64) Comparison {
	diff := yourPercentage - industryAvgPercentage
	c := Comparison{Diff: diff, Classification: Normal}
	switch {
	case diff > industryBand:
		c.Classification = AboveAverage
	case diff < -industryBand:
		c.Classification = Excellent
	}
	return c
}

// CategoryComparison is a cost share paired with its industry benchmark.
type CategoryComparison struct {
	Share           model.CostShare
	IndustryAverage float64
	Comparison
}

// CompareBreakdown benchmarks every share whose category has a configured
// industry average. Shares without one are skipped.
func (p Policy) CompareBreakdown(shares []model.CostShare) []CategoryComparison {
	rows := make([]CategoryComparison, 0, len(shares))
	for _, s := range shares {
		avg, ok := p.IndustryAverage(s.Category)
		if !ok {
			continue
		}
		rows = append(rows, CategoryComparison{
			Share:           s,
			IndustryAverage: avg,
			Comparison:      CompareToIndustry(s.Percentage, avg),
		})
	}
	return rows
}

// ImprovementPoints returns the rows flagged as a cost concern.
func ImprovementPoints(rows []CategoryComparison) []CategoryComparison {
	var out []CategoryComparison
	for _, r := range rows {
		if r.Concern() {
			out = append(out, r)
		}
	}
	return out
}

// Savings returns what bringing the category down to the industry average
// would save at the given monthly sales. Categories at or below the average
// save nothing.
func (c CategoryComparison) Savings(projectedSales model.Money) model.Money {
	if c.Diff <= 0 {
		return 0
	}
	return model.Money(math.Round(c.Diff / 100 * float64(projectedSales)))
}
