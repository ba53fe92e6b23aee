package finance

import (
	"math"

	"github.com/laosia/navi/internal/model"
)

// RiskLevel grades the business plan.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// RiskLevel applies the first matching rule: not achieved with labor above the
// high threshold is high; not achieved or labor above the medium threshold is
// medium; anything else is low.
func (p Policy) RiskLevel(achieved bool, laborCostRate float64) RiskLevel {
	switch {
	case !achieved && laborCostRate > p.Risk.HighLaborRate:
		return RiskHigh
	case !achieved || laborCostRate > p.Risk.MediumLaborRate:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AdviceKind identifies a suggestion on the simulation result.
type AdviceKind string

const (
	AdviceReduceLabor AdviceKind = "reduce-labor"
	AdviceImproveMenu AdviceKind = "improve-menu"
	AdviceOnTrack     AdviceKind = "on-track"
)

// Advice is one suggestion with the monthly amount it is worth.
type Advice struct {
	Kind      AdviceKind
	LaborRate float64
	Amount    model.Money
}

// Advise lists improvement suggestions for a plan. Labor above the medium
// threshold suggests trimming it to the target rate; a missed break-even
// suggests menu work worth ImprovementFactor of the shortfall.
func (p Policy) Advise(a Achievement, laborCostRate float64, projectedSales model.Money) []Advice {
	var out []Advice
	if laborCostRate > p.Risk.MediumLaborRate {
		saving := (laborCostRate - p.Advice.TargetLaborRate) / 100 * float64(projectedSales)
		out = append(out, Advice{
			Kind:      AdviceReduceLabor,
			LaborRate: laborCostRate,
			Amount:    model.Money(math.Round(math.Max(saving, 0))),
		})
	}
	if !a.Achieved {
		out = append(out, Advice{
			Kind:   AdviceImproveMenu,
			Amount: model.Money(math.Round(float64(a.Shortfall) * p.Advice.ImprovementFactor)),
		})
	}
	if len(out) == 0 {
		out = append(out, Advice{Kind: AdviceOnTrack})
	}
	return out
}
