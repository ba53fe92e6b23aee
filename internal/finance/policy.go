package finance

import (
	"fmt"

	"github.com/laosia/navi/internal/model"
)

// CashThresholds classify a cash balance. Balances below Danger are dangerous,
// below Warning need attention.
type CashThresholds struct {
	Danger  model.Money
	Warning model.Money
}

// RiskThresholds are labor cost rates (percent of sales) for RiskLevel.
type RiskThresholds struct {
	HighLaborRate   float64
	MediumLaborRate float64
}

// MenuThresholds drive menu badges and the cost-rate gauge.
type MenuThresholds struct {
	NeedsImprovementCostRate float64
	ExcellentProfit          model.Money
	CautionCostRate          float64
}

// AdviceSettings tune the improvement suggestions on the simulation result.
type AdviceSettings struct {
	TargetLaborRate   float64
	ImprovementFactor float64
}

// Policy holds every deployment-tunable threshold used by the engine.
// It is a plain value; callers pass it in, the engine never stores it.
type Policy struct {
	IndustryAverages map[model.CostCategory]float64
	Cash             CashThresholds
	Risk             RiskThresholds
	Menu             MenuThresholds
	Advice           AdviceSettings
	PercentPlaces    int
}

// DefaultPolicy returns the thresholds the dashboard shipped with.
func DefaultPolicy() Policy {
	return Policy{
		IndustryAverages: map[model.CostCategory]float64{
			model.CategoryRent:      40,
			model.CategoryLabor:     28,
			model.CategoryCOGS:      30,
			model.CategoryUtilities: 3,
			model.CategoryOther:     4,
		},
		Cash: CashThresholds{
			Danger:  500_000,
			Warning: 1_000_000,
		},
		Risk: RiskThresholds{
			HighLaborRate:   35,
			MediumLaborRate: 30,
		},
		Menu: MenuThresholds{
			NeedsImprovementCostRate: 40,
			ExcellentProfit:          400,
			CautionCostRate:          30,
		},
		Advice: AdviceSettings{
			TargetLaborRate:   30,
			ImprovementFactor: 0.4,
		},
		PercentPlaces: 1,
	}
}

// Validate rejects thresholds that would make the classifications overlap.
func (p Policy) Validate() error {
	if p.Cash.Danger < 0 || p.Cash.Warning < 0 {
		return invalid("cash thresholds", "must be non-negative")
	}
	if p.Cash.Danger > p.Cash.Warning {
		return invalid("cash thresholds", fmt.Sprintf("danger %d above warning %d", p.Cash.Danger, p.Cash.Warning))
	}
	for name, v := range map[string]float64{
		"risk high labor rate":        p.Risk.HighLaborRate,
		"risk medium labor rate":      p.Risk.MediumLaborRate,
		"menu needs-improvement rate": p.Menu.NeedsImprovementCostRate,
		"menu caution rate":           p.Menu.CautionCostRate,
		"advice target labor rate":    p.Advice.TargetLaborRate,
		"advice improvement factor":   p.Advice.ImprovementFactor,
	} {
		if !finite(v) {
			return invalid(name, "must be a finite number")
		}
	}
	if p.Risk.MediumLaborRate > p.Risk.HighLaborRate {
		return invalid("risk thresholds", fmt.Sprintf("medium %.1f above high %.1f", p.Risk.MediumLaborRate, p.Risk.HighLaborRate))
	}
	if p.Menu.CautionCostRate > p.Menu.NeedsImprovementCostRate {
		return invalid("menu thresholds", "caution cost rate above needs-improvement cost rate")
	}
	if p.Advice.ImprovementFactor < 0 || p.Advice.ImprovementFactor > 1 {
		return invalid("advice improvement factor", "must be within [0, 1]")
	}
	if p.PercentPlaces < 0 || p.PercentPlaces > 6 {
		return invalid("percent places", "must be within [0, 6]")
	}
	for c, v := range p.IndustryAverages {
		if !c.Valid() {
			return invalid("industry averages", fmt.Sprintf("unknown category %q", c))
		}
		if !finite(v) || v < 0 || v > 100 {
			return invalid("industry averages", fmt.Sprintf("%s average %.1f outside [0, 100]", c, v))
		}
	}
	return nil
}

// IndustryAverage returns the configured average for a category.
func (p Policy) IndustryAverage(c model.CostCategory) (float64, bool) {
	v, ok := p.IndustryAverages[c]
	return v, ok
}
