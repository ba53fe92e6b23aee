package config

import (
	"fmt"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
)

// PolicyConfig is the [policy] table: the engine thresholds a deployment may tune.
type PolicyConfig struct {
	DangerBalance            int64   `toml:"danger_balance"`
	WarningBalance           int64   `toml:"warning_balance"`
	HighLaborRate            float64 `toml:"high_labor_rate"`
	MediumLaborRate          float64 `toml:"medium_labor_rate"`
	NeedsImprovementCostRate float64 `toml:"needs_improvement_cost_rate"`
	CautionCostRate          float64 `toml:"caution_cost_rate"`
	ExcellentProfit          int64   `toml:"excellent_profit"`
	TargetLaborRate          float64 `toml:"target_labor_rate"`
	ImprovementFactor        float64 `toml:"improvement_factor"`
}

// DefaultPolicyConfig mirrors finance.DefaultPolicy.
func DefaultPolicyConfig() PolicyConfig {
	p := finance.DefaultPolicy()
	return PolicyConfig{
		DangerBalance:            int64(p.Cash.Danger),
		WarningBalance:           int64(p.Cash.Warning),
		HighLaborRate:            p.Risk.HighLaborRate,
		MediumLaborRate:          p.Risk.MediumLaborRate,
		NeedsImprovementCostRate: p.Menu.NeedsImprovementCostRate,
		CautionCostRate:          p.Menu.CautionCostRate,
		ExcellentProfit:          int64(p.Menu.ExcellentProfit),
		TargetLaborRate:          p.Advice.TargetLaborRate,
		ImprovementFactor:        p.Advice.ImprovementFactor,
	}
}

// Policy builds the engine policy from cfg and validates it. Industry
// averages in cfg override the defaults per category.
func Policy(cfg Config) (finance.Policy, error) {
	p := finance.DefaultPolicy()
	pc := cfg.Policy

	p.Cash = finance.CashThresholds{
		Danger:  model.Money(pc.DangerBalance),
		Warning: model.Money(pc.WarningBalance),
	}
	p.Risk = finance.RiskThresholds{
		HighLaborRate:   pc.HighLaborRate,
		MediumLaborRate: pc.MediumLaborRate,
	}
	p.Menu = finance.MenuThresholds{
		NeedsImprovementCostRate: pc.NeedsImprovementCostRate,
		ExcellentProfit:          model.Money(pc.ExcellentProfit),
		CautionCostRate:          pc.CautionCostRate,
	}
	p.Advice = finance.AdviceSettings{
		TargetLaborRate:   pc.TargetLaborRate,
		ImprovementFactor: pc.ImprovementFactor,
	}
	p.PercentPlaces = cfg.Display.PercentPlaces

	for name, avg := range cfg.Industry {
		p.IndustryAverages[model.CostCategory(name)] = avg
	}

	if err := p.Validate(); err != nil {
		return finance.Policy{}, fmt.Errorf("config policy: %w", err)
	}
	return p, nil
}
