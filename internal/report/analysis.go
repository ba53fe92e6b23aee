package report

import (
	"fmt"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

// Improvement is a cost category above the industry band and what fixing it
// is worth per month.
type Improvement struct {
	finance.CategoryComparison
	Savings model.Money
}

// Analysis is the break-even and cost-structure screen.
type Analysis struct {
	BreakEvenSales model.Money
	ProjectedSales model.Money
	TotalCost      model.Money
	Achievement    finance.Achievement
	Shares         []model.CostShare
	Comparisons    []finance.CategoryComparison
	Improvements   []Improvement
}

// BuildAnalysis breaks the session's costs down and benchmarks them.
func BuildAnalysis(s *session.Session, p finance.Policy) (Analysis, error) {
	a := s.Analysis()
	ach, err := finance.ComputeAchievement(a.ProjectedSales, a.BreakEvenSales)
	if err != nil {
		return Analysis{}, fmt.Errorf("analysis achievement: %w", err)
	}
	shares, err := finance.CostBreakdown(a.Costs, p.PercentPlaces)
	if err != nil {
		return Analysis{}, fmt.Errorf("cost breakdown: %w", err)
	}

	out := Analysis{
		BreakEvenSales: a.BreakEvenSales,
		ProjectedSales: a.ProjectedSales,
		Achievement:    ach,
		Shares:         shares,
		Comparisons:    p.CompareBreakdown(shares),
	}
	for _, c := range a.Costs {
		out.TotalCost += c.Amount
	}
	for _, row := range finance.ImprovementPoints(out.Comparisons) {
		out.Improvements = append(out.Improvements, Improvement{
			CategoryComparison: row,
			Savings:            row.Savings(a.ProjectedSales),
		})
	}
	return out, nil
}
