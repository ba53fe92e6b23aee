package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

// MenuQuery selects and orders the menu list.
type MenuQuery struct {
	Sort     finance.SortMode
	Category model.MenuCategory
	Search   string
}

// MenuRow is one line of the menu list.
type MenuRow struct {
	finance.MenuLine
	Status finance.MenuStatus
}

// MenuList is the menu list screen. Summary covers the rows shown.
type MenuList struct {
	Rows    []MenuRow
	Summary finance.MenuSummary
}

// BuildMenuList evaluates, filters and sorts the session's menu.
func BuildMenuList(s *session.Session, p finance.Policy, q MenuQuery) (MenuList, error) {
	lines, err := finance.EvaluateMenu(s.Menus())
	if err != nil {
		return MenuList{}, err
	}
	lines = finance.FilterMenu(lines, q.Category, q.Search)
	if q.Sort != "" {
		lines = finance.SortMenu(lines, q.Sort)
	}

	list := MenuList{Summary: finance.SummarizeMenu(lines)}
	for _, l := range lines {
		list.Rows = append(list.Rows, MenuRow{MenuLine: l, Status: p.MenuStatus(l.CostRate, l.Profit)})
	}
	return list, nil
}

// IngredientRow is one recipe line with its unrounded cost.
type IngredientRow struct {
	model.Ingredient
	Cost decimal.Decimal
}

// MenuDetail is the menu detail screen, optionally with a price what-if.
type MenuDetail struct {
	Item          model.MenuItem
	Profitability finance.Profitability
	Status        finance.MenuStatus
	Band          finance.Band
	MonthlyProfit model.Money
	Ingredients   []IngredientRow

	CandidatePrice model.Money
	Simulation     *finance.PriceSimulation
	SimulatedBand  finance.Band
}

// BuildMenuDetail evaluates one item. A positive candidatePrice different
// from the current price adds a price simulation.
func BuildMenuDetail(s *session.Session, p finance.Policy, id string, candidatePrice model.Money) (MenuDetail, error) {
	item, err := s.Menu(id)
	if err != nil {
		return MenuDetail{}, err
	}
	prof, err := finance.MenuProfitability(item.Price, item.Ingredients)
	if err != nil {
		return MenuDetail{}, fmt.Errorf("menu %s: %w", item.Name, err)
	}
	d := MenuDetail{
		Item:          item,
		Profitability: prof,
		Status:        p.MenuStatus(prof.CostRate, prof.Profit),
		Band:          p.CostRateBand(prof.CostRate),
		MonthlyProfit: prof.Profit * model.Money(item.MonthlySalesVolume),
	}
	for _, ing := range item.Ingredients {
		d.Ingredients = append(d.Ingredients, IngredientRow{Ingredient: ing, Cost: ing.LineCost()})
	}

	if candidatePrice != 0 && candidatePrice != item.Price {
		sim, err := finance.SimulatePriceChange(item.Price, prof.TotalCost, candidatePrice)
		if err != nil {
			return MenuDetail{}, fmt.Errorf("price simulation: %w", err)
		}
		d.CandidatePrice = candidatePrice
		d.Simulation = &sim
		d.SimulatedBand = p.CostRateBand(sim.CostRate)
	}
	return d, nil
}
