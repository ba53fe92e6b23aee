package finance

import (
	"sort"
	"strings"

	"github.com/laosia/navi/internal/model"

	"github.com/shopspring/decimal"
)

// Profitability is the per-unit economics of one menu item.
type Profitability struct {
	TotalCost model.Money
	Profit    model.Money
	CostRate  float64 // percent of price; above 100 means the item loses money
}

// RecipeCost sums quantity * unit price over the ingredients and rounds the
// total once to the currency unit.
func RecipeCost(ingredients []model.Ingredient) (model.Money, error) {
	sum := decimal.Zero
	for _, ing := range ingredients {
		if !ing.Quantity.IsPositive() {
			return 0, invalid("ingredient quantity", "must be positive for "+ing.Name)
		}
		if ing.UnitPrice.IsNegative() {
			return 0, invalid("ingredient unit price", "must be non-negative for "+ing.Name)
		}
		sum = sum.Add(ing.LineCost())
	}
	return model.Money(sum.Round(0).IntPart()), nil
}

// MenuProfitability returns the recipe cost, profit and cost rate at price.
func MenuProfitability(price model.Money, ingredients []model.Ingredient) (Profitability, error) {
	if price <= 0 {
		return Profitability{}, undefined("non-positive price")
	}
	cost, err := RecipeCost(ingredients)
	if err != nil {
		return Profitability{}, err
	}
	return atPrice(price, cost)
}

// CostRate returns cost as a percentage of price.
func CostRate(cost, price model.Money) (float64, error) {
	if cost < 0 {
		return 0, invalid("total cost", "must be non-negative")
	}
	if price <= 0 {
		return 0, undefined("non-positive price")
	}
	return float64(cost) / float64(price) * 100, nil
}

func atPrice(price, cost model.Money) (Profitability, error) {
	rate, err := CostRate(cost, price)
	if err != nil {
		return Profitability{}, err
	}
	return Profitability{
		TotalCost: cost,
		Profit:    price - cost,
		CostRate:  rate,
	}, nil
}

// PriceSimulation compares a candidate price with the current one.
type PriceSimulation struct {
	Profit        model.Money
	CostRate      float64
	ProfitDelta   model.Money
	CostRateDelta float64
}

// SimulatePriceChange re-evaluates an item at candidatePrice without touching
// the item itself.
func SimulatePriceChange(basePrice, totalCost, candidatePrice model.Money) (PriceSimulation, error) {
	base, err := atPrice(basePrice, totalCost)
	if err != nil {
		return PriceSimulation{}, err
	}
	next, err := atPrice(candidatePrice, totalCost)
	if err != nil {
		return PriceSimulation{}, err
	}
	return PriceSimulation{
		Profit:        next.Profit,
		CostRate:      next.CostRate,
		ProfitDelta:   next.Profit - base.Profit,
		CostRateDelta: next.CostRate - base.CostRate,
	}, nil
}

// MenuStatus is the badge shown next to a menu item.
type MenuStatus string

const (
	MenuNeedsImprovement MenuStatus = "needs-improvement"
	MenuExcellent        MenuStatus = "excellent"
	MenuStandard         MenuStatus = "standard"
)

// MenuStatus badges an item: a high cost rate wins over a high profit.
func (p Policy) MenuStatus(costRate float64, profit model.Money) MenuStatus {
	switch {
	case costRate >= p.Menu.NeedsImprovementCostRate:
		return MenuNeedsImprovement
	case profit >= p.Menu.ExcellentProfit:
		return MenuExcellent
	default:
		return MenuStandard
	}
}

// Band is a three-step traffic light.
type Band string

const (
	BandGood    Band = "good"
	BandCaution Band = "caution"
	BandHigh    Band = "high"
)

// CostRateBand colours the cost-rate gauge on the menu detail screen.
func (p Policy) CostRateBand(costRate float64) Band {
	switch {
	case costRate >= p.Menu.NeedsImprovementCostRate:
		return BandHigh
	case costRate >= p.Menu.CautionCostRate:
		return BandCaution
	default:
		return BandGood
	}
}

// MenuLine is a menu item with its computed economics.
type MenuLine struct {
	Item model.MenuItem
	Profitability
	MonthlyProfit model.Money
}

// EvaluateMenu computes the economics of every item, keeping input order.
func EvaluateMenu(items []model.MenuItem) ([]MenuLine, error) {
	lines := make([]MenuLine, 0, len(items))
	for _, it := range items {
		if it.MonthlySalesVolume < 0 {
			return nil, invalid("monthly sales volume", "must be non-negative for "+it.Name)
		}
		prof, err := MenuProfitability(it.Price, it.Ingredients)
		if err != nil {
			return nil, err
		}
		lines = append(lines, MenuLine{
			Item:          it,
			Profitability: prof,
			MonthlyProfit: prof.Profit * model.Money(it.MonthlySalesVolume),
		})
	}
	return lines, nil
}

// MenuSummary aggregates the menu list header.
type MenuSummary struct {
	Count              int
	AvgCostRate        float64
	TotalMonthlyProfit model.Money
}

// SummarizeMenu averages cost rates and totals monthly profit. An empty menu
// summarizes to zeros.
func SummarizeMenu(lines []MenuLine) MenuSummary {
	s := MenuSummary{Count: len(lines)}
	if len(lines) == 0 {
		return s
	}
	var rates float64
	for _, l := range lines {
		rates += l.CostRate
		s.TotalMonthlyProfit += l.MonthlyProfit
	}
	s.AvgCostRate = rates / float64(len(lines))
	return s
}

// SortMode orders the menu list.
type SortMode string

const (
	SortProfitDesc   SortMode = "profit-desc"
	SortCostRateDesc SortMode = "cost-rate-desc"
	SortNameAsc      SortMode = "name-asc"
	SortSalesDesc    SortMode = "sales-desc"
)

// SortModes lists the supported sort modes.
var SortModes = []SortMode{SortProfitDesc, SortCostRateDesc, SortNameAsc, SortSalesDesc}

// SortMenu returns a sorted copy of lines. Unknown modes keep input order.
func SortMenu(lines []MenuLine, mode SortMode) []MenuLine {
	out := make([]MenuLine, len(lines))
	copy(out, lines)

	var less func(a, b MenuLine) bool
	switch mode {
	case SortProfitDesc:
		less = func(a, b MenuLine) bool { return a.Profit > b.Profit }
	case SortCostRateDesc:
		less = func(a, b MenuLine) bool { return a.CostRate > b.CostRate }
	case SortNameAsc:
		less = func(a, b MenuLine) bool { return strings.ToLower(a.Item.Name) < strings.ToLower(b.Item.Name) }
	case SortSalesDesc:
		less = func(a, b MenuLine) bool { return a.Item.MonthlySalesVolume > b.Item.MonthlySalesVolume }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// FilterMenu keeps lines in category (empty matches all) whose name contains
// search, case-insensitively.
func FilterMenu(lines []MenuLine, category model.MenuCategory, search string) []MenuLine {
	needle := strings.ToLower(search)
	var out []MenuLine
	for _, l := range lines {
		if category != "" && l.Item.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.Item.Name), needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}
