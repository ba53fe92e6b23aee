package finance

import (
	"math"
	"testing"

	"github.com/laosia/navi/internal/model"

	"github.com/shopspring/decimal"
)

func ing(name string, qty, price string) model.Ingredient {
	return model.Ingredient{
		Name:      name,
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func carbonara() model.MenuItem {
	return model.MenuItem{
		ID:       "carbonara",
		Name:     "Carbonara",
		Category: model.MenuFood,
		Price:    980,
		Ingredients: []model.Ingredient{
			ing("Pasta", "100", "2"),
			ing("Eggs", "2", "30"),
			ing("Bacon", "50", "3"),
			ing("Other", "1", "10"),
		},
		MonthlySalesVolume: 380,
	}
}

func blendCoffee() model.MenuItem {
	return model.MenuItem{
		ID:       "blend",
		Name:     "Blend coffee",
		Category: model.MenuDrink,
		Price:    450,
		Ingredients: []model.Ingredient{
			ing("Beans", "15", "4"),
			ing("Water", "200", "0.15"),
		},
		MonthlySalesVolume: 450,
	}
}

func TestCostRate(t *testing.T) {
	tests := []struct {
		cost, price model.Money
		want        float64
	}{
		{420, 980, 42.857},
		{90, 450, 20},
		{0, 500, 0},
		{150, 100, 150},
	}
	for _, tt := range tests {
		got, err := CostRate(tt.cost, tt.price)
		if err != nil {
			t.Fatalf("CostRate(%d, %d): unexpected error: %v", tt.cost, tt.price, err)
		}
		if !near(got, tt.want, 0.001) {
			t.Errorf("CostRate(%d, %d) = %.3f, want %.3f", tt.cost, tt.price, got, tt.want)
		}
	}

	_, err := CostRate(100, 0)
	requireErr(t, err, ErrDomain)
	_, err = CostRate(-1, 100)
	requireErr(t, err, ErrInvalidInput)
}

func TestMenuProfitability(t *testing.T) {
	it := carbonara()
	p, err := MenuProfitability(it.Price, it.Ingredients)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalCost != 420 || p.Profit != 560 || !near(p.CostRate, 42.857, 0.001) {
		t.Errorf("carbonara = %+v, want cost 420 profit 560 rate 42.857", p)
	}

	it = blendCoffee()
	p, err = MenuProfitability(it.Price, it.Ingredients)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalCost != 90 || !near(p.CostRate, 20, 1e-9) {
		t.Errorf("blend coffee = %+v, want cost 90 rate 20", p)
	}

	cost, err := RecipeCost([]model.Ingredient{ing("a", "1", "0.4"), ing("b", "1", "0.4")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 1 {
		t.Errorf("RecipeCost = %d, want 1 (rounded once)", cost)
	}

	p, err = MenuProfitability(100, []model.Ingredient{ing("truffle", "1", "150")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Profit != -50 || p.CostRate <= 100 {
		t.Errorf("loss-making item = %+v, want profit -50 and rate above 100", p)
	}

	_, err = MenuProfitability(0, carbonara().Ingredients)
	requireErr(t, err, ErrDomain)
	_, err = MenuProfitability(100, []model.Ingredient{ing("a", "0", "1")})
	requireErr(t, err, ErrInvalidInput)
	_, err = MenuProfitability(100, []model.Ingredient{ing("a", "1", "-1")})
	requireErr(t, err, ErrInvalidInput)
}

func TestSimulatePriceChange(t *testing.T) {
	s, err := SimulatePriceChange(980, 420, 980)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ProfitDelta != 0 || s.CostRateDelta != 0 || s.Profit != 560 {
		t.Errorf("same price = %+v, want identity with profit 560", s)
	}

	s, err = SimulatePriceChange(980, 420, 1_080)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Profit != 660 || s.ProfitDelta != 100 || s.CostRateDelta >= 0 {
		t.Errorf("raised price = %+v, want profit 660 delta 100 and a lower cost rate", s)
	}

	_, err = SimulatePriceChange(980, 420, 0)
	requireErr(t, err, ErrDomain)
	_, err = SimulatePriceChange(980, -1, 1_000)
	requireErr(t, err, ErrInvalidInput)
}

func TestMenuStatus(t *testing.T) {
	p := DefaultPolicy()
	statuses := []struct {
		rate   float64
		profit model.Money
		want   MenuStatus
	}{
		{42.9, 560, MenuNeedsImprovement},
		{20, 400, MenuExcellent},
		{35, 399, MenuStandard},
	}
	for _, tt := range statuses {
		if got := p.MenuStatus(tt.rate, tt.profit); got != tt.want {
			t.Errorf("MenuStatus(%.1f, %d) = %s, want %s", tt.rate, tt.profit, got, tt.want)
		}
	}

	bands := []struct {
		rate float64
		want Band
	}{
		{40, BandHigh},
		{30, BandCaution},
		{29.9, BandGood},
	}
	for _, tt := range bands {
		if got := p.CostRateBand(tt.rate); got != tt.want {
			t.Errorf("CostRateBand(%.1f) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestEvaluateMenu(t *testing.T) {
	lines, err := EvaluateMenu([]model.MenuItem{blendCoffee(), carbonara()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].MonthlyProfit != 360*450 || lines[1].MonthlyProfit != 560*380 {
		t.Errorf("monthly profits = %d, %d", lines[0].MonthlyProfit, lines[1].MonthlyProfit)
	}

	s := SummarizeMenu(lines)
	if s.Count != 2 || !near(s.AvgCostRate, (20.0+42.857)/2, 0.001) || s.TotalMonthlyProfit != 162_000+212_800 {
		t.Errorf("SummarizeMenu = %+v", s)
	}
	if s := SummarizeMenu(nil); s != (MenuSummary{}) || math.IsNaN(s.AvgCostRate) {
		t.Errorf("SummarizeMenu(nil) = %+v, want zero summary", s)
	}

	sorts := []struct {
		mode SortMode
		want string
	}{
		{SortProfitDesc, "carbonara"},
		{SortCostRateDesc, "carbonara"},
		{SortNameAsc, "blend"},
		{SortSalesDesc, "blend"},
	}
	for _, tt := range sorts {
		if got := SortMenu(lines, tt.mode)[0].Item.ID; got != tt.want {
			t.Errorf("SortMenu(%s) first = %s, want %s", tt.mode, got, tt.want)
		}
	}
	if lines[0].Item.ID != "blend" {
		t.Error("SortMenu reordered its input")
	}

	filters := []struct {
		category model.MenuCategory
		search   string
		want     int
	}{
		{model.MenuDrink, "", 1},
		{"", "CARBO", 1},
		{"", "", 2},
		{model.MenuDessert, "", 0},
	}
	for _, tt := range filters {
		if got := len(FilterMenu(lines, tt.category, tt.search)); got != tt.want {
			t.Errorf("FilterMenu(%q, %q) = %d lines, want %d", tt.category, tt.search, got, tt.want)
		}
	}

	it := blendCoffee()
	it.MonthlySalesVolume = -1
	_, err = EvaluateMenu([]model.MenuItem{it})
	requireErr(t, err, ErrInvalidInput)
}
