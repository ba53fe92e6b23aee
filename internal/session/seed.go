package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/laosia/navi/internal/model"
)

func ingredient(name string, qty int64, unit, price string) model.Ingredient {
	return model.Ingredient{
		Name:      name,
		Quantity:  decimal.NewFromInt(qty),
		Unit:      unit,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func inflow(y, m, d int, name string, amount model.Money, alert bool) model.CashFlowEvent {
	return model.CashFlowEvent{Date: model.Day(y, time.Month(m), d), Direction: model.Inflow, Amount: amount, Name: name, Alert: alert}
}

func outflow(y, m, d int, name string, amount model.Money, alert bool) model.CashFlowEvent {
	return model.CashFlowEvent{Date: model.Day(y, time.Month(m), d), Direction: model.Outflow, Amount: amount, Name: name, Alert: alert}
}

// Seed returns the demo store used when no workspace file is given.
func Seed() Data {
	return Data{
		Store: model.StoreProfile{
			ID:            "1",
			Name:          "Cafe Laosia",
			BusinessType:  model.BusinessCafe,
			Seats:         20,
			OperatingDays: 26,
			OpenTime:      "10:00",
			CloseTime:     "18:00",
		},
		Menus: []model.MenuItem{
			{
				ID:       "1",
				Name:     "Blend coffee",
				Category: model.MenuDrink,
				Emoji:    "☕",
				Price:    450,
				Ingredients: []model.Ingredient{
					ingredient("Coffee beans", 15, "g", "4"),
					ingredient("Water", 200, "ml", "0.15"),
				},
				MonthlySalesVolume: 450,
			},
			{
				ID:       "2",
				Name:     "Carbonara",
				Category: model.MenuFood,
				Emoji:    "🍝",
				Price:    980,
				Ingredients: []model.Ingredient{
					ingredient("Pasta", 100, "g", "2"),
					ingredient("Eggs", 2, "pc", "30"),
					ingredient("Bacon", 50, "g", "3"),
					ingredient("Other", 1, "set", "10"),
				},
				MonthlySalesVolume: 380,
			},
		},
		Ledger: model.CashFlowLedger{
			OpeningBalance: 2_300_000,
			Events: []model.CashFlowEvent{
				inflow(2025, 1, 5, "Sales deposit", 450_000, false),
				outflow(2025, 1, 10, "Rent", 150_000, false),
				inflow(2025, 1, 15, "Sales deposit", 380_000, false),
				outflow(2025, 1, 15, "Supplier payment", 120_000, false),
				outflow(2025, 1, 20, "Payroll", 450_000, false),
				inflow(2025, 1, 25, "Sales deposit", 420_000, false),
				outflow(2025, 1, 25, "Utilities", 30_000, false),
				outflow(2025, 1, 31, "Loan repayment", 80_000, false),

				inflow(2025, 2, 5, "Sales deposit", 460_000, false),
				outflow(2025, 2, 10, "Rent", 150_000, false),
				inflow(2025, 2, 15, "Sales deposit", 390_000, false),
				outflow(2025, 2, 15, "Supplier payment", 130_000, false),
				outflow(2025, 2, 20, "Payroll", 450_000, true),
				inflow(2025, 2, 25, "Sales deposit", 350_000, false),
				outflow(2025, 2, 28, "Loan repayment", 80_000, false),

				inflow(2025, 3, 5, "Sales deposit", 480_000, false),
				outflow(2025, 3, 10, "Rent", 150_000, false),
				inflow(2025, 3, 15, "Sales deposit", 410_000, false),
				outflow(2025, 3, 20, "Payroll", 450_000, true),
				inflow(2025, 3, 25, "Sales deposit", 300_000, true),
				outflow(2025, 3, 31, "Loan repayment", 80_000, false),
			},
		},
		Dashboard: model.DashboardData{
			MonthlySales:    850_000,
			BreakEvenSales:  1_200_000,
			CashBalance:     2_300_000,
			ProjectedProfit: 120_000,
			ProfitTrend:     15,
			CostOfGoodsRate: 32,
			LaborCostRate:   28,
			SalesHistory: []model.SalesHistoryItem{
				{Month: "Oct", Sales: 780_000, BreakEven: 1_200_000},
				{Month: "Nov", Sales: 820_000, BreakEven: 1_200_000},
				{Month: "Dec", Sales: 850_000, BreakEven: 1_200_000},
			},
		},
		Analysis: Analysis{
			Costs: []model.CostItem{
				{Name: model.CategoryRent.Label(), Category: model.CategoryRent, Amount: 150_000},
				{Name: model.CategoryLabor.Label(), Category: model.CategoryLabor, Amount: 450_000},
				{Name: model.CategoryCOGS.Label(), Category: model.CategoryCOGS, Amount: 255_000},
				{Name: model.CategoryUtilities.Label(), Category: model.CategoryUtilities, Amount: 30_000},
				{Name: model.CategoryOther.Label(), Category: model.CategoryOther, Amount: 50_000},
			},
			BreakEvenSales: 1_200_000,
			ProjectedSales: 850_000,
		},
	}
}
