package session

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/laosia/navi/internal/model"
)

// workspaceFile is the on-disk layout of a workspace. Sections left out of
// the file fall back to the demo store.
type workspaceFile struct {
	Store     *storeFile     `toml:"store"`
	Menus     []menuFile     `toml:"menus"`
	Ledger    *ledgerFile    `toml:"ledger"`
	Dashboard *dashboardFile `toml:"dashboard"`
	Analysis  *analysisFile  `toml:"analysis"`
}

type storeFile struct {
	Name          string `toml:"name"`
	BusinessType  string `toml:"business_type"`
	Seats         int    `toml:"seats"`
	OperatingDays int    `toml:"operating_days"`
	OpenTime      string `toml:"open_time"`
	CloseTime     string `toml:"close_time"`
}

type menuFile struct {
	ID           string           `toml:"id"`
	Name         string           `toml:"name"`
	Category     string           `toml:"category"`
	Emoji        string           `toml:"emoji"`
	Price        int64            `toml:"price"`
	MonthlySales int              `toml:"monthly_sales"`
	Ingredients  []ingredientFile `toml:"ingredients"`
}

type ingredientFile struct {
	Name      string          `toml:"name"`
	Quantity  decimal.Decimal `toml:"quantity"`
	Unit      string          `toml:"unit"`
	UnitPrice decimal.Decimal `toml:"unit_price"`
}

type ledgerFile struct {
	OpeningBalance int64       `toml:"opening_balance"`
	Events         []eventFile `toml:"events"`
}

type eventFile struct {
	Date      time.Time `toml:"date"`
	Direction string    `toml:"direction"`
	Amount    int64     `toml:"amount"`
	Name      string    `toml:"name"`
	Alert     bool      `toml:"alert"`
}

type dashboardFile struct {
	MonthlySales    int64         `toml:"monthly_sales"`
	BreakEvenSales  int64         `toml:"break_even_sales"`
	CashBalance     int64         `toml:"cash_balance"`
	ProjectedProfit int64         `toml:"projected_profit"`
	ProfitTrend     float64       `toml:"profit_trend"`
	CostOfGoodsRate float64       `toml:"cost_of_goods_rate"`
	LaborCostRate   float64       `toml:"labor_cost_rate"`
	History         []historyFile `toml:"history"`
}

type historyFile struct {
	Month     string `toml:"month"`
	Sales     int64  `toml:"sales"`
	BreakEven int64  `toml:"break_even"`
}

type analysisFile struct {
	BreakEvenSales int64            `toml:"break_even_sales"`
	ProjectedSales int64            `toml:"projected_sales"`
	Costs          map[string]int64 `toml:"costs"`
}

// LoadWorkspace reads a workspace file. An empty path returns the demo store.
func LoadWorkspace(path string) (Data, error) {
	d := Seed()
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen workspace
	if err != nil {
		return d, fmt.Errorf("reading workspace: %w", err)
	}
	var wf workspaceFile
	if _, err := toml.Decode(string(data), &wf); err != nil {
		return d, fmt.Errorf("parsing workspace %s: %w", path, err)
	}

	if wf.Store != nil {
		d.Store = model.StoreProfile{
			Name:          wf.Store.Name,
			BusinessType:  model.BusinessType(wf.Store.BusinessType),
			Seats:         wf.Store.Seats,
			OperatingDays: wf.Store.OperatingDays,
			OpenTime:      wf.Store.OpenTime,
			CloseTime:     wf.Store.CloseTime,
		}
	}
	if wf.Menus != nil {
		d.Menus = d.Menus[:0:0]
		for _, m := range wf.Menus {
			item := model.MenuItem{
				ID:                 m.ID,
				Name:               m.Name,
				Category:           model.MenuCategory(m.Category),
				Emoji:              m.Emoji,
				Price:              model.Money(m.Price),
				MonthlySalesVolume: m.MonthlySales,
			}
			for _, ing := range m.Ingredients {
				item.Ingredients = append(item.Ingredients, model.Ingredient{
					Name:      ing.Name,
					Quantity:  ing.Quantity,
					Unit:      ing.Unit,
					UnitPrice: ing.UnitPrice,
				})
			}
			d.Menus = append(d.Menus, item)
		}
	}
	if wf.Ledger != nil {
		d.Ledger = model.CashFlowLedger{OpeningBalance: model.Money(wf.Ledger.OpeningBalance)}
		for _, ev := range wf.Ledger.Events {
			d.Ledger.Events = append(d.Ledger.Events, model.CashFlowEvent{
				Date:      model.DateOf(ev.Date),
				Direction: model.Direction(ev.Direction),
				Amount:    model.Money(ev.Amount),
				Name:      ev.Name,
				Alert:     ev.Alert,
			})
		}
	}
	if wf.Dashboard != nil {
		db := wf.Dashboard
		d.Dashboard = model.DashboardData{
			MonthlySales:    model.Money(db.MonthlySales),
			BreakEvenSales:  model.Money(db.BreakEvenSales),
			CashBalance:     model.Money(db.CashBalance),
			ProjectedProfit: model.Money(db.ProjectedProfit),
			ProfitTrend:     db.ProfitTrend,
			CostOfGoodsRate: db.CostOfGoodsRate,
			LaborCostRate:   db.LaborCostRate,
		}
		for _, h := range db.History {
			d.Dashboard.SalesHistory = append(d.Dashboard.SalesHistory, model.SalesHistoryItem{
				Month:     h.Month,
				Sales:     model.Money(h.Sales),
				BreakEven: model.Money(h.BreakEven),
			})
		}
	}
	if wf.Analysis != nil {
		d.Analysis = Analysis{
			BreakEvenSales: model.Money(wf.Analysis.BreakEvenSales),
			ProjectedSales: model.Money(wf.Analysis.ProjectedSales),
		}
		for _, c := range model.Categories {
			amount, ok := wf.Analysis.Costs[string(c)]
			if !ok {
				continue
			}
			d.Analysis.Costs = append(d.Analysis.Costs, model.CostItem{Name: c.Label(), Category: c, Amount: model.Money(amount)})
		}
		for name := range wf.Analysis.Costs {
			if !model.CostCategory(name).Valid() {
				log.Warnf("workspace %s: unknown cost category %q ignored", path, name)
			}
		}
	}

	log.Debugf("loaded workspace %s", path)
	return d, nil
}

// Open loads the workspace at path and starts a session over it.
func Open(path string) (*Session, error) {
	d, err := LoadWorkspace(path)
	if err != nil {
		return nil, err
	}
	return New(d)
}
