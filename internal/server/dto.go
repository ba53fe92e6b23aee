package server

import (
	"time"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/report"
)

type AchievementDTO struct {
	Rate      float64     `json:"rate"`
	Achieved  bool        `json:"achieved"`
	Shortfall model.Money `json:"shortfall"`
}

func achievementToDTO(a finance.Achievement) AchievementDTO {
	return AchievementDTO{Rate: a.Rate, Achieved: a.Achieved, Shortfall: a.Shortfall}
}

type HistoryDTO struct {
	Month     string      `json:"month"`
	Sales     model.Money `json:"sales"`
	BreakEven model.Money `json:"breakEven"`
	Rate      float64     `json:"rate"`
}

type DashboardDTO struct {
	Store           string         `json:"store"`
	MonthlySales    model.Money    `json:"monthlySales"`
	BreakEvenSales  model.Money    `json:"breakEvenSales"`
	CashBalance     model.Money    `json:"cashBalance"`
	CashStatus      string         `json:"cashStatus"`
	ProjectedProfit model.Money    `json:"projectedProfit"`
	ProfitTrend     float64        `json:"profitTrend"`
	CostOfGoodsRate float64        `json:"costOfGoodsRate"`
	LaborCostRate   float64        `json:"laborCostRate"`
	Achievement     AchievementDTO `json:"achievement"`
	History         []HistoryDTO   `json:"history"`
}

func dashboardToDTO(d report.Dashboard) DashboardDTO {
	out := DashboardDTO{
		Store:           d.Store.Name,
		MonthlySales:    d.Data.MonthlySales,
		BreakEvenSales:  d.Data.BreakEvenSales,
		CashBalance:     d.Data.CashBalance,
		CashStatus:      string(d.CashStatus),
		ProjectedProfit: d.Data.ProjectedProfit,
		ProfitTrend:     d.Data.ProfitTrend,
		CostOfGoodsRate: d.Data.CostOfGoodsRate,
		LaborCostRate:   d.Data.LaborCostRate,
		Achievement:     achievementToDTO(d.Achievement),
		History:         make([]HistoryDTO, 0, len(d.History)),
	}
	for _, h := range d.History {
		out.History = append(out.History, HistoryDTO{Month: h.Month, Sales: h.Sales, BreakEven: h.BreakEven, Rate: h.Rate})
	}
	return out
}

type ShareDTO struct {
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Amount     model.Money `json:"amount"`
	Percentage float64     `json:"percentage"`
}

func sharesToDTO(shares []model.CostShare) []ShareDTO {
	out := make([]ShareDTO, 0, len(shares))
	for _, s := range shares {
		out = append(out, ShareDTO{Name: s.Name, Category: string(s.Category), Amount: s.Amount, Percentage: s.Percentage})
	}
	return out
}

type ComparisonDTO struct {
	Category        string      `json:"category"`
	Percentage      float64     `json:"percentage"`
	IndustryAverage float64     `json:"industryAverage"`
	Diff            float64     `json:"diff"`
	Classification  string      `json:"classification"`
	Savings         model.Money `json:"savings,omitempty"`
}

type AnalysisDTO struct {
	BreakEvenSales model.Money     `json:"breakEvenSales"`
	ProjectedSales model.Money     `json:"projectedSales"`
	TotalCost      model.Money     `json:"totalCost"`
	Achievement    AchievementDTO  `json:"achievement"`
	Shares         []ShareDTO      `json:"shares"`
	Comparisons    []ComparisonDTO `json:"comparisons"`
	Improvements   []ComparisonDTO `json:"improvements"`
}

func comparisonToDTO(c finance.CategoryComparison) ComparisonDTO {
	return ComparisonDTO{
		Category:        string(c.Share.Category),
		Percentage:      c.Share.Percentage,
		IndustryAverage: c.IndustryAverage,
		Diff:            c.Diff,
		Classification:  string(c.Classification),
	}
}

func analysisToDTO(a report.Analysis) AnalysisDTO {
	out := AnalysisDTO{
		BreakEvenSales: a.BreakEvenSales,
		ProjectedSales: a.ProjectedSales,
		TotalCost:      a.TotalCost,
		Achievement:    achievementToDTO(a.Achievement),
		Shares:         sharesToDTO(a.Shares),
		Comparisons:    make([]ComparisonDTO, 0, len(a.Comparisons)),
		Improvements:   make([]ComparisonDTO, 0, len(a.Improvements)),
	}
	for _, c := range a.Comparisons {
		out.Comparisons = append(out.Comparisons, comparisonToDTO(c))
	}
	for _, imp := range a.Improvements {
		dto := comparisonToDTO(imp.CategoryComparison)
		dto.Savings = imp.Savings
		out.Improvements = append(out.Improvements, dto)
	}
	return out
}

type MenuRowDTO struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	Emoji         string      `json:"emoji,omitempty"`
	Price         model.Money `json:"price"`
	TotalCost     model.Money `json:"totalCost"`
	Profit        model.Money `json:"profit"`
	CostRate      float64     `json:"costRate"`
	MonthlyProfit model.Money `json:"monthlyProfit"`
	Status        string      `json:"status"`
}

type MenuListDTO struct {
	Count              int          `json:"count"`
	AvgCostRate        float64      `json:"avgCostRate"`
	TotalMonthlyProfit model.Money  `json:"totalMonthlyProfit"`
	Items              []MenuRowDTO `json:"items"`
}

func menuListToDTO(l report.MenuList) MenuListDTO {
	out := MenuListDTO{
		Count:              l.Summary.Count,
		AvgCostRate:        l.Summary.AvgCostRate,
		TotalMonthlyProfit: l.Summary.TotalMonthlyProfit,
		Items:              make([]MenuRowDTO, 0, len(l.Rows)),
	}
	for _, r := range l.Rows {
		out.Items = append(out.Items, MenuRowDTO{
			ID:            r.Item.ID,
			Name:          r.Item.Name,
			Category:      string(r.Item.Category),
			Emoji:         r.Item.Emoji,
			Price:         r.Item.Price,
			TotalCost:     r.TotalCost,
			Profit:        r.Profit,
			CostRate:      r.CostRate,
			MonthlyProfit: r.MonthlyProfit,
			Status:        string(r.Status),
		})
	}
	return out
}

// IngredientDTO carries decimals as strings so no precision is lost.
type IngredientDTO struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Unit      string `json:"unit"`
	UnitPrice string `json:"unitPrice"`
	Cost      string `json:"cost"`
}

type PriceSimulationDTO struct {
	Price         model.Money `json:"price"`
	Profit        model.Money `json:"profit"`
	CostRate      float64     `json:"costRate"`
	ProfitDelta   model.Money `json:"profitDelta"`
	CostRateDelta float64     `json:"costRateDelta"`
	Band          string      `json:"band"`
}

type MenuDetailDTO struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Category           string              `json:"category"`
	Price              model.Money         `json:"price"`
	TotalCost          model.Money         `json:"totalCost"`
	Profit             model.Money         `json:"profit"`
	CostRate           float64             `json:"costRate"`
	Band               string              `json:"band"`
	Status             string              `json:"status"`
	MonthlySalesVolume int                 `json:"monthlySalesVolume"`
	MonthlyProfit      model.Money         `json:"monthlyProfit"`
	Ingredients        []IngredientDTO     `json:"ingredients"`
	Simulation         *PriceSimulationDTO `json:"simulation,omitempty"`
}

func menuDetailToDTO(d report.MenuDetail) MenuDetailDTO {
	out := MenuDetailDTO{
		ID:                 d.Item.ID,
		Name:               d.Item.Name,
		Category:           string(d.Item.Category),
		Price:              d.Item.Price,
		TotalCost:          d.Profitability.TotalCost,
		Profit:             d.Profitability.Profit,
		CostRate:           d.Profitability.CostRate,
		Band:               string(d.Band),
		Status:             string(d.Status),
		MonthlySalesVolume: d.Item.MonthlySalesVolume,
		MonthlyProfit:      d.MonthlyProfit,
		Ingredients:        make([]IngredientDTO, 0, len(d.Ingredients)),
	}
	for _, ing := range d.Ingredients {
		out.Ingredients = append(out.Ingredients, IngredientDTO{
			Name:      ing.Name,
			Quantity:  ing.Quantity.String(),
			Unit:      ing.Unit,
			UnitPrice: ing.UnitPrice.String(),
			Cost:      ing.Cost.String(),
		})
	}
	if d.Simulation != nil {
		out.Simulation = &PriceSimulationDTO{
			Price:         d.CandidatePrice,
			Profit:        d.Simulation.Profit,
			CostRate:      d.Simulation.CostRate,
			ProfitDelta:   d.Simulation.ProfitDelta,
			CostRateDelta: d.Simulation.CostRateDelta,
			Band:          string(d.SimulatedBand),
		}
	}
	return out
}

type CashEventDTO struct {
	Date      string      `json:"date"`
	Direction string      `json:"direction"`
	Amount    model.Money `json:"amount"`
	Name      string      `json:"name"`
	Alert     bool        `json:"alert,omitempty"`
}

type CashDayDTO struct {
	Date    string         `json:"date"`
	Balance model.Money    `json:"balance"`
	Status  string         `json:"status"`
	Events  []CashEventDTO `json:"events,omitempty"`
}

type CashflowDTO struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Opening   model.Money    `json:"opening"`
	Inflow    model.Money    `json:"inflow"`
	Outflow   model.Money    `json:"outflow"`
	Closing   model.Money    `json:"closing"`
	Status    string         `json:"status"`
	LowestDay string         `json:"lowestDay,omitempty"`
	Lowest    model.Money    `json:"lowest"`
	Alerts    []CashEventDTO `json:"alerts"`
	Days      []CashDayDTO   `json:"days"`
}

const dateLayout = time.DateOnly

func cashEventsToDTO(events []model.CashFlowEvent) []CashEventDTO {
	out := make([]CashEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, CashEventDTO{
			Date:      ev.Date.Format(dateLayout),
			Direction: string(ev.Direction),
			Amount:    ev.Amount,
			Name:      ev.Name,
			Alert:     ev.Alert,
		})
	}
	return out
}

func cashflowToDTO(c report.Cashflow) CashflowDTO {
	s := c.Summary
	out := CashflowDTO{
		Year:    s.Year,
		Month:   int(s.Month),
		Opening: s.Opening,
		Inflow:  s.Inflow,
		Outflow: s.Outflow,
		Closing: s.Closing,
		Status:  string(s.Status),
		Lowest:  s.Lowest,
		Alerts:  cashEventsToDTO(s.Alerts),
		Days:    make([]CashDayDTO, 0, len(c.Days)),
	}
	if !s.LowestDay.IsZero() {
		out.LowestDay = s.LowestDay.Format(dateLayout)
	}
	for _, d := range c.Days {
		day := CashDayDTO{Date: d.Date.Format(dateLayout), Balance: d.Balance, Status: string(d.Status)}
		if len(d.Events) > 0 {
			day.Events = cashEventsToDTO(d.Events)
		}
		out.Days = append(out.Days, day)
	}
	return out
}

// SimulationInputDTO is the POST /v1/simulations body.
type SimulationInputDTO struct {
	Name                 string      `json:"name"`
	BusinessType         string      `json:"businessType"`
	Seats                int         `json:"seats"`
	OperatingDays        int         `json:"operatingDays"`
	OpenTime             string      `json:"openTime,omitempty"`
	CloseTime            string      `json:"closeTime,omitempty"`
	Rent                 model.Money `json:"rent"`
	Utilities            model.Money `json:"utilities"`
	OtherFixed           model.Money `json:"otherFixed"`
	OwnerSalary          model.Money `json:"ownerSalary"`
	StaffCount           int         `json:"staffCount"`
	HourlyWage           model.Money `json:"hourlyWage"`
	MonthlyHoursPerStaff int         `json:"monthlyHoursPerStaff"`
	AvgSpending          model.Money `json:"avgSpending"`
	CustomersPerDay      int         `json:"customersPerDay"`
	CostRatePercent      float64     `json:"costRatePercent"`
}

func simulationInputFromDTO(d SimulationInputDTO) model.SimulationInput {
	return model.SimulationInput{
		Store: model.StoreProfile{
			Name:          d.Name,
			BusinessType:  model.BusinessType(d.BusinessType),
			Seats:         d.Seats,
			OperatingDays: d.OperatingDays,
			OpenTime:      d.OpenTime,
			CloseTime:     d.CloseTime,
		},
		Rent:       d.Rent,
		Utilities:  d.Utilities,
		OtherFixed: d.OtherFixed,
		Labor: model.LaborCostInputs{
			OwnerSalary:          d.OwnerSalary,
			StaffCount:           d.StaffCount,
			HourlyWage:           d.HourlyWage,
			MonthlyHoursPerStaff: d.MonthlyHoursPerStaff,
		},
		AvgSpending:     d.AvgSpending,
		CustomersPerDay: d.CustomersPerDay,
		CostRatePercent: d.CostRatePercent,
	}
}

func simulationInputToDTO(in model.SimulationInput) SimulationInputDTO {
	return SimulationInputDTO{
		Name:                 in.Store.Name,
		BusinessType:         string(in.Store.BusinessType),
		Seats:                in.Store.Seats,
		OperatingDays:        in.Store.OperatingDays,
		OpenTime:             in.Store.OpenTime,
		CloseTime:            in.Store.CloseTime,
		Rent:                 in.Rent,
		Utilities:            in.Utilities,
		OtherFixed:           in.OtherFixed,
		OwnerSalary:          in.Labor.OwnerSalary,
		StaffCount:           in.Labor.StaffCount,
		HourlyWage:           in.Labor.HourlyWage,
		MonthlyHoursPerStaff: in.Labor.MonthlyHoursPerStaff,
		AvgSpending:          in.AvgSpending,
		CustomersPerDay:      in.CustomersPerDay,
		CostRatePercent:      in.CostRatePercent,
	}
}

type AdviceDTO struct {
	Kind      string      `json:"kind"`
	LaborRate float64     `json:"laborRate,omitempty"`
	Amount    model.Money `json:"amount,omitempty"`
}

type SimulationDTO struct {
	Input              SimulationInputDTO `json:"input"`
	FixedCost          model.Money        `json:"fixedCost"`
	LaborCost          model.Money        `json:"laborCost"`
	TotalFixedCost     model.Money        `json:"totalFixedCost"`
	ProjectedSales     model.Money        `json:"projectedSales"`
	COGS               model.Money        `json:"cogs"`
	ProjectedProfit    model.Money        `json:"projectedProfit"`
	BreakEvenSales     model.Money        `json:"breakEvenSales"`
	BreakEvenCustomers int                `json:"breakEvenCustomers"`
	SeatTurnover       float64            `json:"seatTurnover"`
	Achievement        AchievementDTO     `json:"achievement"`
	Breakdown          []ShareDTO         `json:"breakdown"`
	LaborCostRate      float64            `json:"laborCostRate"`
	Risk               string             `json:"risk"`
	Advice             []AdviceDTO        `json:"advice"`
}

func simulationToDTO(r finance.SimulationResult) SimulationDTO {
	out := SimulationDTO{
		Input:              simulationInputToDTO(r.Input),
		FixedCost:          r.FixedCost,
		LaborCost:          r.LaborCost,
		TotalFixedCost:     r.TotalFixedCost,
		ProjectedSales:     r.ProjectedSales,
		COGS:               r.COGS,
		ProjectedProfit:    r.ProjectedProfit(),
		BreakEvenSales:     r.BreakEvenSales,
		BreakEvenCustomers: r.BreakEvenCustomers,
		SeatTurnover:       r.SeatTurnover,
		Achievement:        achievementToDTO(r.Achievement),
		Breakdown:          sharesToDTO(r.Breakdown),
		LaborCostRate:      r.LaborCostRate,
		Risk:               string(r.Risk),
		Advice:             make([]AdviceDTO, 0, len(r.Advice)),
	}
	for _, a := range r.Advice {
		out.Advice = append(out.Advice, AdviceDTO{Kind: string(a.Kind), LaborRate: a.LaborRate, Amount: a.Amount})
	}
	return out
}

type TemplateDTO struct {
	Key   string             `json:"key"`
	Label string             `json:"label"`
	Emoji string             `json:"emoji,omitempty"`
	Input SimulationInputDTO `json:"input"`
}
