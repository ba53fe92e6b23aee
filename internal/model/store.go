package model

// BusinessType is the kind of venue a template or store describes.
type BusinessType string

const (
	BusinessCafe       BusinessType = "cafe"
	BusinessIzakaya    BusinessType = "izakaya"
	BusinessRestaurant BusinessType = "restaurant"
)

// StoreProfile describes the venue itself.
type StoreProfile struct {
	ID            string
	Name          string
	BusinessType  BusinessType
	Seats         int
	OperatingDays int
	OpenTime      string
	CloseTime     string
}

// SimulationInput is the validated business-plan input collected by the wizard.
// CostRatePercent is in [0, 100).
type SimulationInput struct {
	Store           StoreProfile
	Rent            Money
	Utilities       Money
	OtherFixed      Money
	Labor           LaborCostInputs
	AvgSpending     Money
	CustomersPerDay int
	CostRatePercent float64
}

// SalesHistoryItem is one month of the dashboard sales chart.
type SalesHistoryItem struct {
	Month     string
	Sales     Money
	BreakEven Money
}

// DashboardData is the current-month snapshot shown on the dashboard.
type DashboardData struct {
	MonthlySales    Money
	BreakEvenSales  Money
	CashBalance     Money
	ProjectedProfit Money
	ProfitTrend     float64
	CostOfGoodsRate float64
	LaborCostRate   float64
	SalesHistory    []SalesHistoryItem
}
