package model

// CostCategory identifies a cost line independent of how it is drawn.
type CostCategory string

const (
	CategoryRent      CostCategory = "rent"
	CategoryLabor     CostCategory = "labor"
	CategoryCOGS      CostCategory = "cogs"
	CategoryUtilities CostCategory = "utilities"
	CategoryOther     CostCategory = "other"
)

// Role is a display role that presentation layers map onto their own palette.
type Role int

const (
	RoleBlue Role = iota
	RoleOrange
	RoleGreen
	RolePurple
	RoleGray
)

// Categories lists every cost category in display order.
var Categories = []CostCategory{
	CategoryRent, CategoryLabor, CategoryCOGS, CategoryUtilities, CategoryOther,
}

var categoryLabels = map[CostCategory]string{
	CategoryRent:      "Rent",
	CategoryLabor:     "Labor",
	CategoryCOGS:      "Cost of goods",
	CategoryUtilities: "Utilities",
	CategoryOther:     "Other",
}

var categoryRoles = map[CostCategory]Role{
	CategoryRent:      RoleBlue,
	CategoryLabor:     RoleOrange,
	CategoryCOGS:      RoleGreen,
	CategoryUtilities: RolePurple,
	CategoryOther:     RoleGray,
}

// Label returns the human-readable name of the category.
func (c CostCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Role returns the display role for the category; unknown categories are gray.
func (c CostCategory) Role() Role {
	if r, ok := categoryRoles[c]; ok {
		return r
	}
	return RoleGray
}

// Valid reports whether c is one of the known categories.
func (c CostCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// CostItem is one named cost line. Amount must be non-negative.
type CostItem struct {
	Name     string
	Category CostCategory
	Amount   Money
}

// CostShare is a CostItem with its derived share of the total.
type CostShare struct {
	CostItem
	Percentage float64
}

// FixedCostSet holds the monthly costs incurred regardless of sales.
type FixedCostSet struct {
	Rent       Money
	Utilities  Money
	OtherFixed Money
	LaborCost  Money
}

// SalesProjection drives projected monthly sales.
type SalesProjection struct {
	AvgSpending     Money
	CustomersPerDay int
	OperatingDays   int
}

// LaborCostInputs drives the monthly labor cost.
type LaborCostInputs struct {
	OwnerSalary          Money
	StaffCount           int
	HourlyWage           Money
	MonthlyHoursPerStaff int
}
