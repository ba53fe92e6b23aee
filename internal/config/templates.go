package config

import (
	"sort"
	"strings"

	"github.com/laosia/navi/internal/model"
)

// Template holds the industry-average starting point for a business plan.
type Template struct {
	Label           string
	Emoji           string
	Seats           int
	OperatingDays   int
	OpenTime        string
	CloseTime       string
	Rent            model.Money
	Utilities       model.Money
	OtherFixed      model.Money
	OwnerSalary     model.Money
	StaffCount      int
	HourlyWage      model.Money
	MonthlyHours    int
	AvgSpending     model.Money
	CustomersPerDay int
	CostRatePercent float64
}

// TemplateOverride is a [templates.<type>] table. Only set keys replace the
// built-in values.
type TemplateOverride struct {
	Label           *string  `toml:"label,omitempty"`
	Seats           *int     `toml:"seats,omitempty"`
	OperatingDays   *int     `toml:"operating_days,omitempty"`
	OpenTime        *string  `toml:"open_time,omitempty"`
	CloseTime       *string  `toml:"close_time,omitempty"`
	Rent            *int64   `toml:"rent,omitempty"`
	Utilities       *int64   `toml:"utilities,omitempty"`
	OtherFixed      *int64   `toml:"other_fixed,omitempty"`
	OwnerSalary     *int64   `toml:"owner_salary,omitempty"`
	StaffCount      *int     `toml:"staff_count,omitempty"`
	HourlyWage      *int64   `toml:"hourly_wage,omitempty"`
	MonthlyHours    *int     `toml:"monthly_hours,omitempty"`
	AvgSpending     *int64   `toml:"avg_spending,omitempty"`
	CustomersPerDay *int     `toml:"customers_per_day,omitempty"`
	CostRatePercent *float64 `toml:"cost_rate,omitempty"`
}

// DefaultTemplates maps business types to their built-in templates.
var DefaultTemplates = map[model.BusinessType]Template{
	model.BusinessCafe: {
		Label: "Cafe", Emoji: "☕",
		Seats: 20, OperatingDays: 26, OpenTime: "10:00", CloseTime: "18:00",
		Rent: 150_000, Utilities: 30_000, OtherFixed: 50_000,
		OwnerSalary: 250_000, StaffCount: 2, HourlyWage: 1_100, MonthlyHours: 160,
		AvgSpending: 800, CustomersPerDay: 40, CostRatePercent: 30,
	},
	model.BusinessIzakaya: {
		Label: "Izakaya", Emoji: "🍶",
		Seats: 30, OperatingDays: 26, OpenTime: "17:00", CloseTime: "24:00",
		Rent: 200_000, Utilities: 50_000, OtherFixed: 60_000,
		OwnerSalary: 300_000, StaffCount: 3, HourlyWage: 1_200, MonthlyHours: 180,
		AvgSpending: 3_500, CustomersPerDay: 50, CostRatePercent: 35,
	},
	model.BusinessRestaurant: {
		Label: "Restaurant", Emoji: "🍽️",
		Seats: 25, OperatingDays: 26, OpenTime: "11:00", CloseTime: "22:00",
		Rent: 180_000, Utilities: 40_000, OtherFixed: 55_000,
		OwnerSalary: 280_000, StaffCount: 3, HourlyWage: 1_150, MonthlyHours: 170,
		AvgSpending: 2_000, CustomersPerDay: 45, CostRatePercent: 32,
	},
}

var templateAliases = map[string]model.BusinessType{
	"café":   model.BusinessCafe,
	"coffee": model.BusinessCafe,
	"pub":    model.BusinessIzakaya,
	"bar":    model.BusinessIzakaya,
	"diner":  model.BusinessRestaurant,
}

// NormalizeTemplateName lowercases a template name and resolves aliases.
func NormalizeTemplateName(raw string) model.BusinessType {
	name := strings.ToLower(strings.TrimSpace(raw))
	if bt, ok := templateAliases[name]; ok {
		return bt
	}
	return model.BusinessType(name)
}

// TemplateNames returns the known business types, sorted.
func TemplateNames() []model.BusinessType {
	names := make([]model.BusinessType, 0, len(DefaultTemplates))
	for bt := range DefaultTemplates {
		names = append(names, bt)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LookupTemplate returns the template for name with cfg's overrides applied.
// Returns false if the business type is unknown.
func LookupTemplate(cfg Config, name string) (Template, bool) {
	bt := NormalizeTemplateName(name)
	t, ok := DefaultTemplates[bt]
	if !ok {
		return Template{}, false
	}
	if o, ok := cfg.Templates[string(bt)]; ok {
		t = applyOverride(t, o)
	}
	return t, true
}

func applyOverride(t Template, o TemplateOverride) Template {
	setString(&t.Label, o.Label)
	setString(&t.OpenTime, o.OpenTime)
	setString(&t.CloseTime, o.CloseTime)
	setInt(&t.Seats, o.Seats)
	setInt(&t.OperatingDays, o.OperatingDays)
	setInt(&t.StaffCount, o.StaffCount)
	setInt(&t.MonthlyHours, o.MonthlyHours)
	setInt(&t.CustomersPerDay, o.CustomersPerDay)
	setMoney(&t.Rent, o.Rent)
	setMoney(&t.Utilities, o.Utilities)
	setMoney(&t.OtherFixed, o.OtherFixed)
	setMoney(&t.OwnerSalary, o.OwnerSalary)
	setMoney(&t.HourlyWage, o.HourlyWage)
	setMoney(&t.AvgSpending, o.AvgSpending)
	if o.CostRatePercent != nil {
		t.CostRatePercent = *o.CostRatePercent
	}
	return t
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setMoney(dst *model.Money, v *int64) {
	if v != nil {
		*dst = model.Money(*v)
	}
}

// Input turns the template into a simulation input for business type bt.
func (t Template) Input(bt model.BusinessType) model.SimulationInput {
	return model.SimulationInput{
		Store: model.StoreProfile{
			Name:          t.Label,
			BusinessType:  bt,
			Seats:         t.Seats,
			OperatingDays: t.OperatingDays,
			OpenTime:      t.OpenTime,
			CloseTime:     t.CloseTime,
		},
		Rent:       t.Rent,
		Utilities:  t.Utilities,
		OtherFixed: t.OtherFixed,
		Labor: model.LaborCostInputs{
			OwnerSalary:          t.OwnerSalary,
			StaffCount:           t.StaffCount,
			HourlyWage:           t.HourlyWage,
			MonthlyHoursPerStaff: t.MonthlyHours,
		},
		AvgSpending:     t.AvgSpending,
		CustomersPerDay: t.CustomersPerDay,
		CostRatePercent: t.CostRatePercent,
	}
}
