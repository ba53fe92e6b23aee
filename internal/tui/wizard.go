package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/model"
)

// PlanValues backs the business-plan wizard. huh binds text inputs to
// strings, so every field is kept raw and parsed on submit.
type PlanValues struct {
	BusinessType model.BusinessType

	Name          string
	Seats         string
	OperatingDays string
	OpenTime      string
	CloseTime     string

	Rent       string
	Utilities  string
	OtherFixed string

	OwnerSalary  string
	StaffCount   string
	HourlyWage   string
	MonthlyHours string

	AvgSpending     string
	CustomersPerDay string
	CostRate        string
}

// PlanValuesFrom prefills the wizard from an existing plan.
func PlanValuesFrom(in model.SimulationInput) PlanValues {
	money := func(m model.Money) string { return strconv.FormatInt(int64(m), 10) }
	return PlanValues{
		BusinessType:    in.Store.BusinessType,
		Name:            in.Store.Name,
		Seats:           strconv.Itoa(in.Store.Seats),
		OperatingDays:   strconv.Itoa(in.Store.OperatingDays),
		OpenTime:        in.Store.OpenTime,
		CloseTime:       in.Store.CloseTime,
		Rent:            money(in.Rent),
		Utilities:       money(in.Utilities),
		OtherFixed:      money(in.OtherFixed),
		OwnerSalary:     money(in.Labor.OwnerSalary),
		StaffCount:      strconv.Itoa(in.Labor.StaffCount),
		HourlyWage:      money(in.Labor.HourlyWage),
		MonthlyHours:    strconv.Itoa(in.Labor.MonthlyHoursPerStaff),
		AvgSpending:     money(in.AvgSpending),
		CustomersPerDay: strconv.Itoa(in.CustomersPerDay),
		CostRate:        strconv.FormatFloat(in.CostRatePercent, 'f', -1, 64),
	}
}

// Input parses the raw fields into a simulation input. The first bad field
// is returned as an input error.
func (v PlanValues) Input() (model.SimulationInput, error) {
	var errs []error
	money := func(field, s string) model.Money {
		m, err := cli.ParseMoney(field, s)
		errs = append(errs, err)
		return m
	}
	count := func(field, s string) int {
		n, err := cli.ParseCount(field, s)
		errs = append(errs, err)
		return n
	}

	in := model.SimulationInput{
		Store: model.StoreProfile{
			Name:          strings.TrimSpace(v.Name),
			BusinessType:  v.BusinessType,
			Seats:         count("seats", v.Seats),
			OperatingDays: count("operating days", v.OperatingDays),
			OpenTime:      strings.TrimSpace(v.OpenTime),
			CloseTime:     strings.TrimSpace(v.CloseTime),
		},
		Rent:       money("rent", v.Rent),
		Utilities:  money("utilities", v.Utilities),
		OtherFixed: money("other fixed", v.OtherFixed),
		Labor: model.LaborCostInputs{
			OwnerSalary:          money("owner salary", v.OwnerSalary),
			StaffCount:           count("staff count", v.StaffCount),
			HourlyWage:           money("hourly wage", v.HourlyWage),
			MonthlyHoursPerStaff: count("monthly hours", v.MonthlyHours),
		},
		AvgSpending:     money("average spending", v.AvgSpending),
		CustomersPerDay: count("customers per day", v.CustomersPerDay),
	}
	rate, err := cli.ParsePercent("cost rate", v.CostRate)
	errs = append(errs, err)
	in.CostRatePercent = rate

	for _, err := range errs {
		if err != nil {
			return model.SimulationInput{}, err
		}
	}
	return in, nil
}

func validateMoney(field string) func(string) error {
	return func(s string) error {
		_, err := cli.ParseMoney(field, s)
		return err
	}
}

func validateCount(field string) func(string) error {
	return func(s string) error {
		_, err := cli.ParseCount(field, s)
		return err
	}
}

func validatePercent(field string) func(string) error {
	return func(s string) error {
		_, err := cli.ParsePercent(field, s)
		return err
	}
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// NewPlanForm builds the four-step business-plan wizard bound to v.
func NewPlanForm(v *PlanValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Business plan").
				Description("Fill in the plan step by step. Amounts are monthly, in whole currency units."),
			huh.NewInput().Title("Store name").Value(&v.Name).Validate(validateRequired),
			huh.NewInput().Title("Seats").Value(&v.Seats).Validate(validateCount("seats")),
			huh.NewInput().Title("Operating days per month").Value(&v.OperatingDays).Validate(validateCount("operating days")),
			huh.NewInput().Title("Opening time").Value(&v.OpenTime),
			huh.NewInput().Title("Closing time").Value(&v.CloseTime),
		),
		huh.NewGroup(
			huh.NewInput().Title("Rent").Value(&v.Rent).Validate(validateMoney("rent")),
			huh.NewInput().Title("Utilities").Value(&v.Utilities).Validate(validateMoney("utilities")),
			huh.NewInput().Title("Other fixed costs").Value(&v.OtherFixed).Validate(validateMoney("other fixed")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Owner salary").Value(&v.OwnerSalary).Validate(validateMoney("owner salary")),
			huh.NewInput().Title("Staff count").Value(&v.StaffCount).Validate(validateCount("staff count")),
			huh.NewInput().Title("Hourly wage").Value(&v.HourlyWage).Validate(validateMoney("hourly wage")),
			huh.NewInput().Title("Monthly hours per staff").Value(&v.MonthlyHours).Validate(validateCount("monthly hours")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Average spending per customer").Value(&v.AvgSpending).Validate(validateMoney("average spending")),
			huh.NewInput().Title("Customers per day").Value(&v.CustomersPerDay).Validate(validateCount("customers per day")),
			huh.NewInput().Title("Cost of goods rate (%)").Value(&v.CostRate).Validate(validatePercent("cost rate")),
		),
	).WithTheme(huh.ThemeCharm())
}
