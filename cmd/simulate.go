package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/tui"
)

var (
	flagSimTemplate    string
	flagSimInteractive bool
	flagSimFields      = map[string]*string{}
)

// simFields maps each plan flag onto the wizard field it overrides.
var simFields = []struct {
	flag  string
	usage string
	field func(*tui.PlanValues) *string
}{
	{"name", "Store name", func(v *tui.PlanValues) *string { return &v.Name }},
	{"seats", "Seats", func(v *tui.PlanValues) *string { return &v.Seats }},
	{"days", "Operating days per month", func(v *tui.PlanValues) *string { return &v.OperatingDays }},
	{"rent", "Monthly rent", func(v *tui.PlanValues) *string { return &v.Rent }},
	{"utilities", "Monthly utilities", func(v *tui.PlanValues) *string { return &v.Utilities }},
	{"other", "Other fixed costs per month", func(v *tui.PlanValues) *string { return &v.OtherFixed }},
	{"owner-salary", "Owner salary per month", func(v *tui.PlanValues) *string { return &v.OwnerSalary }},
	{"staff", "Part-time staff count", func(v *tui.PlanValues) *string { return &v.StaffCount }},
	{"wage", "Hourly wage", func(v *tui.PlanValues) *string { return &v.HourlyWage }},
	{"hours", "Monthly hours per staff member", func(v *tui.PlanValues) *string { return &v.MonthlyHours }},
	{"spending", "Average spending per customer", func(v *tui.PlanValues) *string { return &v.AvgSpending }},
	{"customers", "Customers per day", func(v *tui.PlanValues) *string { return &v.CustomersPerDay }},
	{"cost-rate", "Cost of goods as a percent of sales", func(v *tui.PlanValues) *string { return &v.CostRate }},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Break-even simulation for a business plan",
	Long:  "Start from a business template, override any field with flags or --interactive, and evaluate the plan.",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&flagSimTemplate, "template", "t", "", "Business template (cafe, izakaya, restaurant)")
	simulateCmd.Flags().BoolVarP(&flagSimInteractive, "interactive", "i", false, "Fill in the plan with a form")
	for _, f := range simFields {
		flagSimFields[f.flag] = simulateCmd.Flags().String(f.flag, "", f.usage)
	}
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	name := flagSimTemplate
	if name == "" {
		name = e.cfg.General.Template
	}
	tpl, ok := config.LookupTemplate(e.cfg, name)
	if !ok {
		return fmt.Errorf("unknown template %q (try: navi templates)", name)
	}
	vals := tui.PlanValuesFrom(tpl.Input(config.NormalizeTemplateName(name)))
	for _, f := range simFields {
		if cmd.Flags().Changed(f.flag) {
			*f.field(&vals) = *flagSimFields[f.flag]
		}
	}

	if flagSimInteractive {
		if err := tui.NewPlanForm(&vals).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("  Cancelled.")
				return nil
			}
			return fmt.Errorf("plan form: %w", err)
		}
	}

	in, err := vals.Input()
	if err != nil {
		return err
	}
	r, err := e.policy.Simulate(in)
	if err != nil {
		return err
	}
	e.sess.SetSimulation(in)
	places := e.places()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s %s  PLAN", tpl.Emoji, in.Store.Name)))
	fmt.Println()

	rows := [][]string{
		{"Rent", cli.FormatMoney(in.Rent)},
		{"Utilities", cli.FormatMoney(in.Utilities)},
		{"Other fixed", cli.FormatMoney(in.OtherFixed)},
		{"Labor", cli.FormatMoney(r.LaborCost)},
		{"Total fixed cost", cli.FormatMoney(r.TotalFixedCost)},
		{"---"},
		{"Projected sales", cli.FormatMoney(r.ProjectedSales)},
		{"Cost of goods", cli.FormatMoney(r.COGS)},
		{"Projected profit", cli.FormatDelta(r.ProjectedProfit())},
		{"---"},
		{"Break-even sales", cli.FormatMoney(r.BreakEvenSales)},
		{"Break-even customers", fmt.Sprintf("%d /day", r.BreakEvenCustomers)},
		{"Seat turnover", fmt.Sprintf("%.1f /day", r.SeatTurnover)},
		{"Achievement", cli.RenderProgressBar(r.Achievement.Rate, 20)},
		{"Labor cost rate", cli.FormatPercent(r.LaborCostRate, places)},
		{"Risk", cli.Badge(string(r.Risk))},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	for _, a := range r.Advice {
		fmt.Printf("  • %s\n", adviceLine(a, places))
	}
	return nil
}

func adviceLine(a finance.Advice, places int) string {
	switch a.Kind {
	case finance.AdviceReduceLabor:
		return fmt.Sprintf("Labor runs at %s of sales; trimming it to target frees about %s a month.",
			cli.FormatPercent(a.LaborRate, places), cli.FormatMoney(a.Amount))
	case finance.AdviceImproveMenu:
		return fmt.Sprintf("Menu and pricing work could add about %s a month.", cli.FormatMoney(a.Amount))
	default:
		return "The plan clears break-even with healthy labor costs."
	}
}
