package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/report"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "This month's sales, break-even and cash position",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	d, err := report.BuildDashboard(e.sess, e.policy)
	if err != nil {
		return err
	}
	places := e.places()
	data := d.Data

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(d.Store.Name) + "  DASHBOARD"))
	fmt.Println()

	shortfall := "reached"
	if !d.Achievement.Achieved {
		shortfall = cli.FormatMoney(d.Achievement.Shortfall) + " to go"
	}
	rows := [][]string{
		{"Sales this month", cli.FormatMoney(data.MonthlySales)},
		{"Break-even sales", cli.FormatMoney(data.BreakEvenSales)},
		{"Achievement", cli.RenderProgressBar(d.Achievement.Rate, 20)},
		{"Break-even", shortfall},
		{"---"},
		{"Cash balance", cli.FormatMoney(data.CashBalance) + "  " + cli.Badge(string(d.CashStatus))},
		{"Projected profit", cli.FormatMoney(data.ProjectedProfit)},
		{"Profit trend", cli.FormatPointDelta(data.ProfitTrend, places) + " vs last month"},
		{"---"},
		{"Cost of goods rate", cli.FormatPercent(data.CostOfGoodsRate, places)},
		{"Labor cost rate", cli.FormatPercent(data.LaborCostRate, places)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(d.History) == 0 {
		return nil
	}

	sales := make([]float64, 0, len(d.History))
	history := make([][]string, 0, len(d.History))
	for _, h := range d.History {
		sales = append(sales, float64(h.Sales))
		history = append(history, []string{
			h.Month,
			cli.FormatMoney(h.Sales),
			cli.FormatMoney(h.BreakEven),
			cli.FormatPercent(h.Rate, places),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Sales history  " + cli.RenderSparkline(sales),
		Headers: []string{"Month", "Sales", "Break-even", "Rate"},
		Rows:    history,
	}))
	return nil
}
