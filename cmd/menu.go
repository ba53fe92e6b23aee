package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/report"
)

var (
	flagMenuSort     string
	flagMenuCategory string
	flagMenuSearch   string
	flagMenuPrice    string
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Menu profitability",
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List menu items with cost rate and profit",
	RunE:  runMenuList,
}

var menuShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one item's recipe costs, optionally at another price",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuShow,
}

func init() {
	menuListCmd.Flags().StringVarP(&flagMenuSort, "sort", "s", string(finance.SortProfitDesc),
		"Sort order (profit-desc, cost-rate-desc, name-asc, sales-desc)")
	menuListCmd.Flags().StringVarP(&flagMenuCategory, "category", "c", "", "Filter to category (food, drink, dessert)")
	menuListCmd.Flags().StringVar(&flagMenuSearch, "search", "", "Filter by name (substring match)")
	menuShowCmd.Flags().StringVarP(&flagMenuPrice, "price", "p", "", "Simulate the item at this price")

	menuCmd.AddCommand(menuListCmd)
	menuCmd.AddCommand(menuShowCmd)
	rootCmd.AddCommand(menuCmd)
}

func runMenuList(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	list, err := report.BuildMenuList(e.sess, e.policy, report.MenuQuery{
		Sort:     finance.SortMode(flagMenuSort),
		Category: model.MenuCategory(flagMenuCategory),
		Search:   flagMenuSearch,
	})
	if err != nil {
		return err
	}

	if len(list.Rows) == 0 {
		fmt.Println("\n  No menu items match.")
		return nil
	}
	places := e.places()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MENU  %d items", list.Summary.Count)))
	fmt.Println()

	rows := make([][]string, 0, len(list.Rows)+2)
	for _, r := range list.Rows {
		rows = append(rows, []string{
			r.Item.ID,
			r.Item.Emoji + " " + r.Item.Name,
			cli.FormatMoney(r.Item.Price),
			cli.FormatMoney(r.TotalCost),
			cli.FormatMoney(r.Profit),
			cli.FormatPercent(r.CostRate, places),
			cli.FormatMoney(r.MonthlyProfit),
			cli.Badge(string(r.Status)),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"", "Average / total", "", "", "",
		cli.FormatPercent(list.Summary.AvgCostRate, places),
		cli.FormatMoney(list.Summary.TotalMonthlyProfit),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Item", "Price", "Cost", "Profit", "Cost %", "Monthly", "Status"},
		Rows:    rows,
	}))
	return nil
}

func runMenuShow(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	var candidate model.Money
	if flagMenuPrice != "" {
		if candidate, err = cli.ParseMoney("price", flagMenuPrice); err != nil {
			return err
		}
	}
	d, err := report.BuildMenuDetail(e.sess, e.policy, args[0], candidate)
	if err != nil {
		return err
	}
	places := e.places()

	fmt.Println()
	fmt.Println(cli.RenderTitle(d.Item.Emoji + " " + d.Item.Name))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Category", cli.FormatLabel(string(d.Item.Category))},
			{"Price", cli.FormatMoney(d.Item.Price)},
			{"Ingredient cost", cli.FormatMoney(d.Profitability.TotalCost)},
			{"Profit / unit", cli.FormatMoney(d.Profitability.Profit)},
			{"Cost rate", cli.FormatPercent(d.Profitability.CostRate, places) + "  " + cli.Badge(string(d.Band))},
			{"Sold / month", cli.FormatNumber(int64(d.Item.MonthlySalesVolume))},
			{"Monthly profit", cli.FormatMoney(d.MonthlyProfit)},
			{"Status", cli.Badge(string(d.Status))},
		},
	}))
	fmt.Println()

	recipe := make([][]string, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		recipe = append(recipe, []string{
			ing.Name,
			ing.Quantity.String() + ing.Unit,
			ing.UnitPrice.String(),
			ing.Cost.StringFixed(1),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recipe",
		Headers: []string{"Ingredient", "Qty", "Unit price", "Cost"},
		Rows:    recipe,
	}))

	if d.Simulation == nil {
		return nil
	}
	sim := d.Simulation
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "At " + cli.FormatMoney(d.CandidatePrice),
		Headers: []string{"Metric", "Value", "Change"},
		Rows: [][]string{
			{"Profit / unit", cli.FormatMoney(sim.Profit), cli.FormatDelta(sim.ProfitDelta)},
			{"Cost rate", cli.FormatPercent(sim.CostRate, places) + "  " + cli.Badge(string(d.SimulatedBand)),
				cli.FormatPointDelta(sim.CostRateDelta, places)},
			{"Monthly profit", cli.FormatMoney(sim.Profit * model.Money(d.Item.MonthlySalesVolume)),
				cli.FormatDelta(sim.ProfitDelta * model.Money(d.Item.MonthlySalesVolume))},
		},
	}))
	return nil
}
