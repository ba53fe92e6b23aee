package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List business plan templates with their break-even",
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, bt := range config.TemplateNames() {
		tpl, ok := config.LookupTemplate(e.cfg, string(bt))
		if !ok {
			continue
		}
		in := tpl.Input(bt)
		breakEven := "n/a"
		if r, err := e.policy.Simulate(in); err == nil {
			breakEven = cli.FormatMoney(r.BreakEvenSales)
		}
		rows = append(rows, []string{
			string(bt),
			tpl.Emoji + " " + tpl.Label,
			cli.FormatNumber(int64(in.Store.Seats)),
			cli.FormatMoney(in.Rent),
			cli.FormatNumber(int64(in.Labor.StaffCount)),
			cli.FormatMoney(in.AvgSpending),
			cli.FormatNumber(int64(in.CustomersPerDay)),
			cli.FormatPercent(in.CostRatePercent, e.places()),
			breakEven,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Business templates",
		Headers: []string{"Key", "Template", "Seats", "Rent", "Staff", "Spending", "Customers", "Cost %", "Break-even"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  Override any field under [templates.<key>] in", config.ConfigPath())
	return nil
}
