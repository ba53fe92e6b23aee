package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/report"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Break-even and cost structure against industry averages",
	RunE:  runAnalysis,
}

func init() {
	rootCmd.AddCommand(analysisCmd)
}

func runAnalysis(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	a, err := report.BuildAnalysis(e.sess, e.policy)
	if err != nil {
		return err
	}
	places := e.places()

	fmt.Println()
	fmt.Println(cli.RenderTitle("BREAK-EVEN ANALYSIS"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Break-even sales", cli.FormatMoney(a.BreakEvenSales)},
			{"Projected sales", cli.FormatMoney(a.ProjectedSales)},
			{"Achievement", cli.RenderProgressBar(a.Achievement.Rate, 20)},
			{"Shortfall", cli.FormatMoney(a.Achievement.Shortfall)},
			{"Total costs", cli.FormatMoney(a.TotalCost)},
		},
	}))
	fmt.Println()

	var top float64
	for _, s := range a.Shares {
		top = max(top, s.Percentage)
	}
	costRows := make([][]string, 0, len(a.Shares))
	for _, s := range a.Shares {
		costRows = append(costRows, []string{
			s.Name,
			cli.FormatMoney(s.Amount),
			cli.FormatPercent(s.Percentage, places),
			padBar(cli.RenderHorizontalBar(s.Percentage, top, 20, cli.RoleColor(s.Category.Role())), 20),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Cost structure",
		Headers: []string{"Cost", "Amount", "Share", ""},
		Rows:    costRows,
	}))
	fmt.Println()

	cmpRows := make([][]string, 0, len(a.Comparisons))
	for _, c := range a.Comparisons {
		cmpRows = append(cmpRows, []string{
			c.Share.Category.Label(),
			cli.FormatPercent(c.Share.Percentage, places),
			cli.FormatPercent(c.IndustryAverage, places),
			cli.FormatPointDelta(c.Diff, places),
			cli.Badge(string(c.Classification)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Against industry average",
		Headers: []string{"Category", "Yours", "Industry", "Diff", "Verdict"},
		Rows:    cmpRows,
	}))

	fmt.Println()
	if len(a.Improvements) == 0 {
		fmt.Println("  Every cost is within the industry band.")
		return nil
	}
	fmt.Println("  Improvement points")
	for _, imp := range a.Improvements {
		fmt.Printf("  • %s is %s above the industry average",
			imp.Share.Category.Label(), cli.FormatPointDelta(imp.Diff, places))
		if imp.Savings > 0 {
			fmt.Printf("; bringing it in line saves about %s a month", cli.FormatMoney(imp.Savings))
		}
		fmt.Println(".")
	}
	return nil
}

// padBar right-pads a rendered bar so right-aligned table cells stay flush left.
func padBar(bar string, width int) string {
	if w := lipgloss.Width(bar); w < width {
		return bar + fmt.Sprintf("%*s", width-w, "")
	}
	return bar
}
