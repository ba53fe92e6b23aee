package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/report"
)

var (
	flagCashMonth string
	flagCashAsOf  string
)

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Cash-flow calendar with daily balances",
	RunE:  runCashflow,
}

func init() {
	cashflowCmd.Flags().StringVarP(&flagCashMonth, "month", "m", "", "Month to show, YYYY-MM (default: config, then latest ledger month)")
	cashflowCmd.Flags().StringVar(&flagCashAsOf, "as-of", "", "Also print the balance at the end of this day, YYYY-MM-DD")
	rootCmd.AddCommand(cashflowCmd)
}

func runCashflow(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	ledger := e.sess.Ledger()
	year, month := latestMonth(ledger)
	raw := flagCashMonth
	if raw == "" {
		raw = e.cfg.General.DefaultMonth
	}
	if raw != "" {
		if year, month, err = cli.ParseMonth(raw); err != nil {
			return err
		}
	}

	cf := report.BuildCashflow(e.sess, e.policy, year, month)
	s := cf.Summary

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW  %s %d", s.Month, s.Year)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Opening", cli.FormatMoney(s.Opening)},
			{"Inflow", cli.FormatMoney(s.Inflow)},
			{"Outflow", cli.FormatMoney(s.Outflow)},
			{"Net", cli.FormatDelta(s.Net())},
			{"Closing", cli.FormatMoney(s.Closing) + "  " + cli.Badge(string(s.Status))},
			{"Lowest", fmt.Sprintf("%s on %s", cli.FormatMoney(s.Lowest), s.LowestDay.Format("Jan 2"))},
		},
	}))
	fmt.Println()

	for _, ev := range s.Alerts {
		fmt.Printf("  ! %s  %s %s\n", ev.Date.Format("Jan 2"), ev.Name, cli.FormatMoney(ev.Amount))
	}
	if len(s.Alerts) > 0 {
		fmt.Println()
	}

	fmt.Print(cli.RenderCalendar(cf, e.cfg.Display.ThousandsPlaces))

	var rows [][]string
	for _, d := range cf.EventDays() {
		for _, ev := range d.Events {
			rows = append(rows, []string{ev.Date.Format("Jan 2"), ev.Name, cli.FormatDelta(ev.Signed())})
		}
	}
	if len(rows) > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Events",
			Headers: []string{"Date", "Event", "Amount"},
			Rows:    rows,
		}))
	}

	if flagCashAsOf != "" {
		asOf, err := cli.ParseDate(flagCashAsOf)
		if err != nil {
			return err
		}
		bal, err := finance.RunningBalance(ledger, asOf)
		if err != nil {
			return err
		}
		fmt.Printf("\n  Balance at end of %s: %s  %s\n",
			asOf.Format("2006-01-02"), cli.FormatMoney(bal), cli.Badge(string(e.policy.BalanceStatus(bal))))
	}
	return nil
}
