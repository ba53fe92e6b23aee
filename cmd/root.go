// Package cmd implements the navi CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"
	"github.com/laosia/navi/internal/session"
)

var (
	flagWorkspace string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:          "navi",
	Short:        "Restaurant and cafe financial dashboard",
	Long:         "Break-even, cost structure, menu profitability and cash flow for a small restaurant or cafe.",
	RunE:         runDashboard,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "Workspace TOML with store, menus and ledger (default: config, then demo data)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// env is what every command needs: config, the engine policy built from it
// and a session over the workspace.
type env struct {
	cfg    config.Config
	policy finance.Policy
	sess   *session.Session
}

// loadEnv is the shared loading path used by all commands.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	policy, err := config.Policy(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Display.Currency != "" {
		cli.Currency = cfg.Display.Currency
	}

	path := flagWorkspace
	if path == "" {
		path = cfg.General.Workspace
	}
	if !flagQuiet {
		if path == "" {
			fmt.Fprintf(os.Stderr, "  Using demo store (no workspace configured)\n")
		} else {
			fmt.Fprintf(os.Stderr, "  Loading workspace %s\n", path)
		}
	}

	sess, err := session.Open(path)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, policy: policy, sess: sess}, nil
}

func (e *env) places() int {
	return e.cfg.Display.PercentPlaces
}

// latestMonth is the month of the newest ledger event, or the current month
// for an empty ledger.
func latestMonth(ledger model.CashFlowLedger) (int, time.Month) {
	var latest time.Time
	for _, ev := range ledger.Events {
		if ev.Date.After(latest) {
			latest = ev.Date
		}
	}
	if latest.IsZero() {
		latest = time.Now()
	}
	return latest.Year(), latest.Month()
}
