package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/tui"
	"github.com/laosia/navi/internal/tui/theme"
)

var flagTUIMonth string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&flagTUIMonth, "month", "m", "", "Cash-flow month to open on, YYYY-MM")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	firstRun := !config.Exists()
	e, err := loadEnv()
	if err != nil {
		return err
	}
	theme.SetActive(e.cfg.Appearance.Theme)

	opts := tui.Options{FirstRun: firstRun}
	raw := flagTUIMonth
	if raw == "" {
		raw = e.cfg.General.DefaultMonth
	}
	if raw != "" {
		if opts.Year, opts.Month, err = cli.ParseMonth(raw); err != nil {
			return err
		}
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(e.sess, e.policy, e.cfg, opts)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
