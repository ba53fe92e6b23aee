package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/laosia/navi/internal/cli"
	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	policy, err := config.Policy(cfg)
	if err != nil {
		return err
	}
	if cfg.Display.Currency != "" {
		cli.Currency = cfg.Display.Currency
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.Workspace != "" {
		fmt.Printf("    Workspace:     %s\n", cfg.General.Workspace)
	} else {
		fmt.Println("    Workspace:     demo store")
	}
	fmt.Printf("    Template:      %s\n", cfg.General.Template)
	if cfg.General.DefaultMonth != "" {
		fmt.Printf("    Default month: %s\n", cfg.General.DefaultMonth)
	}
	fmt.Println()

	fmt.Println("  [Policy]")
	fmt.Printf("    Cash danger below:  %s\n", cli.FormatMoney(policy.Cash.Danger))
	fmt.Printf("    Cash warning below: %s\n", cli.FormatMoney(policy.Cash.Warning))
	fmt.Printf("    High labor rate:    %s\n", cli.FormatPercent(policy.Risk.HighLaborRate, policy.PercentPlaces))
	fmt.Printf("    Medium labor rate:  %s\n", cli.FormatPercent(policy.Risk.MediumLaborRate, policy.PercentPlaces))
	fmt.Println()

	fmt.Println("  [Industry]")
	cats := make([]model.CostCategory, 0, len(policy.IndustryAverages))
	for c := range policy.IndustryAverages {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	for _, c := range cats {
		fmt.Printf("    %-10s %s\n", c.Label(), cli.FormatPercent(policy.IndustryAverages[c], policy.PercentPlaces))
	}
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency:         %s\n", cfg.Display.Currency)
	fmt.Printf("    Percent places:   %d\n", cfg.Display.PercentPlaces)
	fmt.Printf("    Thousands places: %d\n", cfg.Display.ThousandsPlaces)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  Run `navi setup` to reconfigure.")
	return nil
}
