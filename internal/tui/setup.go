package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/laosia/navi/internal/config"
	"github.com/laosia/navi/internal/tui/theme"
)

// SetupValues are the first-run preferences.
type SetupValues struct {
	Template  string
	Theme     string
	Currency  string
	Workspace string
}

// SetupValuesFrom prefills the setup form from cfg.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Template:  string(config.NormalizeTemplateName(cfg.General.Template)),
		Theme:     cfg.Appearance.Theme,
		Currency:  cfg.Display.Currency,
		Workspace: cfg.General.Workspace,
	}
}

// Apply copies the chosen preferences into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.General.Template = v.Template
	cfg.General.Workspace = strings.TrimSpace(v.Workspace)
	cfg.Appearance.Theme = v.Theme
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.Display.Currency = c
	}
}

// NewSetupForm builds the first-run wizard bound to v.
func NewSetupForm(cfg config.Config, v *SetupValues) *huh.Form {
	var templates []huh.Option[string]
	for _, bt := range config.TemplateNames() {
		tpl, _ := config.LookupTemplate(cfg, string(bt))
		templates = append(templates, huh.NewOption(tpl.Emoji+" "+tpl.Label, string(bt)))
	}

	var themes []huh.Option[string]
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to navi").
				Description("A few preferences. Everything can be changed later in "+config.ConfigPath()+"."),
			huh.NewSelect[string]().
				Title("Business type").
				Description("Starting template for business plans.").
				Options(templates...).
				Value(&v.Template),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Value(&v.Currency),
			huh.NewInput().
				Title("Workspace file").
				Description("TOML file with your store data. Leave blank for the demo cafe.").
				Value(&v.Workspace),
		),
	).WithTheme(huh.ThemeCharm())
}
