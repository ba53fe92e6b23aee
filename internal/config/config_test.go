package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laosia/navi/internal/finance"
	"github.com/laosia/navi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_Overrides(t *testing.T) {
	path := writeConfig(t, `
[general]
workspace = "shop.toml"
template = "izakaya"

[policy]
danger_balance = 300000
warning_balance = 800000

[industry]
labor = 32.5

[display]
percent_places = 2

[templates.cafe]
rent = 99000
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shop.toml", cfg.General.Workspace)
	assert.Equal(t, int64(300_000), cfg.Policy.DangerBalance)
	assert.Equal(t, 35.0, cfg.Policy.HighLaborRate, "keys absent from the file keep defaults")
	assert.Equal(t, "¥", cfg.Display.Currency)

	p, err := Policy(cfg)
	require.NoError(t, err)
	assert.Equal(t, model.Money(300_000), p.Cash.Danger)
	assert.Equal(t, 2, p.PercentPlaces)
	labor, _ := p.IndustryAverage(model.CategoryLabor)
	assert.Equal(t, 32.5, labor)
	rent, _ := p.IndustryAverage(model.CategoryRent)
	assert.Equal(t, 40.0, rent)

	tpl, ok := LookupTemplate(cfg, "cafe")
	require.True(t, ok)
	assert.Equal(t, model.Money(99_000), tpl.Rent)
}

func TestLoadFile_BadTOML(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "[policy\n"))
	assert.Error(t, err)
}

func TestPolicy_DefaultsMatchEngine(t *testing.T) {
	p, err := Policy(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, finance.DefaultPolicy(), p)
}

func TestPolicy_RejectsInconsistentThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.DangerBalance = 2_000_000
	_, err := Policy(cfg)
	assert.ErrorIs(t, err, finance.ErrInvalidInput)

	cfg = DefaultConfig()
	cfg.Industry = map[string]float64{"marketing": 3}
	_, err = Policy(cfg)
	assert.ErrorIs(t, err, finance.ErrInvalidInput)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.False(t, Exists())

	cfg := DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:9999"
	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", got.Server.Addr)
	assert.Equal(t, cfg.Policy, got.Policy)
}
