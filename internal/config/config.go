package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Config holds all navi configuration.
type Config struct {
	General    GeneralConfig               `toml:"general"`
	Policy     PolicyConfig                `toml:"policy"`
	Industry   map[string]float64          `toml:"industry,omitempty"`
	Display    DisplayConfig               `toml:"display"`
	Appearance AppearanceConfig            `toml:"appearance"`
	Server     ServerConfig                `toml:"server"`
	Templates  map[string]TemplateOverride `toml:"templates,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Workspace    string `toml:"workspace,omitempty"`
	DefaultMonth string `toml:"default_month,omitempty"` // YYYY-MM shown by cashflow
	Template     string `toml:"template"`
}

// DisplayConfig controls number formatting.
type DisplayConfig struct {
	PercentPlaces   int    `toml:"percent_places"`
	ThousandsPlaces int    `toml:"thousands_places"`
	Currency        string `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds the JSON API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Template: "cafe",
		},
		Policy: DefaultPolicyConfig(),
		Display: DisplayConfig{
			PercentPlaces:   1,
			ThousandsPlaces: 0,
			Currency:        "¥",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "navi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "navi")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no config at %s, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("config %s: unknown key %q", path, key.String())
	}
	log.Debugf("loaded config from %s", path)

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
