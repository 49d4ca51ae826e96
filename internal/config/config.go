// Package config loads and saves the nutlog TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nutlog/internal/model"
)

// Config holds all nutlog configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Targets    TargetsConfig    `toml:"targets"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds file locations.
type GeneralConfig struct {
	// TableFile is the nutritional reference CSV. Empty means
	// <data dir>/foods.csv.
	TableFile string `toml:"table_file,omitempty"`
	// LedgerFile is the consumption ledger CSV. Empty means
	// <data dir>/consumption.csv.
	LedgerFile string `toml:"ledger_file,omitempty"`
}

// TargetsConfig optionally overrides the built-in daily targets.
type TargetsConfig struct {
	Calories *float64 `toml:"calories_kcal,omitempty"`
	Carbs    *float64 `toml:"carbs_g,omitempty"`
	Sugar    *float64 `toml:"sugar_g,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nutlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nutlog")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory where the reference
// table and ledger live by default.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "nutlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "nutlog")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

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
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// TablePath resolves the reference table location: config value, or the
// default under the data dir.
func TablePath(cfg Config) string {
	if cfg.General.TableFile != "" {
		return cfg.General.TableFile
	}
	return filepath.Join(DataDir(), "foods.csv")
}

// LedgerPath resolves the ledger location the same way.
func LedgerPath(cfg Config) string {
	if cfg.General.LedgerFile != "" {
		return cfg.General.LedgerFile
	}
	return filepath.Join(DataDir(), "consumption.csv")
}

// ResolveTargets applies any configured overrides on top of the built-in
// daily targets.
func ResolveTargets(cfg Config) model.DailyTargets {
	targets := model.DefaultTargets
	if cfg.Targets.Calories != nil {
		targets.Calories = *cfg.Targets.Calories
	}
	if cfg.Targets.Carbs != nil {
		targets.Carbs = *cfg.Targets.Carbs
	}
	if cfg.Targets.Sugar != nil {
		targets.Sugar = *cfg.Targets.Sugar
	}
	return targets
}
