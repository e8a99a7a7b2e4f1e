package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Config holds all debtpath configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Scenarios  []ScenarioConfig `toml:"scenarios,omitempty"`
}

// GeneralConfig holds simulation defaults used when flags are not given.
type GeneralConfig struct {
	Strategy      string   `toml:"strategy"`
	MaxMonths     int      `toml:"max_months"`
	MonthlyBudget *decimal.Decimal `toml:"monthly_budget,omitempty"`
}

// StoreConfig selects the database holding debts and saved plans.
type StoreConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn,omitempty"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	RedisAddr   string `toml:"redis_addr,omitempty"`
	CacheTTLSec int    `toml:"cache_ttl_sec"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Strategy:  string(model.Avalanche),
			MaxMonths: 600,
		},
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8787",
			CacheTTLSec: 300,
			LogLevel:    "info",
			LogFormat:   "console",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "debtpath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "debtpath")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the local database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "debtpath")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "debtpath")
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
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetStoreDSN returns the store DSN from env var, config, or the default
// SQLite file, in that order.
func GetStoreDSN(cfg Config) string {
	if dsn := os.Getenv("DEBTPATH_DB"); dsn != "" {
		return dsn
	}
	if cfg.Store.DSN != "" {
		return cfg.Store.DSN
	}
	return filepath.Join(DataDir(), "debtpath.db")
}

// GetStrategy parses the configured default strategy.
func GetStrategy(cfg Config) (model.Strategy, error) {
	if cfg.General.Strategy == "" {
		return model.Strategy{Kind: model.Avalanche}, nil
	}
	return model.ParseStrategy(cfg.General.Strategy)
}
