package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	devConnectionString = "file:./local.db?cache=shared&mode=rwc"

	defaultCacheMB         = 8
	defaultTimeoutSeconds  = 20
	defaultDurationMinutes = 45
	defaultTimezone        = "Europe/Paris"
	defaultLogLevel        = "info"
)

type Config struct {
	DB       DBConfig       `toml:"database"`
	Provider ProviderConfig `toml:"provider"`
	Logging  LoggingConfig  `toml:"logging"`
	Session  SessionConfig  `toml:"session"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string, or a sqlite file path.
	CacheMB          int    `toml:"cache_mb"`
}

type ProviderConfig struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"` // Empty selects the offline catalog.
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level    string `toml:"level"`
	File     string `toml:"file"`
	ToStdout bool   `toml:"to_stdout"`
	JSON     bool   `toml:"json"`
}

type SessionConfig struct {
	DurationMinutes int    `toml:"duration_minutes"`
	Focus           string `toml:"focus"`
	Timezone        string `toml:"timezone"`
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "hygie")
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the TOML config at path (the default location when empty), then applies a
// .env file and environment overrides:
//
//	HYGIE_DATABASE_URL (or TURSO_DATABASE_URL), HYGIE_PROVIDER_API_KEY, HYGIE_LOG_LEVEL,
//	DEV_MODE=true forces a local sqlite file.
//
// A missing config file is not an error; the defaults and the environment are enough.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TURSO_DATABASE_URL"); v != "" {
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv("HYGIE_DATABASE_URL"); v != "" {
		cfg.DB.ConnectionString = v
	}
	if v := os.Getenv("HYGIE_PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("HYGIE_PROVIDER_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Provider.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("HYGIE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = devConnectionString
	}
}

func (c *Config) applyDefaults() {
	if c.DB.CacheMB == 0 {
		c.DB.CacheMB = defaultCacheMB
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Session.DurationMinutes == 0 {
		c.Session.DurationMinutes = defaultDurationMinutes
	}
	if c.Session.Timezone == "" {
		c.Session.Timezone = defaultTimezone
	}
}

func (c *Config) validate() error {
	if c.DB.ConnectionString == "" {
		return fmt.Errorf("database.connection_string is required (or set HYGIE_DATABASE_URL)")
	}
	if c.DB.CacheMB < 0 {
		return fmt.Errorf("database.cache_mb must not be negative")
	}
	if c.Provider.TimeoutSeconds < 0 {
		return fmt.Errorf("provider.timeout_seconds must not be negative")
	}
	if c.Session.DurationMinutes < 0 {
		return fmt.Errorf("session.duration_minutes must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("session.timezone: %w", err)
	}
	return nil
}

// Location returns the time zone session dates are shown in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ProviderTimeout is the bound put on every plan provider call.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}
