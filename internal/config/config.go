package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "DEGREEPLAN"

// Config holds application configuration.
type Config struct {
	API      APIConfig           `mapstructure:"api"`
	Form     FormConfig          `mapstructure:"form"`
	Catalog  CatalogConfig       `mapstructure:"catalog"`
	Database DatabaseConfig      `mapstructure:"database"`
	Log      LogConfig           `mapstructure:"log"`
	Keys     map[string][]string `mapstructure:"keys"`
}

// APIConfig points at the planner service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FormConfig holds per-field selection caps and the suggestion blur window.
type FormConfig struct {
	MaxMajors int           `mapstructure:"max_majors"`
	MaxMinors int           `mapstructure:"max_minors"`
	BlurGrace time.Duration `mapstructure:"blur_grace"`
}

// CatalogConfig optionally replaces the remote option lists with a local YAML/JSON file.
// Submissions still go to the planner service.
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings. The TUI owns the terminal, so logs go to Path.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
	Path   string `mapstructure:"path"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "degreeplan")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://degree-planner-backend.onrender.com/api")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("form.max_majors", 2)
	v.SetDefault("form.max_minors", 2)
	v.SetDefault("form.blur_grace", "100ms")
	v.SetDefault("catalog.file", "")
	v.SetDefault("database.path", filepath.Join(dataDir(), "degreeplan.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.path", filepath.Join(dataDir(), "degreeplan.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix DEGREEPLAN_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(envPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "degreeplan"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return c, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api timeout: %s", c.API.Timeout)
	}
	if c.Form.MaxMajors < 1 {
		return fmt.Errorf("form max majors must be at least 1, got %d", c.Form.MaxMajors)
	}
	if c.Form.MaxMinors < 1 {
		return fmt.Errorf("form max minors must be at least 1, got %d", c.Form.MaxMinors)
	}
	if c.Form.BlurGrace < 0 {
		return fmt.Errorf("invalid blur grace: %s", c.Form.BlurGrace)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Log.Format)
	}
	return nil
}

// Path returns the config file location Load reads and Save writes.
func Path() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "degreeplan", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("form.max_majors", cfg.Form.MaxMajors)
	v.Set("form.max_minors", cfg.Form.MaxMinors)
	v.Set("form.blur_grace", cfg.Form.BlurGrace.String())
	v.Set("catalog.file", cfg.Catalog.File)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.path", cfg.Log.Path)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
