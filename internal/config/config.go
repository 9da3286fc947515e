// Package config loads tracker settings from defaults, an optional YAML file
// and PROBABLES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pfrederiksen/sp-probables/internal/filter"
	"github.com/pfrederiksen/sp-probables/internal/logger"
	"github.com/pfrederiksen/sp-probables/internal/scraper"
)

// EnvPrefix prefixes environment overrides, e.g. PROBABLES_URL
const EnvPrefix = "PROBABLES"

// Config holds all tracker settings
type Config struct {
	URL           string        `mapstructure:"url"`
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Attempts      uint          `mapstructure:"attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	ListenAddr    string        `mapstructure:"listen_addr"`
	LogLevel      string        `mapstructure:"log_level"`
	MaxWindowDays int           `mapstructure:"max_window_days"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		URL:           scraper.ProbablesGridURL,
		UserAgent:     scraper.UserAgent,
		Timeout:       scraper.Timeout,
		Attempts:      1,
		RetryDelay:    2 * time.Second,
		ListenAddr:    ":8080",
		LogLevel:      "info",
		MaxWindowDays: filter.DefaultMaxWindowDays,
	}
}

// Load reads settings. When cfgFile is empty, probables.yaml is looked up in
// the working directory and $HOME/.probables; a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("url", defaults.URL)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("attempts", defaults.Attempts)
	v.SetDefault("retry_delay", defaults.RetryDelay)
	v.SetDefault("listen_addr", defaults.ListenAddr)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("max_window_days", defaults.MaxWindowDays)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("probables")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.probables")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that settings are usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url: %q", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.MaxWindowDays < 0 {
		return fmt.Errorf("max_window_days cannot be negative, got %d", c.MaxWindowDays)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ScraperOptions converts the fetch settings for the scraper
func (c *Config) ScraperOptions() scraper.Options {
	return scraper.Options{
		URL:        c.URL,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout,
		Attempts:   c.Attempts,
		RetryDelay: c.RetryDelay,
	}
}
