package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"micro_go/internal/domain"
)

// Config holds all application settings. Values loaded from YAML can be
// overridden through environment variables afterwards.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feed struct {
		WSURL  string `yaml:"ws_url"`
		Symbol string `yaml:"symbol"`
	} `yaml:"feed"`

	History struct {
		Capacity int `yaml:"capacity"`
	} `yaml:"history"`

	Metrics struct {
		VWAPWindow        int `yaml:"vwap_window"`
		TrailingWindowSec int `yaml:"trailing_window_sec"`
	} `yaml:"metrics"`

	Recorder struct {
		Enabled    bool `yaml:"enabled"`
		IntervalMS int  `yaml:"interval_ms"`
	} `yaml:"recorder"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity. A failure here is the only
// non-retryable error class: it is surfaced once at startup, before any
// ingestion worker begins.
func (c *Config) Validate() error {
	if c.Feed.WSURL == "" || (!strings.HasPrefix(c.Feed.WSURL, "ws://") && !strings.HasPrefix(c.Feed.WSURL, "wss://")) {
		return fmt.Errorf("invalid feed WS URL: %s", c.Feed.WSURL)
	}
	if c.Feed.Symbol == "" {
		return fmt.Errorf("feed symbol is required")
	}
	if c.History.Capacity <= 0 {
		return fmt.Errorf("history capacity must be positive")
	}
	if c.Metrics.VWAPWindow <= 0 {
		return fmt.Errorf("vwap window must be positive")
	}
	if c.Metrics.TrailingWindowSec <= 0 {
		return fmt.Errorf("trailing window must be positive")
	}
	if c.Recorder.Enabled && c.Recorder.IntervalMS <= 0 {
		return fmt.Errorf("recorder interval must be positive")
	}
	return nil
}

// overrideWithEnv replaces settings from environment variables when present.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("MICRO_WS_URL"); url != "" {
		cfg.Feed.WSURL = url
	}
	if sym := os.Getenv("MICRO_SYMBOL"); sym != "" {
		cfg.Feed.Symbol = sym
	}
	if capStr := os.Getenv("MICRO_HISTORY_CAP"); capStr != "" {
		if n, err := strconv.Atoi(capStr); err == nil {
			cfg.History.Capacity = n
		}
	}
	if level := os.Getenv("MICRO_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
