// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the sattva client.
//
// Configuration sources, in order of precedence:
//   - SATTVA_* environment variables
//   - ~/.sattva/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	// Backend configuration
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// BackendConfig points the client at the wellness backend.
type BackendConfig struct {
	// BaseURL is the backend API base URL
	BaseURL string `toml:"base_url"`
	// AskTimeoutSecs bounds the question round trip
	AskTimeoutSecs int `toml:"ask_timeout_secs"`
	// FeedbackTimeoutSecs bounds feedback submission
	FeedbackTimeoutSecs int `toml:"feedback_timeout_secs"`
	// StatusTimeoutSecs bounds the status probe
	StatusTimeoutSecs int `toml:"status_timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ShowResponseTime toggles the per-answer timing line
	ShowResponseTime bool `toml:"show_response_time"`
	// ShowSources toggles the citation block under answers
	ShowSources bool `toml:"show_sources"`
	// WrapWidth is the maximum rendered answer width in columns (0 = fit terminal)
	WrapWidth int `toml:"wrap_width"`
}

// LogConfig controls the optional debug log file. Stdout belongs to the
// TUI, so logs can only go to a file.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:             "http://localhost:3000/api",
			AskTimeoutSecs:      60,
			FeedbackTimeoutSecs: 10,
			StatusTimeoutSecs:   5,
		},
		UI: UIConfig{
			ShowResponseTime: true,
			ShowSources:      true,
			WrapWidth:        0,
		},
		Log: LogConfig{
			Enabled: false,
			Path:    "",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the sattva configuration directory (~/.sattva).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".sattva"), nil
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default path, falling back to the
// built-in defaults when no file exists, then applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if err := LoadTOML(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML merges a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the default path as TOML.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// fillDefaults replaces zero values with their defaults so a sparse file
// never disables a timeout entirely.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = def.Backend.BaseURL
	}
	if c.Backend.AskTimeoutSecs <= 0 {
		c.Backend.AskTimeoutSecs = def.Backend.AskTimeoutSecs
	}
	if c.Backend.FeedbackTimeoutSecs <= 0 {
		c.Backend.FeedbackTimeoutSecs = def.Backend.FeedbackTimeoutSecs
	}
	if c.Backend.StatusTimeoutSecs <= 0 {
		c.Backend.StatusTimeoutSecs = def.Backend.StatusTimeoutSecs
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies SATTVA_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SATTVA_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := envInt("SATTVA_ASK_TIMEOUT_SECS"); v > 0 {
		c.Backend.AskTimeoutSecs = v
	}
	if v := envInt("SATTVA_FEEDBACK_TIMEOUT_SECS"); v > 0 {
		c.Backend.FeedbackTimeoutSecs = v
	}
	if v := envInt("SATTVA_STATUS_TIMEOUT_SECS"); v > 0 {
		c.Backend.StatusTimeoutSecs = v
	}
	if v := os.Getenv("SATTVA_LOG_FILE"); v != "" {
		c.Log.Enabled = true
		c.Log.Path = v
	}
}

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{Field: "backend.base_url", Message: "must be an absolute http(s) URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ValidationError{Field: "backend.base_url", Message: "scheme must be http or https"}
	}
	if strings.HasSuffix(c.Backend.BaseURL, "/") {
		c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	}
	if c.Backend.AskTimeoutSecs < c.Backend.StatusTimeoutSecs {
		return ValidationError{Field: "backend.ask_timeout_secs", Message: "ask timeout must not be shorter than the status timeout"}
	}
	return nil
}

// =============================================================================
// DURATION HELPERS
// =============================================================================

// AskTimeout returns the ask timeout as a duration.
func (c *Config) AskTimeout() time.Duration {
	return time.Duration(c.Backend.AskTimeoutSecs) * time.Second
}

// FeedbackTimeout returns the feedback timeout as a duration.
func (c *Config) FeedbackTimeout() time.Duration {
	return time.Duration(c.Backend.FeedbackTimeoutSecs) * time.Second
}

// StatusTimeout returns the status timeout as a duration.
func (c *Config) StatusTimeout() time.Duration {
	return time.Duration(c.Backend.StatusTimeoutSecs) * time.Second
}
