// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:3000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 60, cfg.Backend.AskTimeoutSecs)
	assert.Equal(t, 10, cfg.Backend.FeedbackTimeoutSecs)
	assert.Equal(t, 5, cfg.Backend.StatusTimeoutSecs)
	assert.True(t, cfg.UI.ShowSources)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
base_url = "http://yoga.example.com:8080/api"
ask_timeout_secs = 90

[ui]
show_response_time = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://yoga.example.com:8080/api", cfg.Backend.BaseURL)
	assert.Equal(t, 90, cfg.Backend.AskTimeoutSecs)
	// Unset fields keep their defaults.
	assert.Equal(t, 10, cfg.Backend.FeedbackTimeoutSecs)
	assert.False(t, cfg.UI.ShowResponseTime)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SATTVA_BACKEND_URL", "https://wellness.example.org/api")
	t.Setenv("SATTVA_ASK_TIMEOUT_SECS", "120")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://wellness.example.org/api", cfg.Backend.BaseURL)
	assert.Equal(t, 120, cfg.Backend.AskTimeoutSecs)
}

func TestEnvLogOverride(t *testing.T) {
	t.Setenv("SATTVA_LOG_FILE", "/tmp/sattva.log")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "/tmp/sattva.log", cfg.Log.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"empty url", func(c *Config) { c.Backend.BaseURL = "" }, true},
		{"relative url", func(c *Config) { c.Backend.BaseURL = "localhost:3000" }, true},
		{"bad scheme", func(c *Config) { c.Backend.BaseURL = "ftp://host/api" }, true},
		{"ask shorter than status", func(c *Config) {
			c.Backend.AskTimeoutSecs = 2
			c.Backend.StatusTimeoutSecs = 5
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTrimsTrailingSlash(t *testing.T) {
	cfg := Default()
	cfg.Backend.BaseURL = "http://localhost:3000/api/"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:3000/api", cfg.Backend.BaseURL)
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(60), int64(cfg.AskTimeout().Seconds()))
	assert.Equal(t, int64(10), int64(cfg.FeedbackTimeout().Seconds()))
	assert.Equal(t, int64(5), int64(cfg.StatusTimeout().Seconds()))
}
