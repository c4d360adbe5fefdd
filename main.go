// sattva TUI - a terminal chat client for the sattva yoga and wellness
// backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/config"
	"github.com/morganforge/sattva-tui/internal/session"
	"github.com/morganforge/sattva-tui/internal/store"
	"github.com/morganforge/sattva-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		backendURL  = flag.String("backend", "", "backend API base URL (overrides config)")
		configPath  = flag.String("config", "", "path to config.toml (default ~/.sattva/config.toml)")
		logFile     = flag.String("log", "", "append debug logs to this file")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sattva %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "sattva is an interactive terminal application; stdout must be a TTY")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.BaseURL = *backendURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}
	}
	if *logFile != "" {
		cfg.Log.Enabled = true
		cfg.Log.Path = *logFile
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:         cfg.Backend.BaseURL,
		AskTimeout:      cfg.AskTimeout(),
		FeedbackTimeout: cfg.FeedbackTimeout(),
		StatusTimeout:   cfg.StatusTimeout(),
	})

	sess := session.NewManager()
	logger.Printf("session %s started, backend %s", sess.SessionID(), client.BaseURL())

	m := chat.New(client, store.New(), sess, cfg, Version)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	watcher := startConfigWatcher(*configPath, p, logger)
	if watcher != nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		logger.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("session %s ended after %s", sess.SessionID(), session.FormatDuration(sess.Duration()))
}

// loadConfig loads from an explicit path when given, otherwise from the
// default location with built-in fallbacks.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// setupLogger returns a file-backed logger when logging is enabled, and
// a discarding logger otherwise. Stdout belongs to the TUI.
func setupLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if !cfg.Log.Enabled || cfg.Log.Path == "" {
		null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return nil, func() {}, err
		}
		return log.New(null, "", 0), func() { null.Close() }, nil
	}

	f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, err
	}
	return log.New(f, "sattva ", log.LstdFlags|log.Lmsgprefix), func() { f.Close() }, nil
}

// startConfigWatcher wires config hot reload into the running program.
// A nil return means there is no config file to watch, which is fine.
func startConfigWatcher(explicitPath string, p *tea.Program, logger *log.Logger) *config.Watcher {
	path := explicitPath
	if path == "" {
		defaultPath, err := config.ConfigPath()
		if err != nil {
			return nil
		}
		path = defaultPath
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := config.NewWatcher(path, func(cfg *config.Config) {
		logger.Printf("config reloaded from %s", path)
		p.Send(chat.ConfigReloadedMsg{Config: cfg})
	})
	if err != nil {
		logger.Printf("config watcher unavailable: %v", err)
		return nil
	}
	if err := w.Watch(); err != nil {
		logger.Printf("config watcher failed: %v", err)
		w.Close()
		return nil
	}
	return w
}
