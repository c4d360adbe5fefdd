// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/session"
	"github.com/morganforge/sattva-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar renders the single-line footer: backend health, knowledge
// base stats, session duration and key hints.
type StatusBar struct {
	width int

	backendOnline bool
	statusKnown   bool
	stats         api.KnowledgeBaseStats

	sessionStart time.Time
	busy         bool

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetBackendStatus records the latest status probe result.
func (s *StatusBar) SetBackendStatus(online bool, stats api.KnowledgeBaseStats) {
	s.backendOnline = online
	s.statusKnown = true
	s.stats = stats
}

// SetSessionStart sets the session start time for the duration display.
func (s *StatusBar) SetSessionStart(t time.Time) {
	s.sessionStart = t
}

// SetBusy toggles the in-flight indicator.
func (s *StatusBar) SetBusy(busy bool) {
	s.busy = busy
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := s.renderBackend()
	if s.backendOnline && s.stats.TotalArticles > 0 {
		left += s.theme.ShortcutDesc.Render("  " + strconv.Itoa(s.stats.TotalArticles) + " articles / " + strconv.Itoa(s.stats.TotalChunks) + " chunks")
	}

	middle := ""
	if s.busy {
		middle = s.theme.ThinkingText.Render("thinking...")
	}

	right := ""
	if !s.sessionStart.IsZero() {
		right = s.theme.ShortcutDesc.Render(session.FormatDuration(time.Since(s.sessionStart))) + "  "
	}
	right += s.renderShortcuts()

	return s.theme.StatusBar.Width(s.width).Render(joinBar(s.width, left, middle, right))
}

func (s StatusBar) renderBackend() string {
	switch {
	case !s.statusKnown:
		return s.theme.ShortcutDesc.Render("checking...")
	case s.backendOnline:
		return s.theme.BackendOnline.Render(styles.StatusIndicators.Active + " online")
	default:
		return s.theme.BackendOffline.Render(styles.StatusIndicators.Error + " offline")
	}
}

func (s StatusBar) renderShortcuts() string {
	hints := []struct{ key, desc string }{
		{"ctrl+n", "new"},
		{"ctrl+l", "chats"},
		{"ctrl+c", "quit"},
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.theme.ShortcutKey.Render(h.key)+s.theme.ShortcutDesc.Render(" "+h.desc))
	}
	return strings.Join(parts, "  ")
}

// joinBar lays out left, middle and right segments across the width,
// dropping the middle first when space runs out.
func joinBar(width int, left, middle, right string) string {
	lw := lipgloss.Width(left)
	mw := lipgloss.Width(middle)
	rw := lipgloss.Width(right)

	gap := width - lw - mw - rw - 2
	if gap < 2 && middle != "" {
		middle = ""
		mw = 0
		gap = width - lw - rw - 2
	}
	if gap < 1 {
		return left + " " + right
	}

	leftGap := gap / 2
	rightGap := gap - leftGap
	if mw == 0 {
		return left + strings.Repeat(" ", gap) + right
	}
	return left + strings.Repeat(" ", leftGap) + middle + strings.Repeat(" ", rightGap) + right
}
