// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// wrap word-wraps s to the given column width.
func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	return wordwrap.String(s, width)
}

// maxLineWidth returns the display width of the widest line in s.
// lipgloss.Width ignores ANSI escape sequences, so pre-styled content
// measures correctly.
func maxLineWidth(s string) int {
	max := 0
	for _, line := range strings.Split(s, "\n") {
		if w := lipgloss.Width(line); w > max {
			max = w
		}
	}
	return max
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
