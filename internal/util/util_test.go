// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"empty string", "", 5, ""},
		{"multibyte preserved", "नमस्ते दुनिया और योग", 7, "नमस्ते ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateRunes(tt.input, tt.maxRunes))
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	assert.Equal(t, "hel", TruncateRunesNoEllipsis("hello", 3))
	assert.Equal(t, "hello", TruncateRunesNoEllipsis("hello", 8))
	assert.Equal(t, "", TruncateRunesNoEllipsis("hello", 0))
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters take two columns each.
	assert.Equal(t, "日本", TruncateWidth("日本", 10))
	got := TruncateWidth("日本語のテキスト", 7)
	assert.LessOrEqual(t, StringWidth(got), 7)
	assert.Equal(t, "", TruncateWidth("abc", 0))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 5, RuneLen("hello"))
	assert.Equal(t, 3, RuneLen("योग"))
	assert.NotEqual(t, len("योग"), RuneLen("योग"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", FirstLine("first\nsecond"))
	assert.Equal(t, "only", FirstLine("  only  "))
	assert.Equal(t, "", FirstLine("\n\n"))
}
