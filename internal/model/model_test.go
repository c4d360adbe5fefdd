// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromSeed(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want string
	}{
		{"empty seed uses placeholder", "", DefaultTitle},
		{"whitespace seed uses placeholder", "   \n  ", DefaultTitle},
		{"short seed verbatim", "Yoga for back pain", "Yoga for back pain"},
		{"exactly thirty runes verbatim", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long seed truncated", "What are the benefits of Surya Namaskar?", "What are the benefits of Surya..."},
		{"multiline uses first line", "Morning flow\nand some detail", "Morning flow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromSeed(tt.seed))
		})
	}
}

func TestNewConversation(t *testing.T) {
	conv := NewConversation("What is pranayama?")

	assert.NotEmpty(t, conv.ID)
	assert.True(t, strings.HasPrefix(conv.ID, "conv_"))
	assert.Equal(t, "What is pranayama?", conv.Title)
	assert.False(t, conv.CreatedAt.IsZero())
	assert.True(t, conv.IsEmpty())
}

func TestConversationIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		conv := NewConversation("")
		assert.False(t, seen[conv.ID], "duplicate conversation id %s", conv.ID)
		seen[conv.ID] = true
	}
}

func TestAppendRetitlesOnFirstUserMessage(t *testing.T) {
	conv := NewConversation("")
	assert.Equal(t, DefaultTitle, conv.Title)

	conv.Append(NewUserMessage("How do I start a meditation practice at home every day?"))

	assert.Equal(t, "How do I start a meditation pr...", conv.Title)
	assert.Equal(t, 1, conv.MessageCount())

	// A second user message must not retitle.
	conv.Append(NewUserMessage("And what about breathing?"))
	assert.Equal(t, "How do I start a meditation pr...", conv.Title)
}

func TestLastAssistantMessage(t *testing.T) {
	conv := NewConversation("q")
	assert.Nil(t, conv.LastAssistantMessage())

	conv.Append(NewUserMessage("question"))
	reply := NewAssistantMessage("answer", &AnswerMeta{QueryID: "q1"})
	conv.Append(reply)
	conv.Append(NewUserMessage("followup"))

	got := conv.LastAssistantMessage()
	require.NotNil(t, got)
	assert.Equal(t, reply.ID, got.ID)
	assert.Equal(t, "q1", got.QueryID())
}

func TestErrorMessage(t *testing.T) {
	msg := NewErrorMessage("Cannot connect to backend")

	assert.Equal(t, RoleAssistant, msg.Role)
	assert.True(t, strings.HasPrefix(msg.Content, ErrorMarker))
	assert.True(t, msg.IsError())
	assert.Empty(t, msg.QueryID(), "error entries must never be eligible for feedback")
}

func TestNormalizeRelevance(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"fraction passes through", 0.92, 0.92},
		{"one passes through", 1.0, 1.0},
		{"percent detected by range", 92, 0.92},
		{"oversized percent clamped", 150, 1.0},
		{"zero", 0, 0},
		{"negative clamped", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeRelevance(tt.in), 1e-9)
		})
	}
}

func TestSourceDisplay(t *testing.T) {
	s := Source{Title: "Yoga Basics", Category: "Asana", Relevance: 0.92}
	assert.Equal(t, 92, s.RelevancePercent())
	assert.Equal(t, "Yoga Basics", s.DisplayTitle())

	blank := Source{Relevance: 0.505}
	assert.Equal(t, DefaultSourceTitle, blank.DisplayTitle())
	assert.Equal(t, DefaultSourceCategory, blank.DisplayCategory())
	assert.Equal(t, 51, blank.RelevancePercent())
}

func TestSafetyInfoWithDefaults(t *testing.T) {
	empty := SafetyInfo{}.WithDefaults()
	assert.Equal(t, DefaultSafetyWarning, empty.Warning)
	assert.Equal(t, DefaultDisclaimer, empty.Disclaimer)
	assert.Empty(t, empty.Recommendation, "recommendation has no default")

	full := SafetyInfo{
		Warning:          "custom warning",
		DetectedKeywords: []string{"pregnant"},
		Recommendation:   "prenatal yoga",
		Disclaimer:       "custom disclaimer",
	}.WithDefaults()
	assert.Equal(t, "custom warning", full.Warning)
	assert.Equal(t, []string{"pregnant"}, full.DetectedKeywords)
	assert.Equal(t, "prenatal yoga", full.Recommendation)
	assert.Equal(t, "custom disclaimer", full.Disclaimer)
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("a very long question about yoga that keeps going and going")
	p := msg.Preview(10)
	assert.Equal(t, "a very lon...", p)
}
