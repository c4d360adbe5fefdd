// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/sattva-tui/internal/model"
)

func testConversation() *model.Conversation {
	conv := model.NewConversation("What helps with back pain?")
	conv.Append(model.NewUserMessage("What helps with back pain?"))

	meta := &model.AnswerMeta{
		QueryID:      "q_test1",
		ResponseTime: 850,
		Sources: []model.Source{
			{ID: 1, Title: "Yoga for Back Health", Category: "Therapeutic", Relevance: 0.92},
			{ID: 2, Title: "", Category: "", Relevance: 0.78},
		},
	}
	conv.Append(model.NewAssistantMessage("Cat-Cow and Child's Pose are gentle options.", meta))
	return conv
}

func TestMarkdownExport(t *testing.T) {
	exporter := NewMarkdownExporter(nil)

	data, err := exporter.Export(testConversation())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# What helps with back pain?")
	assert.Contains(t, out, "### [You]")
	assert.Contains(t, out, "### [Sattva]")
	assert.Contains(t, out, "Cat-Cow and Child's Pose")
	assert.Contains(t, out, "Yoga for Back Health (Therapeutic) - 92% relevant")
	assert.Contains(t, out, "Unknown Source (General) - 78% relevant")
	assert.Contains(t, out, "Response time: 850ms")
}

func TestMarkdownExportSafetyAdvisory(t *testing.T) {
	conv := model.NewConversation("yoga during pregnancy")
	conv.Append(model.NewUserMessage("Is hot yoga safe during pregnancy?"))

	safety := model.SafetyInfo{DetectedKeywords: []string{"pregnancy"}}.WithDefaults()
	meta := &model.AnswerMeta{
		QueryID:  "q_safety",
		IsUnsafe: true,
		Safety:   safety,
	}
	conv.Append(model.NewAssistantMessage("Hot yoga is not recommended during pregnancy.", meta))

	data, err := NewMarkdownExporter(nil).Export(conv)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Safety Notice")
	assert.Contains(t, out, "Detected: pregnancy")
	assert.Contains(t, out, model.DefaultDisclaimer)

	// The advisory must appear before the answer text.
	assert.Less(t, strings.Index(out, "Safety Notice"), strings.Index(out, "Hot yoga is not recommended"))
}

func TestMarkdownExportWithoutMetadata(t *testing.T) {
	opts := &Options{IncludeMetadata: false, IncludeTimestamps: false}

	data, err := NewMarkdownExporter(opts).Export(testConversation())
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "Sources")
	assert.NotContains(t, out, "Response time")
	assert.NotContains(t, out, "---\ntitle:")
}

func TestMarkdownExportEmptyConversation(t *testing.T) {
	conv := model.NewConversation("")
	_, err := NewMarkdownExporter(nil).Export(conv)
	assert.Error(t, err)

	_, err = NewMarkdownExporter(nil).Export(nil)
	assert.Error(t, err)
}

func TestJSONExportRoundTrip(t *testing.T) {
	conv := testConversation()

	data, err := NewJSONExporter().Export(conv)
	require.NoError(t, err)

	var decoded model.Conversation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, conv.ID, decoded.ID)
	assert.Equal(t, conv.Title, decoded.Title)
	assert.Len(t, decoded.Messages, 2)
	require.NotNil(t, decoded.Messages[1].Meta)
	assert.Equal(t, "q_test1", decoded.Messages[1].Meta.QueryID)
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ToFile(testConversation(), NewMarkdownExporter(opts), opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".md"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "back pain")
}

func TestForFormat(t *testing.T) {
	md, err := ForFormat("markdown", nil)
	require.NoError(t, err)
	assert.Equal(t, ".md", md.FileExtension())

	js, err := ForFormat("JSON", nil)
	require.NoError(t, err)
	assert.Equal(t, ".json", js.FileExtension())

	def, err := ForFormat("", nil)
	require.NoError(t, err)
	assert.Equal(t, ".md", def.FileExtension())

	_, err = ForFormat("pdf", nil)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What poses help with back pain?", "What_poses_help_with_back_pain"},
		{"???", "untitled"},
		{"  spaced out  ", "spaced_out"},
		{"New Chat", "New_Chat"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in))
	}
}
