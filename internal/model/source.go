// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "math"

// =============================================================================
// SOURCE CITATIONS
// =============================================================================

// Defaults for backend-omitted source fields.
const (
	DefaultSourceTitle    = "Unknown Source"
	DefaultSourceCategory = "General"
)

// Source is a backend-supplied citation attached to an answer. It is
// read-only to the client.
type Source struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	ChunkID  string `json:"chunkId,omitempty"`

	// Relevance is the canonical 0-1 fraction. The backend emits either
	// an integer percent or a fraction depending on the route; the API
	// layer normalizes through NormalizeRelevance before building a
	// Source.
	Relevance float64 `json:"relevance"`
}

// NormalizeRelevance converts a backend relevance figure to the canonical
// 0-1 fraction. Values above 1 are treated as percentages; everything is
// clamped to [0, 1].
func NormalizeRelevance(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > 1 {
		v = v / 100
	}
	if v > 1 {
		return 1
	}
	return v
}

// RelevancePercent returns the relevance as an integer percentage for
// display ("92% relevant").
func (s Source) RelevancePercent() int {
	return int(math.Round(s.Relevance * 100))
}

// DisplayTitle returns the title or the default placeholder.
func (s Source) DisplayTitle() string {
	if s.Title == "" {
		return DefaultSourceTitle
	}
	return s.Title
}

// DisplayCategory returns the category or the default placeholder.
func (s Source) DisplayCategory() string {
	if s.Category == "" {
		return DefaultSourceCategory
	}
	return s.Category
}
