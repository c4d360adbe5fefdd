// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/morganforge/sattva-tui/internal/model"
)

// =============================================================================
// RESULT ENVELOPE
// =============================================================================

// Result is the uniform outcome shape shared by every operation: a
// boolean Success and, when false, a non-empty human-readable Err.
type Result struct {
	Success bool
	Err     string
}

// failure builds a failed Result, guaranteeing a non-empty message.
func failure(msg string) Result {
	if msg == "" {
		msg = msgGeneric
	}
	return Result{Success: false, Err: msg}
}

// AskResult is the outcome of Ask.
type AskResult struct {
	Result
	Answer string
	Meta   *model.AnswerMeta
}

// StatusResult is the outcome of Status.
type StatusResult struct {
	Result
	Stats KnowledgeBaseStats
}

// KnowledgeBaseStats describes the backend's indexed corpus.
type KnowledgeBaseStats struct {
	TotalArticles int
	TotalChunks   int
	VectorCount   int
	Dimension     int
}

// =============================================================================
// POLARITY
// =============================================================================

// Polarity is the feedback rating for an answer. The wire contract is the
// boolean isHelpful field; neutral has no wire form and is never sent.
type Polarity int

const (
	PolarityNeutral Polarity = iota
	PolarityHelpful
	PolarityNotHelpful
)

// String returns the display form of the polarity.
func (p Polarity) String() string {
	switch p {
	case PolarityHelpful:
		return "helpful"
	case PolarityNotHelpful:
		return "not helpful"
	default:
		return "neutral"
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// envelope is the response wrapper every backend route shares.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// errorText picks the most specific error text the backend supplied.
func (e *envelope) errorText() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return msgGeneric
}

type askRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId"`
}

type feedbackRequest struct {
	QueryID   string `json:"queryId"`
	IsHelpful bool   `json:"isHelpful"`
	Comment   string `json:"comment,omitempty"`
}

// askData is the /ask success payload. Older backend routes flatten the
// safety advisory into top-level fields; newer ones nest it under
// safetyInfo. Both shapes are accepted.
type askData struct {
	QueryID            string           `json:"queryId"`
	Answer             string           `json:"answer"`
	IsUnsafe           bool             `json:"isUnsafe"`
	SafetyInfo         model.SafetyInfo `json:"safetyInfo"`
	SafetyWarning      string           `json:"safetyWarning"`
	SafeRecommendation string           `json:"safeRecommendation"`
	Sources            []wireSource     `json:"sources"`
	ResponseTime       flexMillis       `json:"responseTime"`
}

// answerText returns the answer or a placeholder when the backend sent an
// empty body with a success envelope.
func (d *askData) answerText() string {
	if d.Answer == "" {
		return "No response received."
	}
	return d.Answer
}

// toMeta converts the wire payload to the canonical answer metadata.
func (d *askData) toMeta() *model.AnswerMeta {
	safety := d.SafetyInfo
	if safety.Warning == "" {
		safety.Warning = d.SafetyWarning
	}
	if safety.Recommendation == "" {
		safety.Recommendation = d.SafeRecommendation
	}

	sources := make([]model.Source, 0, len(d.Sources))
	for i, s := range d.Sources {
		sources = append(sources, s.toModel(i))
	}

	return &model.AnswerMeta{
		IsUnsafe:     d.IsUnsafe,
		Safety:       safety,
		Sources:      sources,
		ResponseTime: int(d.ResponseTime),
		QueryID:      d.QueryID,
	}
}

type statusData struct {
	TotalArticles int `json:"totalArticles"`
	TotalChunks   int `json:"totalChunks"`
	VectorCount   int `json:"vectorCount"`
	Dimension     int `json:"dimension"`
}

// =============================================================================
// SOURCE NORMALIZATION
// =============================================================================

// wireSource tolerates the per-route inconsistencies of the backend:
// numeric or string ids, and relevance either as an integer percent
// ("relevance") or a 0-1 fraction ("similarity").
type wireSource struct {
	ID         flexID   `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	ChunkID    string   `json:"chunkId"`
	Relevance  *float64 `json:"relevance"`
	Similarity *float64 `json:"similarity"`
}

// toModel converts to the canonical Source. idx is the position in the
// source list, used when the backend sends no usable numeric id.
func (s wireSource) toModel(idx int) model.Source {
	id := s.ID.number
	if id == 0 {
		id = idx + 1
	}

	chunkID := s.ChunkID
	if chunkID == "" {
		chunkID = s.ID.text
	}

	var relevance float64
	switch {
	case s.Relevance != nil:
		relevance = model.NormalizeRelevance(*s.Relevance)
	case s.Similarity != nil:
		relevance = model.NormalizeRelevance(*s.Similarity)
	}

	return model.Source{
		ID:        id,
		Title:     s.Title,
		Category:  s.Category,
		ChunkID:   chunkID,
		Relevance: relevance,
	}
}

// flexID accepts a JSON number or string id without failing the decode.
type flexID struct {
	number int
	text   string
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.text = s
		if n, err := strconv.Atoi(s); err == nil {
			f.number = n
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.number = int(n)
	return nil
}

// flexMillis accepts a response time as a JSON number of milliseconds or
// as a string like "850ms".
type flexMillis int

func (f *flexMillis) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "ms")
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = flexMillis(n)
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexMillis(n)
	return nil
}
