// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// ANSWER METADATA
// =============================================================================

// AnswerMeta holds the structured payload attached to an assistant message
// that came from a real backend call.
type AnswerMeta struct {
	IsUnsafe bool `json:"isUnsafe"`

	// Safety is populated when IsUnsafe is true. Missing fields are
	// filled from the default advisory table before rendering.
	Safety SafetyInfo `json:"safetyInfo,omitempty"`

	// Sources are the citations backing the answer, in backend order.
	Sources []Source `json:"sources,omitempty"`

	// ResponseTime is the backend-reported round trip in milliseconds.
	ResponseTime int `json:"responseTime"`

	// QueryID correlates this exchange with the backend's record of it
	// and keys feedback submission.
	QueryID string `json:"queryId"`
}

// =============================================================================
// SAFETY ADVISORY
// =============================================================================

// Default advisory strings, substituted when the backend omits a field.
// Defined once here so the render boundary never hard-codes them.
const (
	DefaultSafetyWarning = "This query has been flagged for safety reasons."
	DefaultDisclaimer    = "Please consult a doctor or certified yoga therapist before attempting these poses."
)

// SafetyInfo is the structured advisory shown before an unsafe answer.
type SafetyInfo struct {
	Warning          string   `json:"warning,omitempty"`
	DetectedKeywords []string `json:"detectedKeywords,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
	Disclaimer       string   `json:"disclaimer,omitempty"`
}

// WithDefaults returns a copy with absent advisory fields replaced by the
// default strings. The recommendation has no default: when the backend
// offers no alternatives the block is simply not rendered.
func (s SafetyInfo) WithDefaults() SafetyInfo {
	out := s
	if out.Warning == "" {
		out.Warning = DefaultSafetyWarning
	}
	if out.Disclaimer == "" {
		out.Disclaimer = DefaultDisclaimer
	}
	return out
}
