// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/config"
)

// =============================================================================
// TEA MESSAGE TYPES
// =============================================================================

// AskResultMsg carries the outcome of an ask round trip. ConvID records
// which conversation the question belonged to, so a reply that lands
// after the user switched conversations is still appended to the right
// transcript.
type AskResultMsg struct {
	ConvID string
	Query  string
	Result api.AskResult
}

// FeedbackResultMsg carries the outcome of a feedback submission.
type FeedbackResultMsg struct {
	QueryID  string
	Polarity api.Polarity
	Result   api.Result
}

// StatusResultMsg carries the outcome of a backend status probe.
type StatusResultMsg struct {
	Result api.StatusResult
}

// ExportDoneMsg reports the result of a transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ConfigReloadedMsg is sent when the config watcher sees a valid edit.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// clearNoticeMsg expires the transient status notice.
type clearNoticeMsg struct{}
