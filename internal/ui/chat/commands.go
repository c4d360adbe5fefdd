// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/export"
	"github.com/morganforge/sattva-tui/internal/model"
)

// noticeLifetime is how long a transient footer notice stays visible.
const noticeLifetime = 3 * time.Second

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// askCmd sends a question to the backend. The client applies its own
// per-call timeout; the result is always a terminal AskResultMsg.
func askCmd(client *api.Client, convID, query, sessionID string) tea.Cmd {
	return func() tea.Msg {
		result := client.Ask(context.Background(), query, sessionID)
		return AskResultMsg{
			ConvID: convID,
			Query:  query,
			Result: result,
		}
	}
}

// feedbackCmd submits helpful/not-helpful feedback for a query.
func feedbackCmd(client *api.Client, queryID string, polarity api.Polarity) tea.Cmd {
	return func() tea.Msg {
		result := client.SubmitFeedback(context.Background(), queryID, polarity, "")
		return FeedbackResultMsg{
			QueryID:  queryID,
			Polarity: polarity,
			Result:   result,
		}
	}
}

// statusCmd probes the backend's knowledge base status. It runs once at
// startup and again whenever the user asks for a refresh; there is no
// background polling.
func statusCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		return StatusResultMsg{Result: client.Status(context.Background())}
	}
}

// exportCmd writes the conversation transcript to a file.
func exportCmd(conv *model.Conversation, format string, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		exporter, err := export.ForFormat(format, opts)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		path, err := export.ToFile(conv, exporter, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// clearNoticeCmd expires the footer notice after noticeLifetime.
func clearNoticeCmd() tea.Cmd {
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}
