// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/model"
	"github.com/morganforge/sattva-tui/internal/session"
	"github.com/morganforge/sattva-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case session.TickMsg:
		// Keeps the footer clock moving.
		return m, session.TickCmd()

	case StatusResultMsg:
		m.statusBar.SetBackendStatus(msg.Result.Success, msg.Result.Stats)
		m.welcome.SetBackendStatus(msg.Result.Success)
		return m, nil

	case AskResultMsg:
		return m.handleAskResult(msg)

	case FeedbackResultMsg:
		return m.handleFeedbackResult(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			return m, m.setNotice("Export failed: "+msg.Err.Error(), true)
		}
		return m, m.setNotice("Exported to "+msg.Path, false)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

// handleAskResult appends the answer (or error transcript entry) to the
// conversation the question was asked in.
func (m Model) handleAskResult(msg AskResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.statusBar.SetBusy(false)
	m.sess.RecordActivity()

	conv := m.store.Get(msg.ConvID)
	if conv != nil {
		if msg.Result.Success {
			conv.Append(model.NewAssistantMessage(msg.Result.Answer, msg.Result.Meta))
		} else {
			conv.Append(model.NewErrorMessage(msg.Result.Err))
		}
	}

	if m.store.ActiveID() == msg.ConvID {
		m.refreshTranscript()
	}
	return m, nil
}

// handleFeedbackResult records feedback on success; failures are
// non-fatal and only surface as a footer notice.
func (m Model) handleFeedbackResult(msg FeedbackResultMsg) (tea.Model, tea.Cmd) {
	if !msg.Result.Success {
		return m, m.setNotice("Feedback failed: "+msg.Result.Err, true)
	}

	m.store.MarkFeedback(msg.QueryID)
	m.refreshTranscript()

	if msg.Polarity == api.PolarityHelpful {
		return m, m.setNotice("Marked as helpful. Thanks!", false)
	}
	return m, m.setNotice("Marked as not helpful. Thanks!", false)
}

// handleConfigReload swaps in the new configuration and rebuilds the
// API client so a changed backend URL takes effect immediately.
func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	m.cfg = msg.Config
	m.client = api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:         msg.Config.Backend.BaseURL,
		AskTimeout:      msg.Config.AskTimeout(),
		FeedbackTimeout: msg.Config.FeedbackTimeout(),
		StatusTimeout:   msg.Config.StatusTimeout(),
	})
	m.welcome.SetBackendURL(m.client.BaseURL())
	m.renderer = nil
	m.refreshTranscript()

	return m, tea.Batch(
		statusCmd(m.client),
		m.setNotice("Configuration reloaded", false),
	)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConvList:
		return m.handleConvListKey(msg)
	case stateConfirmClear:
		return m.handleConfirmClearKey(msg)
	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NewChat):
		m.store.NewConversation("")
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.Chats):
		m.convList.SetItems(convItems(m.store.List(), m.store.ActiveID()))
		m.state = stateConvList
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m.exportActive("markdown")

	case key.Matches(msg, m.keys.ExportJSON):
		return m.exportActive("json")

	case key.Matches(msg, m.keys.Refresh):
		return m, statusCmd(m.client)

	case key.Matches(msg, m.keys.ClearAll):
		if m.store.Len() == 0 {
			return m, nil
		}
		m.state = stateConfirmClear
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitQuestion()

	case key.Matches(msg, m.keys.Helpful) && m.input.Value() == "":
		if qid := m.feedbackTarget(); qid != "" {
			return m, feedbackCmd(m.client, qid, api.PolarityHelpful)
		}

	case key.Matches(msg, m.keys.NotHelp) && m.input.Value() == "":
		if qid := m.feedbackTarget(); qid != "" {
			return m, feedbackCmd(m.client, qid, api.PolarityNotHelpful)
		}

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exportActive exports the active conversation in the given format.
func (m Model) exportActive(format string) (tea.Model, tea.Cmd) {
	conv := m.store.Active()
	if conv == nil || conv.IsEmpty() {
		return m, m.setNotice("Nothing to export yet", true)
	}
	return m, exportCmd(conv, format, m.exportOptions())
}

// submitQuestion validates the input line and fires the ask command.
// Only one question may be in flight at a time.
func (m Model) submitQuestion() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	if m.busy {
		return m, m.setNotice("Still thinking about the previous question...", true)
	}

	conv := m.store.Active()
	if conv == nil {
		conv = m.store.NewConversation(query)
	}
	m.store.AppendMessage(model.NewUserMessage(query))

	m.input.Reset()
	m.busy = true
	m.statusBar.SetBusy(true)
	m.sess.RecordActivity()
	m.refreshTranscript()

	return m, tea.Batch(
		m.spin.Tick,
		askCmd(m.client, conv.ID, query, m.sess.SessionID()),
	)
}

func (m Model) handleConvListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.state = stateChat
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.convList.MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.convList.MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if id := m.convList.Selected(); id != "" {
			m.store.Delete(id)
			m.convList.SetItems(convItems(m.store.List(), m.store.ActiveID()))
			m.refreshTranscript()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if id := m.convList.Selected(); id != "" {
			m.store.Select(id)
			m.refreshTranscript()
		}
		m.state = stateChat
		return m, nil
	}

	return m, nil
}

// handleConfirmClearKey implements the clear-all confirmation: y wipes
// everything, any other key cancels.
func (m Model) handleConfirmClearKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.state = stateChat
	if key.Matches(msg, m.keys.Helpful) {
		m.store.ClearAll()
		m.refreshTranscript()
		return m, m.setNotice("All conversations cleared", false)
	}
	return m, nil
}

// convItems adapts store metadata to conversation list rows.
func convItems(metas []model.ConversationMeta, activeID string) []components.ConvItem {
	items := make([]components.ConvItem, 0, len(metas))
	for _, meta := range metas {
		items = append(items, components.ConvItem{
			ID:           meta.ID,
			Title:        meta.Title,
			MessageCount: meta.MessageCount,
			CreatedAt:    meta.CreatedAt,
			Active:       meta.ID == activeID,
		})
	}
	return items
}
