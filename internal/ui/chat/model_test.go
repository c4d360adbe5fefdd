// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/config"
	"github.com/morganforge/sattva-tui/internal/model"
	"github.com/morganforge/sattva-tui/internal/session"
	"github.com/morganforge/sattva-tui/internal/store"
)

func newTestModel() Model {
	m := New(api.NewClient(), store.New(), session.NewManager(), config.Default(), "test")
	m.setSize(100, 30)
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func askSuccess(convID, queryID string) AskResultMsg {
	return AskResultMsg{
		ConvID: convID,
		Query:  "What helps with back pain?",
		Result: api.AskResult{
			Result: api.Result{Success: true},
			Answer: "Try Cat-Cow pose.",
			Meta:   &model.AnswerMeta{QueryID: queryID, ResponseTime: 850},
		},
	}
}

func TestSubmitStartsAskFlow(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("What helps with back pain?")

	m, cmd := update(t, m, keyMsg("enter"))

	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	conv := m.store.Active()
	require.NotNil(t, conv)
	assert.Equal(t, "What helps with back pain?", conv.GetTitle())
	require.Equal(t, 1, conv.MessageCount())
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Empty(t, m.input.Value())
}

func TestSubmitEmptyInputIsIgnored(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("   ")

	m, cmd := update(t, m, keyMsg("enter"))

	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, 0, m.store.Len())
}

func TestSubmitWhileBusyIsRejected(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("first question")
	m, _ = update(t, m, keyMsg("enter"))

	m.input.SetValue("second question")
	m, _ = update(t, m, keyMsg("enter"))

	// Still one conversation with one message; the second submit was
	// refused, not queued.
	require.NotNil(t, m.store.Active())
	assert.Equal(t, 1, m.store.Active().MessageCount())
	assert.NotEmpty(t, m.notice)
}

func TestAskResultAppendsAnswer(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question")
	m, _ = update(t, m, keyMsg("enter"))
	convID := m.store.ActiveID()

	m, _ = update(t, m, askSuccess(convID, "q_1"))

	assert.False(t, m.busy)
	conv := m.store.Active()
	require.Equal(t, 2, conv.MessageCount())
	last := conv.LastAssistantMessage()
	require.NotNil(t, last)
	assert.Equal(t, "Try Cat-Cow pose.", last.Content)
	assert.Equal(t, "q_1", last.QueryID())
}

func TestAskErrorBecomesTranscriptEntry(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question")
	m, _ = update(t, m, keyMsg("enter"))
	convID := m.store.ActiveID()

	m, _ = update(t, m, AskResultMsg{
		ConvID: convID,
		Result: api.AskResult{Result: api.Result{Err: "Cannot connect to backend. Please ensure the server is running."}},
	})

	conv := m.store.Active()
	require.Equal(t, 2, conv.MessageCount())
	last := conv.LastMessage()
	assert.True(t, last.IsError())
	assert.Equal(t, "", last.QueryID())
	assert.Equal(t, "", m.feedbackTarget())
}

func TestLateAnswerLandsInOriginConversation(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question in first chat")
	m, _ = update(t, m, keyMsg("enter"))
	firstID := m.store.ActiveID()

	// User opens a new chat before the answer arrives.
	m, _ = update(t, m, keyMsg("ctrl+n"))
	require.NotEqual(t, firstID, m.store.ActiveID())

	m, _ = update(t, m, askSuccess(firstID, "q_1"))

	first := m.store.Get(firstID)
	require.NotNil(t, first)
	assert.Equal(t, 2, first.MessageCount())
	assert.Equal(t, 0, m.store.Active().MessageCount())
}

func TestFeedbackFlow(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_1"))

	assert.Equal(t, "q_1", m.feedbackTarget())

	m, _ = update(t, m, FeedbackResultMsg{
		QueryID:  "q_1",
		Polarity: api.PolarityHelpful,
		Result:   api.Result{Success: true},
	})

	assert.True(t, m.store.HasFeedback("q_1"))
	assert.Equal(t, "", m.feedbackTarget())
}

func TestFeedbackFailureDoesNotMark(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_1"))

	m, _ = update(t, m, FeedbackResultMsg{
		QueryID:  "q_1",
		Polarity: api.PolarityHelpful,
		Result:   api.Result{Err: "Could not submit feedback."},
	})

	// Failure is non-fatal: the prompt stays available for a retry.
	assert.False(t, m.store.HasFeedback("q_1"))
	assert.Equal(t, "q_1", m.feedbackTarget())
	assert.True(t, m.noticeIsErr)
}

func TestFeedbackKeyIgnoredWhileTyping(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_1"))

	m.input.SetValue("can ")
	m, _ = update(t, m, keyMsg("y"))

	// The y went into the input, not into feedback.
	assert.Equal(t, "can y", m.input.Value())
	assert.False(t, m.store.HasFeedback("q_1"))
}

func TestConvListSwitchAndDelete(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("first")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_1"))
	firstID := m.store.ActiveID()

	m, _ = update(t, m, keyMsg("ctrl+n"))
	m.input.SetValue("second")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_2"))

	// Open the list and select the older conversation (one row down).
	m, _ = update(t, m, keyMsg("ctrl+l"))
	assert.Equal(t, stateConvList, m.state)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, keyMsg("enter"))

	assert.Equal(t, stateChat, m.state)
	assert.Equal(t, firstID, m.store.ActiveID())

	// Delete the active conversation from the list; no implicit
	// re-selection happens.
	m, _ = update(t, m, keyMsg("ctrl+l"))
	m, _ = update(t, m, keyMsg("d"))
	assert.Equal(t, 1, m.store.Len())
	assert.Equal(t, "", m.store.ActiveID())
}

func TestClearAllRequiresConfirmation(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("question")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_1"))
	m, _ = update(t, m, FeedbackResultMsg{QueryID: "q_1", Polarity: api.PolarityHelpful, Result: api.Result{Success: true}})

	m, _ = update(t, m, keyMsg("ctrl+x"))
	assert.Equal(t, stateConfirmClear, m.state)

	// Any non-y key cancels.
	m, _ = update(t, m, keyMsg("esc"))
	assert.Equal(t, stateChat, m.state)
	assert.Equal(t, 1, m.store.Len())

	m, _ = update(t, m, keyMsg("ctrl+x"))
	m, _ = update(t, m, keyMsg("y"))

	assert.Equal(t, 0, m.store.Len())
	// Feedback state resets with the conversations.
	assert.False(t, m.store.HasFeedback("q_1"))
}

func TestStatusRefreshIsUserDriven(t *testing.T) {
	var probes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&probes, 1)
		w.Write([]byte(`{"success": true, "data": {"totalArticles": 34, "totalChunks": 66}}`))
	}))
	defer srv.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL})
	m := New(client, store.New(), session.NewManager(), config.Default(), "test")
	m.setSize(100, 30)

	// A status result is terminal: it never schedules a follow-up probe.
	m, cmd := update(t, m, StatusResultMsg{
		Result: api.StatusResult{Result: api.Result{Success: true}},
	})
	assert.Nil(t, cmd)
	assert.Equal(t, int32(0), atomic.LoadInt32(&probes))

	// An explicit refresh fires exactly one probe.
	m, cmd = update(t, m, keyMsg("ctrl+r"))
	require.NotNil(t, cmd)
	res, ok := cmd().(StatusResultMsg)
	require.True(t, ok)
	assert.True(t, res.Result.Success)
	assert.Equal(t, 34, res.Result.Stats.TotalArticles)
	assert.Equal(t, int32(1), atomic.LoadInt32(&probes))
}

func TestViewShowsWelcomeWhenEmpty(t *testing.T) {
	m := newTestModel()
	out := m.View()
	assert.Contains(t, out, "S A T T V A")
}

func TestViewShowsTranscript(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("What helps with back pain?")
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, askSuccess(m.store.ActiveID(), "q_1"))

	out := m.View()
	assert.Contains(t, out, "Cat-Cow")
	assert.NotContains(t, out, "S A T T V A")
}
