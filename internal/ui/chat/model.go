// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/morganforge/sattva-tui/internal/api"
	"github.com/morganforge/sattva-tui/internal/config"
	"github.com/morganforge/sattva-tui/internal/export"
	"github.com/morganforge/sattva-tui/internal/model"
	"github.com/morganforge/sattva-tui/internal/session"
	"github.com/morganforge/sattva-tui/internal/store"
	"github.com/morganforge/sattva-tui/internal/ui/components"
	"github.com/morganforge/sattva-tui/internal/ui/styles"
)

// =============================================================================
// VIEW STATE
// =============================================================================

// viewState identifies which screen currently owns the keyboard.
type viewState int

const (
	stateChat viewState = iota
	stateConvList
	stateConfirmClear
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the root Bubble Tea model for the sattva chat interface.
type Model struct {
	keys KeyMap

	client *api.Client
	store  *store.Store
	sess   *session.Manager
	cfg    *config.Config
	theme  *styles.Theme

	// Components
	input     textinput.Model
	viewport  viewport.Model
	spin      spinner.Model
	welcome   components.Welcome
	statusBar components.StatusBar
	convList  components.ConvList

	// Markdown renderer for assistant answers. Rebuilt on resize.
	renderer *glamour.TermRenderer

	state viewState

	// busy is true while an ask round trip is in flight. Only one
	// question may be outstanding at a time.
	busy bool

	// notice is a transient footer line (export result, feedback errors).
	notice      string
	noticeIsErr bool

	width  int
	height int

	version string
}

// New creates the chat model.
func New(client *api.Client, st *store.Store, sess *session.Manager, cfg *config.Config, version string) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask about poses, breathing, routines..."
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = theme.Spinner

	vp := viewport.New(80, 20)

	welcome := components.NewWelcome(theme)
	welcome.SetVersion(version)
	welcome.SetBackendURL(client.BaseURL())

	statusBar := components.NewStatusBar(theme)
	statusBar.SetSessionStart(sess.StartTime())

	return Model{
		keys:      DefaultKeyMap(),
		client:    client,
		store:     st,
		sess:      sess,
		cfg:       cfg,
		theme:     theme,
		input:     input,
		viewport:  vp,
		spin:      spin,
		welcome:   welcome,
		statusBar: statusBar,
		convList:  components.NewConvList(theme),
		state:     stateChat,
		version:   version,
	}
}

// Init starts the blink cursor, the session clock and the first backend
// status probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		session.TickCmd(),
		statusCmd(m.client),
	)
}

// =============================================================================
// LAYOUT
// =============================================================================

// setSize propagates a terminal resize to every component.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.welcome.SetSize(width, height)
	m.statusBar.SetWidth(width)
	m.convList.SetWidth(width)

	// Header 1, input 2 (border + line), status bar 1.
	vpHeight := height - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 6

	m.renderer = nil // rebuilt lazily at the new width
	m.refreshTranscript()
}

// markdownWidth is the wrap width for rendered answers.
func (m *Model) markdownWidth() int {
	w := m.width - 12
	if m.cfg.UI.WrapWidth > 0 && m.cfg.UI.WrapWidth < w {
		w = m.cfg.UI.WrapWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderMarkdown renders assistant answer text with glamour, falling
// back to the raw text if rendering fails.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.markdownWidth()),
		)
		if err != nil {
			return content
		}
		m.renderer = r
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript rebuilds the viewport content from the active
// conversation and scrolls to the bottom.
func (m *Model) refreshTranscript() {
	conv := m.store.Active()
	if conv == nil || conv.IsEmpty() {
		m.viewport.SetContent("")
		return
	}

	latest := conv.LastAssistantMessage()

	blocks := make([]string, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		v := components.NewMessageView(msg, m.theme)
		v.Width = m.width
		v.ShowSources = m.cfg.UI.ShowSources
		v.ShowResponseTime = m.cfg.UI.ShowResponseTime

		if msg.Role == model.RoleAssistant && !msg.IsError() {
			rendered := *msg
			rendered.Content = m.renderMarkdown(msg.Content)
			v.Message = &rendered
		}

		if msg == latest && !m.busy {
			v.IsLatest = true
			v.FeedbackGiven = m.store.HasFeedback(msg.QueryID())
		}

		blocks = append(blocks, v.View())
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

// feedbackTarget returns the query id eligible for feedback, or "".
// Only the latest assistant answer of the active conversation qualifies,
// and only while its feedback has not been recorded yet.
func (m *Model) feedbackTarget() string {
	conv := m.store.Active()
	if conv == nil || m.busy {
		return ""
	}
	last := conv.LastAssistantMessage()
	if last == nil {
		return ""
	}
	qid := last.QueryID()
	if qid == "" || m.store.HasFeedback(qid) {
		return ""
	}
	return qid
}

// setNotice installs a transient footer line.
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeIsErr = isErr
	return clearNoticeCmd()
}

// exportOptions derives export options from the UI config.
func (m *Model) exportOptions() *export.Options {
	opts := export.DefaultOptions()
	opts.IncludeMetadata = true
	opts.IncludeTimestamps = true
	return opts
}
