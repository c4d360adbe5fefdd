// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/sattva-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// ExamplePrompts are shown on the welcome screen. The last two exercise
// the safety path so users discover the advisory behavior early.
var ExamplePrompts = []string{
	"What poses help with lower back pain?",
	"How do I start a morning yoga routine?",
	"What are the benefits of Surya Namaskar?",
	"Is yoga safe during pregnancy?",
	"Can I do inversions with high blood pressure?",
}

// Welcome is the welcome screen component.
type Welcome struct {
	version       string
	backendURL    string
	backendOnline bool
	statusKnown   bool

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetBackendURL sets the backend URL shown in the info block.
func (w *Welcome) SetBackendURL(url string) {
	w.backendURL = url
}

// SetBackendStatus records the result of the startup status probe.
func (w *Welcome) SetBackendStatus(online bool) {
	w.backendOnline = online
	w.statusKnown = true
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen centered in the available space.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	boxWidth := 62
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 40 {
		boxWidth = 40
	}

	content := w.renderLogo()
	content += "\n" + w.theme.WelcomeInfo.Render("Yoga & Wellness Assistant  "+w.version)
	content += "\n\n" + w.renderStatus()
	content += "\n\n" + w.renderExamples(boxWidth-12)
	content += "\n\n" + w.renderPressKey()

	box := w.theme.WelcomeBox.Width(boxWidth).Render(content)

	boxHeight := lipgloss.Height(box)
	if boxHeight >= height {
		return box
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (w Welcome) renderLogo() string {
	return w.theme.WelcomeLogo.Render("S A T T V A")
}

func (w Welcome) renderStatus() string {
	if !w.statusKnown {
		return w.theme.WelcomeInfo.Render("Checking backend...")
	}
	if w.backendOnline {
		return styles.RenderSuccess("Connected to " + w.backendURL)
	}
	return styles.RenderError("Backend offline. Answers will fail until it is reachable.")
}

func (w Welcome) renderExamples(width int) string {
	out := w.theme.WelcomeInfo.Render("Try asking:")
	for _, prompt := range ExamplePrompts {
		out += "\n" + w.theme.WelcomeExample.Render(wrap("\""+prompt+"\"", width))
	}
	return out
}

func (w Welcome) renderPressKey() string {
	return w.theme.WelcomeInfo.Render("Type a question and press ") +
		w.theme.WelcomeKey.Render("Enter") +
		w.theme.WelcomeInfo.Render(" to begin")
}
