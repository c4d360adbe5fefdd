// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m Model) View() string {
	switch m.state {
	case stateConvList:
		return m.viewConvList()
	case stateConfirmClear:
		return m.viewConfirmClear()
	default:
		return m.viewChat()
	}
}

func (m Model) viewChat() string {
	header := m.viewHeader()

	var body string
	conv := m.store.Active()
	if conv == nil || conv.IsEmpty() {
		m.welcome.SetSize(m.width, m.viewport.Height)
		body = lipgloss.NewStyle().Height(m.viewport.Height).Render(m.welcome.View())
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.viewInput(),
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("Sattva")
	subtitle := m.theme.HeaderSubtitle.Render(" yoga & wellness assistant")

	convTitle := ""
	if conv := m.store.Active(); conv != nil {
		convTitle = "  " + m.theme.HeaderSubtitle.Render(conv.GetTitle())
	}

	return m.theme.Container.Render(title + subtitle + convTitle)
}

func (m Model) viewInput() string {
	line := m.input.View()
	if m.busy {
		line = m.spin.View() + " " + m.theme.ThinkingText.Render("Sattva is thinking...")
	}
	return m.theme.InputContainer.Width(maxInt(m.width-2, 20)).Render(line)
}

// viewFooter renders the transient notice when present, otherwise the
// status bar.
func (m Model) viewFooter() string {
	if m.notice != "" {
		style := m.theme.SuccessStyle
		if m.noticeIsErr {
			style = m.theme.ErrorStyle
		}
		return m.theme.StatusBar.Width(m.width).Render(style.Render(m.notice))
	}
	return m.statusBar.View()
}

func (m Model) viewConvList() string {
	list := m.convList.View()
	if m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, list)
	}
	return list
}

func (m Model) viewConfirmClear() string {
	box := m.theme.ConvList.Render(
		m.theme.WarningStyle.Render("Clear all conversations?") + "\n\n" +
			m.theme.ShortcutDesc.Render("This removes every chat and all feedback state.") + "\n\n" +
			m.theme.ShortcutKey.Render("y") + m.theme.ShortcutDesc.Render(" confirm  ") +
			m.theme.ShortcutKey.Render("any other key") + m.theme.ShortcutDesc.Render(" cancel"))

	if m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
