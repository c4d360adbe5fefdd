// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/sattva-tui/internal/model"
	"github.com/morganforge/sattva-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE VIEW COMPONENT
// =============================================================================

// MessageView renders a single transcript entry.
type MessageView struct {
	Message *model.Message
	Width   int

	// IsLatest marks the newest assistant answer, which is the only one
	// that shows the feedback prompt.
	IsLatest bool

	ShowTimestamp    bool
	ShowSources      bool
	ShowResponseTime bool

	// FeedbackGiven swaps the prompt for a thank-you line.
	FeedbackGiven bool

	theme *styles.Theme
}

// NewMessageView creates a message view with display defaults.
func NewMessageView(msg *model.Message, theme *styles.Theme) *MessageView {
	return &MessageView{
		Message:          msg,
		Width:            80,
		ShowTimestamp:    true,
		ShowSources:      true,
		ShowResponseTime: true,
		theme:            theme,
	}
}

// View renders the message.
func (v *MessageView) View() string {
	if v.Message == nil {
		return ""
	}

	switch {
	case v.Message.Role == model.RoleUser:
		return v.renderUser()
	case v.Message.IsError():
		return v.renderError()
	default:
		return v.renderAssistant()
	}
}

// ==========================================================================
// USER MESSAGE - right-aligned bubble
// ==========================================================================

func (v *MessageView) renderUser() string {
	content := v.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := v.Width - 12
	wrapped := wrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, v.Width-8)

	bubble := v.theme.UserBubble.Width(contentWidth).Render(wrapped)

	header := v.theme.UserLabel.Render(strings.ToLower(v.Message.Role.DisplayName()))
	if v.ShowTimestamp {
		header += " " + v.theme.Timestamp.Render(v.Message.Timestamp.Format("15:04"))
	}

	leftMargin := v.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ERROR MESSAGE - rose accent, no feedback affordance
// ==========================================================================

func (v *MessageView) renderError() string {
	wrapped := wrap(v.Message.Content, v.Width-8)
	box := v.theme.ErrorBox.Render(v.theme.ErrorMessage.Render(wrapped))

	header := v.theme.ErrorTitle.Render(strings.ToLower(v.Message.Role.DisplayName()))
	if v.ShowTimestamp {
		header += " " + v.theme.Timestamp.Render(v.Message.Timestamp.Format("15:04"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, box)
}

// ==========================================================================
// ASSISTANT MESSAGE - advisory, answer, citations, timing, feedback
// ==========================================================================

func (v *MessageView) renderAssistant() string {
	maxContentWidth := v.Width - 12
	wrapped := wrap(v.Message.Content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, v.Width-8)

	header := v.theme.AssistantLabel.Render(strings.ToLower(v.Message.Role.DisplayName()))
	if v.ShowTimestamp {
		header += " " + v.theme.Timestamp.Render(v.Message.Timestamp.Format("15:04"))
	}

	parts := []string{header}

	meta := v.Message.Meta
	if meta != nil && meta.IsUnsafe {
		parts = append(parts, v.renderSafetyAdvisory(meta.Safety.WithDefaults()))
	}

	parts = append(parts, v.theme.AssistantBubble.Width(contentWidth).Render(wrapped))

	if meta != nil {
		if v.ShowSources && len(meta.Sources) > 0 {
			parts = append(parts, v.renderSources(meta.Sources))
		}
		if v.ShowResponseTime && meta.ResponseTime > 0 {
			parts = append(parts, v.theme.ResponseTime.Render(formatMillis(meta.ResponseTime)))
		}
		if v.IsLatest && meta.QueryID != "" {
			parts = append(parts, v.renderFeedbackPrompt())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSafetyAdvisory renders the amber advisory that precedes a flagged
// answer.
func (v *MessageView) renderSafetyAdvisory(info model.SafetyInfo) string {
	var sb strings.Builder

	sb.WriteString(v.theme.SafetyTitle.Render(styles.StatusIndicators.Warning + " Safety Notice"))
	sb.WriteString("\n")
	sb.WriteString(wrap(info.Warning, v.Width-12))

	if len(info.DetectedKeywords) > 0 {
		sb.WriteString("\n")
		sb.WriteString(v.theme.SafetyKeywords.Render("Detected: " + strings.Join(info.DetectedKeywords, ", ")))
	}
	if info.Recommendation != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(info.Recommendation, v.Width-12))
	}
	sb.WriteString("\n")
	sb.WriteString(v.theme.SafetyDisclaimer.Render(wrap(info.Disclaimer, v.Width-12)))

	return v.theme.SafetyBox.Render(sb.String())
}

// renderSources renders the citation list under an answer.
func (v *MessageView) renderSources(sources []model.Source) string {
	var sb strings.Builder
	sb.WriteString(v.theme.SourceHeader.Render("Sources"))

	for _, src := range sources {
		sb.WriteString("\n  ")
		sb.WriteString(v.theme.SourceTitle.Render(src.DisplayTitle()))
		sb.WriteString(" ")
		sb.WriteString(v.theme.SourceCategory.Render("(" + src.DisplayCategory() + ")"))
		sb.WriteString(" ")
		sb.WriteString(v.theme.SourceRelevance.Render(strconv.Itoa(src.RelevancePercent()) + "% relevant"))
	}

	return sb.String()
}

// renderFeedbackPrompt renders the helpful/not-helpful affordance, or the
// thank-you line once feedback has been recorded.
func (v *MessageView) renderFeedbackPrompt() string {
	if v.FeedbackGiven {
		return v.theme.FeedbackDone.Render("Thanks for your feedback!")
	}

	return v.theme.FeedbackPrompt.Render("Was this helpful? ") +
		v.theme.FeedbackKey.Render("[y]") +
		v.theme.FeedbackPrompt.Render(" yes  ") +
		v.theme.FeedbackKey.Render("[n]") +
		v.theme.FeedbackPrompt.Render(" no")
}

// formatMillis renders a backend-reported duration like "850ms" or "1.2s".
func formatMillis(ms int) string {
	if ms < 1000 {
		return strconv.Itoa(ms) + "ms"
	}
	whole := ms / 1000
	tenth := (ms % 1000) / 100
	return strconv.Itoa(whole) + "." + strconv.Itoa(tenth) + "s"
}
