// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/morganforge/sattva-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown format.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(conv.GetTitle())))
		sb.WriteString(fmt.Sprintf("date: %s\n", conv.CreatedAt.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("messages: %d\n", len(conv.Messages)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: sattva-tui\n")
		sb.WriteString("---\n\n")
	}

	// Title
	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(conv.GetTitle())))

	// Conversation messages
	for i, msg := range conv.Messages {
		roleLabel := "[" + msg.Role.DisplayName() + "]"
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
				roleLabel,
				msg.Timestamp.Format("Jan 2, 2006 3:04 PM")))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", roleLabel))
		}

		// A flagged answer shows the advisory before the answer text,
		// mirroring on-screen order.
		if e.options.IncludeMetadata && msg.Meta != nil && msg.Meta.IsUnsafe {
			sb.WriteString(e.formatSafetyAdvisory(msg.Meta.Safety.WithDefaults()))
			sb.WriteString("\n\n")
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if e.options.IncludeMetadata && msg.Meta != nil {
			if block := e.formatSources(msg.Meta.Sources); block != "" {
				sb.WriteString(block)
				sb.WriteString("\n\n")
			}
			if msg.Meta.ResponseTime > 0 {
				sb.WriteString(fmt.Sprintf("<sub>Response time: %dms</sub>\n\n", msg.Meta.ResponseTime))
			}
		}

		if i < len(conv.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	// Footer
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from Sattva on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// formatSafetyAdvisory renders a flagged answer's advisory as a blockquote.
func (e *MarkdownExporter) formatSafetyAdvisory(info model.SafetyInfo) string {
	var sb strings.Builder

	sb.WriteString("> **Safety Notice**: ")
	sb.WriteString(info.Warning)
	if len(info.DetectedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\n> Detected: %s", strings.Join(info.DetectedKeywords, ", ")))
	}
	if info.Recommendation != "" {
		sb.WriteString("\n> ")
		sb.WriteString(info.Recommendation)
	}
	sb.WriteString("\n> *")
	sb.WriteString(info.Disclaimer)
	sb.WriteString("*")

	return sb.String()
}

// formatSources renders the citation list under an answer.
func (e *MarkdownExporter) formatSources(sources []model.Source) string {
	if len(sources) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("**Sources**:\n")
	for _, src := range sources {
		sb.WriteString(fmt.Sprintf("- %s (%s) - %d%% relevant\n",
			src.DisplayTitle(), src.DisplayCategory(), src.RelevancePercent()))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
