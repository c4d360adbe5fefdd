// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// and the answer metadata returned by the wellness backend.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/morganforge/sattva-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Sattva"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// ErrorMarker prefixes transcript entries synthesized for failed calls.
// Such entries never carry a query id and therefore never take feedback.
const ErrorMarker = "❌ Error: "

// Message represents a single message in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Meta is present only on assistant messages produced by a real
	// backend call. Synthesized error entries leave it nil.
	Meta *AnswerMeta `json:"metadata,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID("msg"),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message carrying backend
// answer metadata.
func NewAssistantMessage(content string, meta *AnswerMeta) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Meta = meta
	return msg
}

// NewErrorMessage creates an assistant-role entry for a failed call so the
// transcript remains a complete record of the exchange.
func NewErrorMessage(errText string) *Message {
	return NewMessage(RoleAssistant, ErrorMarker+errText)
}

// IsError reports whether the message is a synthesized failure entry.
func (m *Message) IsError() bool {
	return m.Role == RoleAssistant && m.Meta == nil
}

// QueryID returns the backend query id for this message, or "" when the
// message cannot receive feedback.
func (m *Message) QueryID() string {
	if m.Meta == nil {
		return ""
	}
	return m.Meta.QueryID
}

// Preview returns a truncated single-line preview of the message content.
func (m *Message) Preview(maxRunes int) string {
	return util.TruncateRunes(util.FirstLine(m.Content), maxRunes)
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// generateID creates a unique prefixed identifier.
func generateID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}
