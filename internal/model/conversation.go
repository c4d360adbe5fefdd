// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/morganforge/sattva-tui/internal/util"
)

// TitleMaxRunes is the maximum title length derived from the first user
// message. Longer seeds are truncated with an ellipsis appended.
const TitleMaxRunes = 30

// DefaultTitle is the placeholder used when no seed text exists yet.
const DefaultTitle = "New Chat"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one chat thread. Messages are append-only and in
// chronological order; the ID never changes after creation.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	Messages  []*Message `json:"messages"`
}

// NewConversation creates a conversation, deriving the title from the
// seed text when present.
func NewConversation(seed string) *Conversation {
	return &Conversation{
		ID:        generateID("conv"),
		Title:     TitleFromSeed(seed),
		CreatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// TitleFromSeed applies the title rule: first TitleMaxRunes runes of the
// seed with "..." appended when truncated, or the default placeholder for
// empty seeds.
func TitleFromSeed(seed string) string {
	seed = util.FirstLine(seed)
	if seed == "" {
		return DefaultTitle
	}
	return util.TruncateRunes(seed, TitleMaxRunes)
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the conversation. The first user message
// retitles the conversation.
func (c *Conversation) Append(msg *Message) {
	first := len(c.Messages) == 0
	c.Messages = append(c.Messages, msg)
	if first && msg.Role == RoleUser {
		c.Title = TitleFromSeed(msg.Content)
	}
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAssistantMessage returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistantMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// GetTitle returns the conversation title or the default placeholder.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

// Preview returns a short preview of the latest user message for listing.
func (c *Conversation) Preview() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Preview(60)
		}
	}
	return "Empty conversation"
}

// Meta returns lightweight metadata for the sidebar listing.
func (c *Conversation) Meta() ConversationMeta {
	return ConversationMeta{
		ID:           c.ID,
		Title:        c.GetTitle(),
		MessageCount: len(c.Messages),
		CreatedAt:    c.CreatedAt,
		Preview:      c.Preview(),
	}
}

// ConversationMeta holds lightweight metadata for listing.
type ConversationMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	Preview      string    `json:"preview"`
}
