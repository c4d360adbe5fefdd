// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the session-scoped conversation state: the
// conversation collection, the active selection, and the feedback
// tracker. Nothing here is persisted; the state lives and dies with the
// session.
package store

import (
	"sync"

	"github.com/morganforge/sattva-tui/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// Store owns all mutable session state. It is a single explicit object
// rather than ambient globals so the state machine is testable without a
// UI host.
//
// Active-selection state machine: states are {none, selected(id)}.
// NewConversation and Select move to selected; deleting the active
// conversation or ClearAll move to none. Nothing is ever implicitly
// re-selected; the UI shows the welcome state until the user acts.
type Store struct {
	mu sync.Mutex

	// conversations is ordered most-recent-first for listing.
	conversations []*model.Conversation
	activeID      string

	// feedback holds the query ids that already received feedback this
	// session. Client-side, session-scoped at-most-once guarantee only.
	feedback map[string]struct{}
}

// New creates an empty session store.
func New() *Store {
	return &Store{
		conversations: make([]*model.Conversation, 0),
		feedback:      make(map[string]struct{}),
	}
}

// =============================================================================
// CONVERSATION MANAGEMENT
// =============================================================================

// NewConversation creates a conversation titled from the seed text,
// prepends it to the collection, and makes it active.
func (s *Store) NewConversation(seed string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.NewConversation(seed)
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	return conv
}

// Active returns the currently selected conversation, or nil when the
// selection is unset or the conversation was deleted.
func (s *Store) Active() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.activeID)
}

// ActiveID returns the id of the active conversation, or "".
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Select makes the conversation with the given id active. Returns false
// when no such conversation exists; the selection is left unchanged.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(id) == nil {
		return false
	}
	s.activeID = id
	return true
}

// AppendMessage appends to the active conversation. The first user
// message retitles the conversation (see model.Conversation.Append).
// Returns false when no conversation is active.
func (s *Store) AppendMessage(msg *model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(s.activeID)
	if conv == nil {
		return false
	}
	conv.Append(msg)
	return true
}

// Delete removes a conversation. If it was active the selection is
// cleared; no other conversation is auto-selected.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, conv := range s.conversations {
		if conv.ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			return true
		}
	}
	return false
}

// ClearAll empties the collection, the selection, and the feedback
// tracker together. Feedback keys are meaningless once their
// conversations are gone.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = make([]*model.Conversation, 0)
	s.activeID = ""
	s.feedback = make(map[string]struct{})
}

// List returns lightweight metadata for every conversation,
// most-recent-first.
func (s *Store) List() []model.ConversationMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	metas := make([]model.ConversationMeta, 0, len(s.conversations))
	for _, conv := range s.conversations {
		metas = append(metas, conv.Meta())
	}
	return metas
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// Get returns the conversation with the given id, or nil.
func (s *Store) Get(id string) *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// findLocked looks up a conversation by id. Caller must hold mu.
func (s *Store) findLocked(id string) *model.Conversation {
	if id == "" {
		return nil
	}
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// =============================================================================
// FEEDBACK TRACKER
// =============================================================================

// MarkFeedback records that feedback was submitted for a query id.
// Marking is idempotent.
func (s *Store) MarkFeedback(queryID string) {
	if queryID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback[queryID] = struct{}{}
}

// HasFeedback reports whether feedback was already submitted for a query
// id this session.
func (s *Store) HasFeedback(queryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.feedback[queryID]
	return ok
}
