// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionIDStableWithinSession(t *testing.T) {
	m := NewManager()

	id := m.SessionID()
	assert.True(t, strings.HasPrefix(id, "session_"))
	assert.Equal(t, id, m.SessionID(), "session id must never change")
}

func TestSessionIDsDistinctAcrossSessions(t *testing.T) {
	a := NewManager()
	b := NewManager()
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestActivityTracking(t *testing.T) {
	m := NewManager()
	time.Sleep(10 * time.Millisecond)

	idleBefore := m.IdleTime()
	m.RecordActivity()
	idleAfter := m.IdleTime()

	assert.Less(t, idleAfter, idleBefore)
	assert.GreaterOrEqual(t, m.Duration(), idleAfter)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{60 * time.Second, "1m"},
		{95 * time.Second, "1m 35s"},
		{0, "0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}
}
