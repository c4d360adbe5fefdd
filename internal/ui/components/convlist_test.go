// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/morganforge/sattva-tui/internal/ui/styles"
)

func TestConvListNavigation(t *testing.T) {
	list := NewConvList(styles.NewTheme())
	list.SetItems([]ConvItem{
		{ID: "c1", Title: "Back pain", CreatedAt: time.Now()},
		{ID: "c2", Title: "Morning routine", CreatedAt: time.Now()},
		{ID: "c3", Title: "Breathing", CreatedAt: time.Now()},
	})

	assert.Equal(t, "c1", list.Selected())

	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, "c3", list.Selected())

	// Cursor clamps at the bottom.
	list.MoveDown()
	assert.Equal(t, "c3", list.Selected())

	list.MoveUp()
	assert.Equal(t, "c2", list.Selected())
}

func TestConvListCursorClampsOnShrink(t *testing.T) {
	list := NewConvList(styles.NewTheme())
	list.SetItems([]ConvItem{
		{ID: "c1", Title: "One"},
		{ID: "c2", Title: "Two"},
	})
	list.MoveDown()
	assert.Equal(t, "c2", list.Selected())

	// Deleting the selected row must not leave the cursor out of range.
	list.SetItems([]ConvItem{{ID: "c1", Title: "One"}})
	assert.Equal(t, "c1", list.Selected())
}

func TestConvListEmpty(t *testing.T) {
	list := NewConvList(styles.NewTheme())
	assert.Equal(t, "", list.Selected())
	assert.Contains(t, list.View(), "No conversations yet")
}
