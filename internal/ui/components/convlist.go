// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/sattva-tui/internal/ui/styles"
	"github.com/morganforge/sattva-tui/internal/util"
)

// =============================================================================
// CONVERSATION LIST COMPONENT
// =============================================================================

// ConvItem is one row of the conversation list overlay.
type ConvItem struct {
	ID           string
	Title        string
	MessageCount int
	CreatedAt    time.Time
	Active       bool
}

// ConvList is the conversation switcher overlay. Rows are ordered most
// recent first, matching the store.
type ConvList struct {
	items  []ConvItem
	cursor int
	width  int

	theme *styles.Theme
}

// NewConvList creates an empty conversation list.
func NewConvList(theme *styles.Theme) ConvList {
	return ConvList{theme: theme}
}

// SetItems replaces the rows and clamps the cursor.
func (c *ConvList) SetItems(items []ConvItem) {
	c.items = items
	if c.cursor >= len(items) {
		c.cursor = len(items) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// SetWidth updates the overlay width.
func (c *ConvList) SetWidth(width int) {
	c.width = width
}

// Len returns the number of rows.
func (c *ConvList) Len() int {
	return len(c.items)
}

// MoveUp moves the cursor up one row.
func (c *ConvList) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (c *ConvList) MoveDown() {
	if c.cursor < len(c.items)-1 {
		c.cursor++
	}
}

// Selected returns the conversation id under the cursor, or "".
func (c *ConvList) Selected() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[c.cursor].ID
}

// View renders the overlay.
func (c ConvList) View() string {
	width := c.width
	if width == 0 {
		width = 60
	}
	boxWidth := minInt(width-4, 70)

	if len(c.items) == 0 {
		empty := c.theme.ConvMeta.Render("No conversations yet. Press esc to go back.")
		return c.theme.ConvList.Width(boxWidth).Render(
			c.theme.HeaderTitle.Render("Conversations") + "\n\n" + empty)
	}

	rows := make([]string, 0, len(c.items)+2)
	rows = append(rows, c.theme.HeaderTitle.Render("Conversations"), "")

	for i, item := range c.items {
		title := util.TruncateWidth(item.Title, boxWidth-24)

		line := title
		if item.Active {
			line = styles.StatusIndicators.Active + " " + line
		} else {
			line = "  " + line
		}

		meta := "  " + strconv.Itoa(item.MessageCount) + " msgs, " + item.CreatedAt.Format("15:04")

		var row string
		if i == c.cursor {
			row = c.theme.ConvItemSelected.Render(line) + c.theme.ConvMeta.Render(meta)
		} else if item.Active {
			row = c.theme.ConvItemActive.Render(line) + c.theme.ConvMeta.Render(meta)
		} else {
			row = c.theme.ConvItem.Render(line) + c.theme.ConvMeta.Render(meta)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "",
		c.theme.ShortcutKey.Render("enter")+c.theme.ShortcutDesc.Render(" open  ")+
			c.theme.ShortcutKey.Render("d")+c.theme.ShortcutDesc.Render(" delete  ")+
			c.theme.ShortcutKey.Render("esc")+c.theme.ShortcutDesc.Render(" back"))

	return c.theme.ConvList.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
