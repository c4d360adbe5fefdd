// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	require.NotNil(t, theme)

	// Spot-check that styles are initialized, not zero values.
	assert.True(t, theme.HeaderTitle.GetBold())
	assert.True(t, theme.SafetyTitle.GetBold())
	assert.True(t, theme.BackendOnline.GetBold())
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(40, 24)
	assert.Equal(t, LayoutNarrow, theme.GetLayoutMode())

	theme.SetSize(80, 24)
	assert.Equal(t, LayoutMedium, theme.GetLayoutMode())

	theme.SetSize(140, 40)
	assert.Equal(t, LayoutWide, theme.GetLayoutMode())
}

func TestRenderStatus(t *testing.T) {
	ok := RenderStatus(true, "backend online")
	assert.Contains(t, ok, StatusIndicators.Success)
	assert.Contains(t, ok, "backend online")

	bad := RenderStatus(false, "backend offline")
	assert.Contains(t, bad, StatusIndicators.Error)
}
