// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the sattva TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark
// detection. The palette leans on calm greens and teals to match the
// wellness domain, with amber reserved for safety advisories and rose
// for errors.
//
// Theme is the single source of truth for every style in the UI; views
// never construct lipgloss styles inline.
package styles
