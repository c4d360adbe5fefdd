// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the sattva TUI.
//
// Components are pure renderers: they hold display state and a theme
// reference, and expose View methods that return styled strings. All
// interaction logic lives in the chat model; components never handle
// key events themselves.
//
// The message component owns the on-screen answer layout, which always
// renders in this order:
//
//  1. safety advisory (when the answer is flagged)
//  2. answer text
//  3. source citations
//  4. response time
//  5. feedback prompt (latest answer only)
package components
