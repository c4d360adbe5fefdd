// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the root Bubble Tea model for the sattva TUI.
//
// The model owns three screens: the chat transcript, the conversation
// switcher overlay, and the clear-all confirmation. All backend I/O goes
// through command creators in commands.go, which run on background
// goroutines and deliver typed messages back into Update. The model
// itself never blocks.
//
// Concurrency rules:
//
//   - At most one ask request is in flight at a time. Submitting while
//     busy shows a notice instead of queueing.
//   - Ask results carry the originating conversation id, so an answer
//     that arrives after the user switched chats still lands in the
//     transcript it belongs to.
//   - Feedback keys (y/n) fire only while the input line is empty and
//     only for the latest answer that has not received feedback yet.
//   - The backend status indicator refreshes once at startup and then
//     only on an explicit user refresh (ctrl+r). Nothing polls in the
//     background.
package chat
