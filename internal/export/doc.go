// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to files.
//
// Nothing in the client persists between sessions, so export is the one
// explicit action that captures a transcript before it is gone. Two
// formats are supported:
//
//   - Markdown: human-readable, with safety advisories, source citations
//     and response timing rendered the same way the screen shows them.
//   - JSON: a faithful dump of the in-memory conversation.
package export
