// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package model defines the client-side data structures for the wellness
assistant: conversations, messages, and the answer metadata the backend
attaches to each reply.

A Conversation is an append-only, chronological list of Messages with an
immutable id. Assistant messages produced by a real backend call carry an
AnswerMeta with the query id used for feedback correlation; synthesized
error entries (connection failures, timeouts) carry none and therefore can
never receive feedback.

The package also owns the two normalization contracts the backend leaves
to clients: source relevance figures arrive either as integer percentages
or 0-1 fractions (NormalizeRelevance picks the canonical fraction form by
range detection), and safety advisories may omit any field (WithDefaults
substitutes the documented default strings).
*/
package model
