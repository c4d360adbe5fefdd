// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package api implements the HTTP client for the Yoga RAG wellness backend.

The backend exposes three JSON endpoints under a configurable base URL
(default http://localhost:3000/api):

	POST /ask        {query, sessionId}            -> answer payload
	POST /feedback   {queryId, isHelpful, comment} -> acknowledgement
	GET  /rag/status                               -> knowledge-base stats

Every operation returns a tagged Result instead of an error: Success is a
boolean and Err, when Success is false, is a ready-to-display message.
Connection refusal, timeouts, non-2xx statuses, and success:false
envelopes are all folded into that shape at this boundary, so the layers
above never branch on transport error types.

Each operation enforces its own bounded wait: ask allows a full
retrieval + generation round trip (60s), feedback is short (10s), and the
status probe is nearly immediate (5s). Expired calls are abandoned and
reported as failures; nothing retries automatically.

The package also normalizes the backend's per-route inconsistencies:
relevance figures arrive as integer percentages or 0-1 fractions,
response times as integers or "850ms" strings, and safety advisories
either nested or flattened. Callers only ever see the canonical model
types.
*/
package api
