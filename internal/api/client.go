// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the wellness assistant backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a transport-level error. Callers of the public
// operations never see one: every failure path is folded into a Result.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "backend unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// User-facing failure messages. These end up verbatim in the transcript,
// so they stay in plain language rather than transport terms.
const (
	msgUnreachable = "Cannot connect to backend. Please ensure the server is running."
	msgTimeout     = "Request timed out. The server might be processing a complex query."
	msgBadPayload  = "Backend returned an unreadable response."
	msgGeneric     = "Something went wrong. Please try again."
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://localhost:3000/api)
	BaseURL string

	// AskTimeout bounds the question round trip, long enough for a full
	// retrieval + generation pass (default: 60s).
	AskTimeout time.Duration

	// FeedbackTimeout bounds feedback submission (default: 10s).
	FeedbackTimeout time.Duration

	// StatusTimeout bounds the informational status probe (default: 5s).
	StatusTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://localhost:3000/api",
		AskTimeout:      60 * time.Second,
		FeedbackTimeout: 10 * time.Second,
		StatusTimeout:   5 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the wellness backend.
//
// All three operations share one contract: a tagged Result with a boolean
// Success and, on failure, a human-readable Err. Transport errors never
// escape this boundary, so callers need no exception handling of their
// own.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	// limiter throttles feedback submission; one click per reply is the
	// expected rate and the backend dedupes by query id anyway.
	limiter *rate.Limiter
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:3000/api"
	}
	if config.AskTimeout == 0 {
		config.AskTimeout = 60 * time.Second
	}
	if config.FeedbackTimeout == 0 {
		config.FeedbackTimeout = 10 * time.Second
	}
	if config.StatusTimeout == 0 {
		config.StatusTimeout = 5 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// ASK
// =============================================================================

// Ask sends a question to the backend and returns the structured answer.
// The returned Result is always well-formed: on any failure Success is
// false and Err carries a displayable message.
func (c *Client) Ask(ctx context.Context, query, sessionID string) AskResult {
	ctx, cancel := context.WithTimeout(ctx, c.config.AskTimeout)
	defer cancel()

	body, err := json.Marshal(askRequest{Query: query, SessionID: sessionID})
	if err != nil {
		return AskResult{Result: failure(msgGeneric)}
	}

	env, cerr := c.post(ctx, "/ask", body)
	if cerr != nil {
		return AskResult{Result: failureFor(cerr)}
	}
	if !env.Success {
		return AskResult{Result: failure(env.errorText())}
	}

	var data askData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return AskResult{Result: failure(msgBadPayload)}
	}

	return AskResult{
		Result: Result{Success: true},
		Answer: data.answerText(),
		Meta:   data.toMeta(),
	}
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SubmitFeedback reports whether an answer was helpful. Failures are
// non-fatal: the caller keeps the feedback prompt visible and may retry.
// Neutral polarity has no wire representation and is treated as a no-op.
func (c *Client) SubmitFeedback(ctx context.Context, queryID string, polarity Polarity, comment string) Result {
	if queryID == "" {
		return failure("feedback requires a query id")
	}
	if polarity == PolarityNeutral {
		return Result{Success: true}
	}
	if !c.limiter.Allow() {
		return failure("feedback submitted too quickly, please retry")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.FeedbackTimeout)
	defer cancel()

	body, err := json.Marshal(feedbackRequest{
		QueryID:   queryID,
		IsHelpful: polarity == PolarityHelpful,
		Comment:   comment,
	})
	if err != nil {
		return failure(msgGeneric)
	}

	env, cerr := c.post(ctx, "/feedback", body)
	if cerr != nil {
		return failureFor(cerr)
	}
	if !env.Success {
		return failure(env.errorText())
	}
	return Result{Success: true}
}

// =============================================================================
// STATUS
// =============================================================================

// Status probes the backend's knowledge-base status. Any failure collapses
// to a single offline signal; the display needs no further detail.
func (c *Client) Status(ctx context.Context) StatusResult {
	ctx, cancel := context.WithTimeout(ctx, c.config.StatusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/rag/status", nil)
	if err != nil {
		return StatusResult{Result: failure("backend offline")}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatusResult{Result: failure("backend offline")}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StatusResult{Result: failure("backend offline")}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || !env.Success {
		return StatusResult{Result: failure("backend offline")}
	}

	var data statusData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return StatusResult{Result: failure("backend offline")}
		}
	}

	return StatusResult{
		Result: Result{Success: true},
		Stats: KnowledgeBaseStats{
			TotalArticles: data.TotalArticles,
			TotalChunks:   data.TotalChunks,
			VectorCount:   data.VectorCount,
			Dimension:     data.Dimension,
		},
	}
}

// =============================================================================
// TRANSPORT
// =============================================================================

// post issues a JSON POST and decodes the shared response envelope.
// Non-2xx responses that still carry a JSON envelope are returned as-is so
// the backend's own error text reaches the user.
func (c *Client) post(ctx context.Context, path string, body []byte) (*envelope, *ClientError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &ClientError{Type: ErrTypeBadResponse, Message: "unexpected status from backend: " + resp.Status}
		}
		return nil, &ClientError{Type: ErrTypeBadResponse, Message: msgBadPayload, Cause: err}
	}
	return &env, nil
}

// failureFor maps a transport error to its user-facing failure Result.
func failureFor(err *ClientError) Result {
	switch err.Type {
	case ErrTypeTimeout:
		return failure(msgTimeout)
	case ErrTypeConnection:
		return failure(msgUnreachable)
	case ErrTypeBadResponse:
		return failure(err.Message)
	default:
		return failure(err.Error())
	}
}

// =============================================================================
// ERROR PREDICATES
// =============================================================================

// IsTimeout reports whether the error is a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTimeout
}

// IsUnreachable reports whether the error indicates the backend is down.
func IsUnreachable(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeConnection
}
