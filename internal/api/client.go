// Package api is the REST client for the Opti-Scholar backend. Every call is
// a single attempt with a fixed timeout: no retries, no caching. Failures are
// normalized into RequestError (non-2xx with a parsed detail message) or
// NetworkError (no response), and every failure is logged with the endpoint
// name for diagnostics.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"optischolar/internal/logging"
)

// DefaultTimeout bounds each request. The backend is assumed unreliable in
// demo deployments, so a hung connection must not freeze a view forever.
const DefaultTimeout = 10 * time.Second

// Client talks to the backend under a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8000/api/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// errorBody is the backend's error envelope. FastAPI-style backends use
// "detail"; some handlers use "message".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Call performs an HTTP request against the backend. body, when non-nil, is
// JSON-encoded; out, when non-nil, receives the decoded JSON response.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out interface{}) error {
	reqID := uuid.NewString()[:8]

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s: %w", endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logging.APIError("[req:%s] %s %s: %v", reqID, method, endpoint, err)
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			if eb.Detail != "" {
				msg = eb.Detail
			} else if eb.Message != "" {
				msg = eb.Message
			}
		}
		logging.APIError("[req:%s] %s %s: %d %s", reqID, method, endpoint, resp.StatusCode, msg)
		return &RequestError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logging.APIError("[req:%s] %s %s: bad response body: %v", reqID, method, endpoint, err)
		return &RequestError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    "malformed response body",
		}
	}
	return nil
}

// Get is shorthand for a GET Call.
func (c *Client) Get(ctx context.Context, endpoint string, out interface{}) error {
	return c.Call(ctx, http.MethodGet, endpoint, nil, out)
}

// Put is shorthand for a PUT Call.
func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPut, endpoint, body, out)
}

// Post is shorthand for a POST Call.
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPost, endpoint, body, out)
}
