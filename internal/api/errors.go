package api

import "fmt"

// RequestError is returned when the backend answers with a non-2xx status.
// Message carries the human-readable detail from the error body when one
// could be parsed, or a generic fallback otherwise.
type RequestError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s failed (%d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// NetworkError is returned when no HTTP response was received at all
// (connection refused, DNS failure, timeout). Callers decide whether to
// substitute a zero-value payload or surface the failure.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure on %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
