package generate

import (
	"errors"
	"fmt"
)

// ErrNoCredentials is returned before any request when no API keys exist.
var ErrNoCredentials = errors.New("no api credentials configured")

// ErrEmptyResponse is returned when the backend answer has no text content.
var ErrEmptyResponse = errors.New("backend response contains no text content")

// HTTPError reports a non-success backend response.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error formats the status and a bounded body excerpt.
func (e *HTTPError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, body)
}

// ParseError reports malformed JSON in the backend's text answer.
type ParseError struct {
	Raw string
	Err error
}

// Error keeps the raw text out of the message; it may be arbitrarily long.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse metadata json: %v", e.Err)
}

// Unwrap exposes the underlying json error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned when every configured credential failed.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

// Error reports the attempt count and the final underlying failure.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d credentials failed, last error: %v", e.Attempts, e.LastErr)
}

// Unwrap exposes the last per-credential error.
func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}
