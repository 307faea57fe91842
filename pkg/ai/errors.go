package ai

import "fmt"

// APIError is a non-2xx response from the AI service that is not worth
// retrying (or that survived the retry budget).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai service returned status %d: %s", e.StatusCode, e.Message)
}

// ConnectionError wraps a transport-level failure reaching the AI service.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to reach ai service: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// ParseError is a malformed or empty response body from the AI service.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse ai service response: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
