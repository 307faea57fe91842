package docstore

import (
	"errors"
	"time"
)

// ConnState is the store's connection lifecycle state.
type ConnState int32

const (
	// StateDisconnected is the initial state before Connect is called.
	StateDisconnected ConnState = iota

	// StateConnecting means a connection attempt is in flight.
	StateConnecting

	// StateConnected means the store is ready to serve operations.
	StateConnected

	// StateFailed means the connection attempt errored. The state is
	// observed and logged; it never blocks request admission.
	StateFailed
)

// String returns the lowercase state name for logs.
func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotConnected is returned by store operations invoked before the
// connection attempt has completed successfully.
var ErrNotConnected = errors.New("document store is not connected")

// ErrNotFound is returned when a document ID does not exist.
var ErrNotFound = errors.New("document not found")

// Document is an uploaded document's extracted text plus metadata.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ChatTurn is one question/answer exchange against a document.
type ChatTurn struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"document_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AskedAt    time.Time `json:"asked_at"`
}
