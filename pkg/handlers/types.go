package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mentorly-hq/triton/pkg/docstore"
)

// DocumentStore is the slice of the document store the chat handlers need.
type DocumentStore interface {
	SaveDocument(ctx context.Context, name, content string) (*docstore.Document, error)
	GetDocument(ctx context.Context, id string) (*docstore.Document, error)
	ListDocuments(ctx context.Context) ([]docstore.Document, error)
	RecordChat(ctx context.Context, documentID, question, answer string) error
	ChatHistory(ctx context.Context, documentID string) ([]docstore.ChatTurn, error)
}

// maxBodyBytes caps request body reads; uploads carry extracted text, not
// raw binaries.
const maxBodyBytes = 4 << 20

// decodeJSON reads and decodes a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	// Trailing garbage after the document is also malformed input.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid request body: unexpected trailing data")
	}
	return nil
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// writeNotFound emits the JSON 404 envelope used for unmatched paths.
func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"Not found"}` + "\n"))
}

// NotFound returns the fallback handler for paths no route claims.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w)
	})
}
