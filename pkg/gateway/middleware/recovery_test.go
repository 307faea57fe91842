package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("body is not a JSON envelope: %v\n%s", err, w.Body.String())
	}
	return env
}

func TestErrorHandlerWritesEnvelope(t *testing.T) {
	handler := ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("upstream AI service timed out")
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate-plan", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	env := decodeEnvelope(t, w)
	if env.Error != "Something went wrong!" {
		t.Errorf("error = %q, want generic message", env.Error)
	}
	if env.Details != "upstream AI service timed out" {
		t.Errorf("details = %q, want underlying message", env.Details)
	}
}

func TestErrorHandlerSuccessWritesNothingExtra(t *testing.T) {
	handler := ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusCreated)
		_, err := w.Write([]byte(`{"id":"doc-1"}`))
		return err
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pdf/upload", nil))

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if w.Body.String() != `{"id":"doc-1"}` {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestErrorHandlerAfterPartialWriteEscalates(t *testing.T) {
	handler := ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		return errors.New("failed mid-stream")
	})

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected escalation via panic after partial write")
		}
		if err, ok := rec.(error); !ok || !errors.Is(err, http.ErrAbortHandler) {
			t.Errorf("panic value = %v, want http.ErrAbortHandler", rec)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pdf/documents", nil))
}

func TestRecoveryMiddlewareConvertsPanic(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(fmt.Errorf("store connection lost"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pdf/documents", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error != "Something went wrong!" {
		t.Errorf("error = %q", env.Error)
	}
	if env.Details != "store connection lost" {
		t.Errorf("details = %q", env.Details)
	}
}

func TestRecoveryMiddlewarePassesCleanRequests(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestBoundaryEndToEndSingleResponse(t *testing.T) {
	// ErrorHandler inside RecoveryMiddleware: a pre-write failure yields
	// exactly one well-formed 500 response.
	inner := ErrorHandler(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("boom")
	})
	handler := RecoveryMiddleware(inner)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/curate-resources", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error == "" || env.Details == "" {
		t.Errorf("envelope incomplete: %+v", env)
	}
	// The body must be a single JSON document, nothing appended.
	dec := json.NewDecoder(w.Body)
	var first, second any
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("first document: %v", err)
	}
	if err := dec.Decode(&second); err == nil {
		t.Error("unexpected second document in response body")
	}
}
