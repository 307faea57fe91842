package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// ErrorEnvelope is the uniform JSON body for unhandled failures. The details
// field carries the underlying message only; full diagnostics stay in the
// server log.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// genericErrorMessage is the client-facing error string for every handler
// failure. Causes are deliberately not distinguished in responses.
const genericErrorMessage = "Something went wrong!"

// Handler is a route handler that reports failure as an explicit error value
// instead of writing an error response itself.
type Handler func(http.ResponseWriter, *http.Request) error

// ErrorHandler adapts a fallible Handler into an http.Handler, forwarding
// any returned error to the error boundary.
//
// If the handler fails before writing anything, the boundary emits the
// ErrorEnvelope with status 500 and the request terminates with exactly one
// well-formed response. If bytes were already sent, writing again would
// corrupt the stream, so the boundary escalates to the server's abort path
// instead.
func ErrorHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)

		err := h(rw, r)
		if err == nil {
			return
		}

		slog.ErrorContext(r.Context(), "handler failed",
			"error", err,
			"request_id", GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)

		if rw.Written() {
			// Headers are out the door; defer to the platform's unwind
			// rather than attempt a second response.
			panic(http.ErrAbortHandler)
		}

		writeErrorEnvelope(rw, err.Error())
	})
}

// RecoveryMiddleware is the outermost pipeline stage. It converts panics in
// any downstream stage into the same uniform 500 envelope, subject to the
// same already-written check as ErrorHandler.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// http.ErrAbortHandler is the sanctioned way to abort a
			// response; let the server handle it quietly.
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", rec,
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			if rw.Written() {
				panic(http.ErrAbortHandler)
			}

			writeErrorEnvelope(rw, fmt.Sprint(rec))
		}()

		next.ServeHTTP(rw, r)
	})
}

// writeErrorEnvelope emits the uniform failure response.
func writeErrorEnvelope(w http.ResponseWriter, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error:   genericErrorMessage,
		Details: details,
	})
}
