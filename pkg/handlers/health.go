package handlers

import (
	"net/http"
	"time"
)

// statusMessage is the fixed liveness payload message.
const statusMessage = "Triton gateway is running"

// healthResponse is the health endpoints' response body. Timestamp is only
// present on /health.
type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HealthHandler serves the two liveness endpoints. Both are pure functions
// of current time and never touch the store or the AI service.
type HealthHandler struct{}

// NewHealthHandler creates the health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Status handles GET / with a fixed payload.
func (h *HealthHandler) Status() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Message: statusMessage,
		})
	})
}

// Health handles GET /health, adding an ISO-8601 timestamp captured at
// response time.
func (h *HealthHandler) Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Message:   statusMessage,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
