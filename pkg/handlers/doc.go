// Package handlers implements the gateway's route handler groups: plan
// generation, resource curation, document chat, and the health endpoints.
//
// Business handlers report failure as explicit error values; they never
// write error responses themselves. The middleware.ErrorHandler adapter
// funnels those errors to the shared error boundary, which guarantees the
// uniform failure envelope. Health handlers are infallible and implement
// http.Handler directly.
package handlers
