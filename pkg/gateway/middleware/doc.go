// Package middleware provides the gateway's HTTP request pipeline stages.
//
// Stages compose as func(http.Handler) http.Handler and execute, outermost
// first, in the order: recovery (error boundary), logging, request ID,
// metrics, client identity resolution, CORS, global rate limit, and then
// the router. AI-invoking routes additionally pass the stricter AI rate
// limit before reaching their handler group.
//
// A stage either passes the request to the next handler or short-circuits
// with a complete response (rate-limit rejection, CORS preflight). Handler
// failures are explicit error values funneled to the error boundary via
// ErrorHandler; they never write partial responses themselves.
package middleware
