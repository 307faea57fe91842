// Package ai provides the HTTP client for the upstream AI completion
// service used by the plan, curation, and document-chat handler groups.
//
// The client speaks the chat-completions wire format, retries transient
// failures (network errors, 429, 5xx) with exponential backoff, and maps
// non-transient failures to typed errors so callers can log them precisely
// before the error boundary collapses them into a generic response.
package ai
