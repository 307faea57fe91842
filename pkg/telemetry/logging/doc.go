// Package logging configures structured logging for the gateway.
//
// It wraps log/slog with a process-wide level that can be changed at
// runtime (the config watcher uses this to apply log-level changes without
// a restart) and JSON or text output selected by configuration.
package logging
