// Package docstore provides the durable document store backing the
// document-chat routes.
//
// The store is SQLite-backed and connects asynchronously: the gateway binds
// its listening socket first and launches Connect in a goroutine, logging
// the outcome without gating traffic on it. Operations invoked before the
// store reaches StateConnected fail with ErrNotConnected, which surfaces
// through the error boundary like any other handler failure.
package docstore
