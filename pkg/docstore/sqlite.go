package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// Store is the SQLite-backed document store.
//
// All methods are safe for concurrent use. Connect may be called from a
// goroutine while the HTTP server is already accepting traffic; until it
// completes, every operation returns ErrNotConnected.
type Store struct {
	path   string
	logger *slog.Logger

	state atomic.Int32

	mu        sync.RWMutex
	db        *sql.DB
	closeOnce sync.Once
}

// New creates a Store for the database file at path. No I/O happens until
// Connect.
func New(path string) *Store {
	return &Store{
		path:   path,
		logger: slog.Default().With("component", "docstore"),
	}
}

// State returns the current connection state.
func (s *Store) State() ConnState {
	return ConnState(s.state.Load())
}

// Connect opens the database, verifies it with a ping, and applies the
// schema. It transitions Disconnected → Connecting → Connected on success
// or → Failed on error, logging either way. It is intended to run in its
// own goroutine during startup.
func (s *Store) Connect(ctx context.Context) error {
	s.state.Store(int32(StateConnecting))
	s.logger.Info("connecting to document store", "path", s.path)

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", s.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		s.state.Store(int32(StateFailed))
		s.logger.Error("document store connection failed", "error", err)
		return fmt.Errorf("failed to open document store: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		s.state.Store(int32(StateFailed))
		s.logger.Error("document store connection failed", "error", err)
		return fmt.Errorf("failed to ping document store: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		s.state.Store(int32(StateFailed))
		s.logger.Error("document store schema setup failed", "error", err)
		return fmt.Errorf("failed to apply document store schema: %w", err)
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	s.state.Store(int32(StateConnected))

	s.logger.Info("document store connected", "path", s.path)
	return nil
}

// Close shuts the database down. Safe to call multiple times and before
// Connect has completed.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.db != nil {
			err = s.db.Close()
			s.db = nil
		}
		s.state.Store(int32(StateDisconnected))
	})
	return err
}

// conn returns the live database handle, or ErrNotConnected.
func (s *Store) conn() (*sql.DB, error) {
	if s.State() != StateConnected {
		return nil, ErrNotConnected
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotConnected
	}
	return s.db, nil
}

// SaveDocument persists a document and returns it with ID and upload time
// assigned.
func (s *Store) SaveDocument(ctx context.Context, name, content string) (*Document, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		ID:         uuid.NewString(),
		Name:       name,
		Content:    content,
		UploadedAt: time.Now().UTC(),
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO documents (id, name, content, uploaded_at) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Name, doc.Content, doc.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return doc, nil
}

// GetDocument loads a document by ID, including its content.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var doc Document
	err = db.QueryRowContext(ctx,
		`SELECT id, name, content, uploaded_at FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Name, &doc.Content, &doc.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %q: %w", id, err)
	}

	return &doc, nil
}

// ListDocuments returns all documents, newest first, without content.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, uploaded_at FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// RecordChat appends a question/answer turn for a document.
func (s *Store) RecordChat(ctx context.Context, documentID, question, answer string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO chat_turns (document_id, question, answer, asked_at) VALUES (?, ?, ?, ?)`,
		documentID, question, answer, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record chat turn: %w", err)
	}
	return nil
}

// ChatHistory returns a document's chat turns in ask order.
func (s *Store) ChatHistory(ctx context.Context, documentID string) ([]ChatTurn, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, document_id, question, answer, asked_at
		 FROM chat_turns WHERE document_id = ? ORDER BY id ASC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	turns := make([]ChatTurn, 0)
	for rows.Next() {
		var turn ChatTurn
		if err := rows.Scan(&turn.ID, &turn.DocumentID, &turn.Question, &turn.Answer, &turn.AskedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// PruneBefore deletes documents uploaded before cutoff (chat turns cascade)
// and reports how many documents were removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM documents WHERE uploaded_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune documents: %w", err)
	}
	return result.RowsAffected()
}
