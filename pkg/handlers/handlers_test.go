package handlers

import (
	"context"
	"fmt"
	"time"

	"mentorly-hq/triton/pkg/ai"
	"mentorly-hq/triton/pkg/docstore"
)

// fakeCompleter records the last request and replies with canned content.
type fakeCompleter struct {
	content string
	err     error
	lastReq ai.CompletionRequest
	calls   int
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	f.lastReq = req
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ai.CompletionResponse{Content: f.content, Model: "test-model"}, nil
}

// fakeStore is an in-memory DocumentStore for handler tests.
type fakeStore struct {
	docs      map[string]docstore.Document
	turns     map[string][]docstore.ChatTurn
	connected bool
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:      make(map[string]docstore.Document),
		turns:     make(map[string][]docstore.ChatTurn),
		connected: true,
	}
}

func (s *fakeStore) SaveDocument(_ context.Context, name, content string) (*docstore.Document, error) {
	if !s.connected {
		return nil, docstore.ErrNotConnected
	}
	s.nextID++
	doc := docstore.Document{
		ID:         fmt.Sprintf("doc-%d", s.nextID),
		Name:       name,
		Content:    content,
		UploadedAt: time.Now().UTC(),
	}
	s.docs[doc.ID] = doc
	return &doc, nil
}

func (s *fakeStore) GetDocument(_ context.Context, id string) (*docstore.Document, error) {
	if !s.connected {
		return nil, docstore.ErrNotConnected
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return &doc, nil
}

func (s *fakeStore) ListDocuments(_ context.Context) ([]docstore.Document, error) {
	if !s.connected {
		return nil, docstore.ErrNotConnected
	}
	var out []docstore.Document
	for _, doc := range s.docs {
		doc.Content = ""
		out = append(out, doc)
	}
	return out, nil
}

func (s *fakeStore) RecordChat(_ context.Context, documentID, question, answer string) error {
	if !s.connected {
		return docstore.ErrNotConnected
	}
	s.turns[documentID] = append(s.turns[documentID], docstore.ChatTurn{
		ID:         int64(len(s.turns[documentID]) + 1),
		DocumentID: documentID,
		Question:   question,
		Answer:     answer,
		AskedAt:    time.Now().UTC(),
	})
	return nil
}

func (s *fakeStore) ChatHistory(_ context.Context, documentID string) ([]docstore.ChatTurn, error) {
	if !s.connected {
		return nil, docstore.ErrNotConnected
	}
	return s.turns[documentID], nil
}
