package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mentorly-hq/triton/pkg/ai"
	"mentorly-hq/triton/pkg/docstore"
)

// chatSystemPrompt grounds the model's answers in the uploaded document.
const chatSystemPrompt = "You answer questions about a document the user uploaded. " +
	"Answer only from the document content provided. If the document does not " +
	"contain the answer, say so."

// maxDocumentChars caps how much of a document is inlined into a chat
// prompt. Long documents are truncated rather than rejected.
const maxDocumentChars = 48_000

// PDFHandler serves document upload, listing, and chat.
type PDFHandler struct {
	store DocumentStore
	ai    ai.Completer
}

// NewPDFHandler creates the document chat handler group.
func NewPDFHandler(store DocumentStore, completer ai.Completer) *PDFHandler {
	return &PDFHandler{store: store, ai: completer}
}

type uploadRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type chatRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

type chatResponse struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Model      string `json:"model"`
}

type documentListResponse struct {
	Documents []docstore.Document `json:"documents"`
}

// Upload handles POST /pdf/upload. Text extraction happens client-side;
// the body carries the already-extracted text.
func (h *PDFHandler) Upload(w http.ResponseWriter, r *http.Request) error {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("content is required")
	}

	doc, err := h.store.SaveDocument(r.Context(), req.Name, req.Content)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	// The stored text is not echoed back; the client already has it.
	doc.Content = ""
	return writeJSON(w, http.StatusCreated, doc)
}

// Chat handles POST /pdf/chat.
func (h *PDFHandler) Chat(w http.ResponseWriter, r *http.Request) error {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	if req.DocumentID == "" {
		return fmt.Errorf("document_id is required")
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return fmt.Errorf("question is required")
	}

	doc, err := h.store.GetDocument(r.Context(), req.DocumentID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("document %s not found", req.DocumentID)
		}
		return fmt.Errorf("loading document: %w", err)
	}

	content := doc.Content
	if len(content) > maxDocumentChars {
		content = content[:maxDocumentChars]
	}

	prompt := fmt.Sprintf("Document %q:\n\n%s\n\nQuestion: %s", doc.Name, content, req.Question)

	completion, err := h.ai.Complete(r.Context(), ai.CompletionRequest{
		System:      chatSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.2,
	})
	if err != nil {
		return fmt.Errorf("document chat failed: %w", err)
	}

	if err := h.store.RecordChat(r.Context(), doc.ID, req.Question, completion.Content); err != nil {
		return fmt.Errorf("recording chat turn: %w", err)
	}

	return writeJSON(w, http.StatusOK, chatResponse{
		DocumentID: doc.ID,
		Question:   req.Question,
		Answer:     completion.Content,
		Model:      completion.Model,
	})
}

// List handles GET /pdf/documents.
func (h *PDFHandler) List(w http.ResponseWriter, r *http.Request) error {
	docs, err := h.store.ListDocuments(r.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if docs == nil {
		docs = []docstore.Document{}
	}
	return writeJSON(w, http.StatusOK, documentListResponse{Documents: docs})
}

// History handles GET /pdf/documents/{id}/history.
func (h *PDFHandler) History(w http.ResponseWriter, r *http.Request) error {
	id := r.PathValue("id")
	if id == "" {
		return fmt.Errorf("document id is required")
	}

	if _, err := h.store.GetDocument(r.Context(), id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("document %s not found", id)
		}
		return fmt.Errorf("loading document: %w", err)
	}

	turns, err := h.store.ChatHistory(r.Context(), id)
	if err != nil {
		return fmt.Errorf("loading chat history: %w", err)
	}
	if turns == nil {
		turns = []docstore.ChatTurn{}
	}
	return writeJSON(w, http.StatusOK, map[string][]docstore.ChatTurn{"history": turns})
}
