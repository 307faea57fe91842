package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mentorly-hq/triton/pkg/ai"
)

// curationSystemPrompt asks the model for machine-readable output so the
// handler can return structured resources instead of prose.
const curationSystemPrompt = "You are a learning resource curator. Respond with a JSON " +
	"array of objects, each with \"title\", \"url\", \"kind\" (article, video, course, " +
	"book, or tool) and a one-sentence \"reason\". Respond with the JSON array only."

// CurationHandler recommends learning resources via the AI service.
type CurationHandler struct {
	ai ai.Completer
}

// NewCurationHandler creates the resource curation handler group.
func NewCurationHandler(completer ai.Completer) *CurationHandler {
	return &CurationHandler{ai: completer}
}

type curationRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
	Level string `json:"level"`
}

// Resource is one curated recommendation.
type Resource struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type curationResponse struct {
	Topic     string     `json:"topic"`
	Resources []Resource `json:"resources"`
	Model     string     `json:"model"`
}

// Curate handles POST /curate-resources.
func (h *CurationHandler) Curate(w http.ResponseWriter, r *http.Request) error {
	var req curationRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	if req.Count > 20 {
		return fmt.Errorf("count must be at most 20, got %d", req.Count)
	}
	if req.Level == "" {
		req.Level = "beginner"
	}

	prompt := fmt.Sprintf("Recommend %d resources for learning %q at %s level.",
		req.Count, req.Topic, req.Level)

	completion, err := h.ai.Complete(r.Context(), ai.CompletionRequest{
		System:      curationSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.3,
	})
	if err != nil {
		return fmt.Errorf("resource curation failed: %w", err)
	}

	resources, err := parseResources(completion.Content)
	if err != nil {
		return fmt.Errorf("resource curation failed: %w", err)
	}

	return writeJSON(w, http.StatusOK, curationResponse{
		Topic:     req.Topic,
		Resources: resources,
		Model:     completion.Model,
	})
}

// parseResources extracts the JSON array from the model output. Models
// sometimes wrap the array in a markdown fence despite instructions.
func parseResources(content string) ([]Resource, error) {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "["); start >= 0 {
		if end := strings.LastIndex(content, "]"); end > start {
			content = content[start : end+1]
		}
	}

	var resources []Resource
	if err := json.Unmarshal([]byte(content), &resources); err != nil {
		return nil, fmt.Errorf("model returned malformed resource list: %w", err)
	}
	return resources, nil
}
