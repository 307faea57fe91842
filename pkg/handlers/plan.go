package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"mentorly-hq/triton/pkg/ai"
)

// planSystemPrompt constrains the model to structured study plans.
const planSystemPrompt = "You are a study planner. Produce a week-by-week study plan " +
	"for the requested topic, sized to the learner's level and time budget. " +
	"Use plain markdown with one section per week."

// PlanHandler generates study plans via the AI service.
type PlanHandler struct {
	ai ai.Completer
}

// NewPlanHandler creates the plan generation handler group.
func NewPlanHandler(completer ai.Completer) *PlanHandler {
	return &PlanHandler{ai: completer}
}

type planRequest struct {
	Topic string `json:"topic"`
	Weeks int    `json:"weeks"`
	Level string `json:"level"`
}

type planResponse struct {
	Topic string `json:"topic"`
	Weeks int    `json:"weeks"`
	Plan  string `json:"plan"`
	Model string `json:"model"`
}

// Generate handles POST /generate-plan.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) error {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if req.Weeks <= 0 {
		req.Weeks = 4
	}
	if req.Weeks > 52 {
		return fmt.Errorf("weeks must be at most 52, got %d", req.Weeks)
	}
	if req.Level == "" {
		req.Level = "beginner"
	}

	prompt := fmt.Sprintf("Create a %d-week study plan for %q at %s level.",
		req.Weeks, req.Topic, req.Level)

	completion, err := h.ai.Complete(r.Context(), ai.CompletionRequest{
		System:      planSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	return writeJSON(w, http.StatusOK, planResponse{
		Topic: req.Topic,
		Weeks: req.Weeks,
		Plan:  completion.Content,
		Model: completion.Model,
	})
}
