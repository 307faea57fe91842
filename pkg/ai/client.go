package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mentorly-hq/triton/pkg/config"
	"mentorly-hq/triton/pkg/telemetry/metrics"
)

// Completer is the capability handler groups need from the AI service.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest is a provider-agnostic completion request.
type CompletionRequest struct {
	// System sets the assistant's role and output constraints.
	System string

	// Prompt is the user-facing request text.
	Prompt string

	// MaxTokens caps the completion length. Zero means the service default.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64
}

// CompletionResponse carries the completion text and usage accounting.
type CompletionResponse struct {
	Content      string
	Model        string
	PromptTokens int
	OutputTokens int
}

// Client is the HTTP client for the chat-completions API.
type Client struct {
	config    config.AIConfig
	client    *http.Client
	collector *metrics.Collector
}

// NewClient creates an AI service client. collector may be nil.
func NewClient(cfg config.AIConfig, collector *metrics.Collector) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ai base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config:    cfg,
		client:    &http.Client{Transport: transport, Timeout: cfg.Timeout},
		collector: collector,
	}, nil
}

// wire types for the chat-completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a completion request, retrying transient failures with
// exponential backoff up to the configured retry budget.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := c.complete(ctx, req)
	if c.collector != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.collector.ObserveAIRequest(status, time.Since(start))
	}
	return resp, err
}

func (c *Client) complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode completion request: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			slog.Debug("retrying ai request",
				"attempt", attempt,
				"max_retries", c.config.MaxRetries,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = &ConnectionError{Cause: err}
			slog.Warn("ai request failed, will retry", "attempt", attempt+1, "error", err)
			continue
		}

		result, retryable, err := c.decodeResponse(resp)
		if err == nil {
			return result, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
		slog.Warn("ai request failed, will retry", "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("ai request failed after %d retries: %w", c.config.MaxRetries, lastErr)
}

// decodeResponse consumes and closes the response body. The second return
// value reports whether the failure is worth retrying.
func (c *Client) decodeResponse(resp *http.Response) (*CompletionResponse, bool, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &ConnectionError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
		// Rate limiting and server faults are transient; everything else
		// (auth, validation) will not improve on retry.
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, apiErr
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false, &ParseError{Cause: err}
	}
	if len(decoded.Choices) == 0 {
		return nil, false, &ParseError{Cause: fmt.Errorf("response contained no choices")}
	}

	return &CompletionResponse{
		Content:      decoded.Choices[0].Message.Content,
		Model:        decoded.Model,
		PromptTokens: decoded.Usage.PromptTokens,
		OutputTokens: decoded.Usage.CompletionTokens,
	}, false, nil
}

// errorMessage extracts the service's error message when the body is the
// standard error document, falling back to the raw body.
func errorMessage(raw []byte) string {
	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Error != nil {
		return decoded.Error.Message
	}
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return string(raw)
}
