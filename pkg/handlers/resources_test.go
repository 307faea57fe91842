package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const resourceList = `[{"title":"The Go Blog","url":"https://go.dev/blog","kind":"article","reason":"First-party articles."}]`

func TestCurate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		content string
		wantErr bool
	}{
		{name: "valid", body: `{"topic":"go testing","count":3}`, content: resourceList},
		{name: "fenced model output", body: `{"topic":"go"}`, content: "```json\n" + resourceList + "\n```"},
		{name: "missing topic", body: `{"count":3}`, wantErr: true},
		{name: "count too large", body: `{"topic":"go","count":21}`, wantErr: true},
		{name: "model returns prose", body: `{"topic":"go"}`, content: "Here are some resources...", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{content: tt.content}
			h := NewCurationHandler(completer)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/curate-resources", strings.NewReader(tt.body))
			err := h.Curate(rec, req)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if rec.Body.Len() != 0 {
					t.Errorf("handler wrote a body before failing: %q", rec.Body.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("Curate returned %v", err)
			}

			var resp curationResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(resp.Resources) != 1 {
				t.Fatalf("resources = %d, want 1", len(resp.Resources))
			}
			if resp.Resources[0].Title != "The Go Blog" {
				t.Errorf("title = %q", resp.Resources[0].Title)
			}
		})
	}
}

func TestCurateDefaultCount(t *testing.T) {
	completer := &fakeCompleter{content: resourceList}
	h := NewCurationHandler(completer)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/curate-resources", strings.NewReader(`{"topic":"go"}`))
	if err := h.Curate(rec, req); err != nil {
		t.Fatalf("Curate returned %v", err)
	}
	if !strings.Contains(completer.lastReq.Prompt, "5 resources") {
		t.Errorf("default count not applied, prompt: %q", completer.lastReq.Prompt)
	}
}

func TestParseResources(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{name: "bare array", content: resourceList, want: 1},
		{name: "fenced", content: "```json\n" + resourceList + "\n```", want: 1},
		{name: "leading prose", content: "Sure!\n" + resourceList, want: 1},
		{name: "empty array", content: "[]", want: 0},
		{name: "no array", content: "no json here", wantErr: true},
		{name: "object not array", content: `{"title":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResources(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResources returned %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
