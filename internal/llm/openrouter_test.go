package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       OpenRouterConfig
		wantModel string
		wantErr   bool
	}{
		{"routed model kept as-is", OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"}, "anthropic/claude-3-haiku", false},
		{"friendly names are not mapped", OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"}, "google/gemini-2.0-flash-exp", false},
		{"custom base URL", OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b", BaseURL: "https://custom.openrouter.example/v1"}, "meta-llama/llama-3-8b", false},
		{"missing key", OpenRouterConfig{Model: "meta-llama/llama-3-8b"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.wantModel {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.wantModel)
			}
		})
	}
}

// openRouterServer answers every chat completion with content and finish.
func openRouterServer(t *testing.T, content, finish string) *OpenRouterProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("X-Title") != openRouterTitle {
			t.Errorf("X-Title = %q, want %q", r.Header.Get("X-Title"), openRouterTitle)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-test",
			"model": "meta-llama/llama-3-8b",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "meta-llama/llama-3-8b",
		BaseURL: server.URL + "/api/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	return p
}

func TestOpenRouterProvider_Generate(t *testing.T) {
	req := Request{
		Messages:  []Message{{Role: RoleUser, Content: "Where's the play?"}},
		Schema:    testSchema(),
		MaxTokens: 128,
	}

	t.Run("fenced structured output is unwrapped", func(t *testing.T) {
		p := openRouterServer(t, "```json\n{\"position\":\"Shortstop\",\"outs\":1}\n```", "stop")
		resp, err := p.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := string(resp.Content); got != `{"position":"Shortstop","outs":1}` {
			t.Fatalf("content = %s", got)
		}
		if resp.Usage.TotalTokens != 20 {
			t.Fatalf("total tokens = %d, want 20", resp.Usage.TotalTokens)
		}
	})

	t.Run("truncated output", func(t *testing.T) {
		p := openRouterServer(t, `{"position":"Short`, "length")
		_, err := p.Generate(context.Background(), req)
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
		}
		if string(maxTok.Content) != `{"position":"Short` {
			t.Fatalf("partial content = %s", maxTok.Content)
		}
	})

	t.Run("content filter", func(t *testing.T) {
		p := openRouterServer(t, "", "content_filter")
		_, err := p.Generate(context.Background(), req)
		var inv *ErrInvalidResponse
		if !errors.As(err, &inv) {
			t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
		}
	})
}
