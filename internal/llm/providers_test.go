package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func hintSchema() *Schema {
	return &Schema{
		Name: "test-hint",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hint":      map[string]any{"type": "string"},
				"next_step": map[string]any{"type": "string"},
			},
			"required": []string{"hint", "next_step"},
		},
	}
}

func jsonServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func TestAnthropicProvider(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, anthropicMessage(`{"hint":"Halve it","next_step":"Draw it"}`, "end_turn"))
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test", Model: "claude-haiku", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), Request{
		System:    "tutor",
		Messages:  []Message{{Role: RoleUser, Content: "1/2 + 1/2"}},
		Schema:    hintSchema(),
		MaxTokens: 128,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Usage.TotalTokens != 52 || resp.StopReason != "end" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAnthropicProviderTruncated(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, anthropicMessage(`{"hint":"Hal`, "max_tokens"))
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Generate(context.Background(), Request{Schema: hintSchema(), MaxTokens: 4})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("err = %v, want ErrMaxTokensExceeded", err)
	}
}

func openaiCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 10, "total_tokens": 40},
	}
}

func TestOpenAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr any
	}{
		{"ok", http.StatusOK, openaiCompletion(`{"hint":"a","next_step":"b"}`, "stop"), nil},
		{"schema mismatch", http.StatusOK, openaiCompletion(`{"hint":"a"}`, "stop"), new(*ErrInvalidResponse)},
		{"truncated", http.StatusOK, openaiCompletion(`{"hi`, "length"), new(*ErrMaxTokensExceeded)},
		{"rate limited", http.StatusTooManyRequests, map[string]any{"error": map[string]any{"message": "slow down"}}, new(*ErrRateLimit)},
		{"server error", http.StatusInternalServerError, map[string]any{"error": map[string]any{"message": "boom"}}, new(*ErrProviderUnavailable)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, tt.status, tt.body)
			p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
			if err != nil {
				t.Fatal(err)
			}
			resp, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "q"}},
				Schema:   hintSchema(),
			})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Generate: %v", err)
				}
				if resp.Usage.TotalTokens != 40 || resp.Model != "gpt-4o-mini" {
					t.Errorf("resp = %+v", resp)
				}
				return
			}
			if !errors.As(err, tt.wantErr) {
				t.Errorf("err = %T %v, want %T", err, err, tt.wantErr)
			}
		})
	}
}

func TestOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Error("expected error for missing key")
	}
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint":  map[string]any{"type": "string", "description": "d"},
			"level": map[string]any{"type": "integer", "enum": []any{"1", "2"}},
			"steps": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"hint"},
	})

	if s.Type != "OBJECT" || len(s.Properties) != 3 {
		t.Fatalf("schema = %+v", s)
	}
	if s.Properties["hint"].Description != "d" || s.Properties["level"].Type != "INTEGER" {
		t.Errorf("properties = %+v", s.Properties)
	}
	if len(s.Properties["level"].Enum) != 2 || s.Properties["steps"].Items.Type != "STRING" {
		t.Errorf("enum/items not converted")
	}
	if len(s.Required) != 1 || s.Required[0] != "hint" {
		t.Errorf("Required = %v", s.Required)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name, in, want string
		aliases        map[string]string
	}{
		{"anthropic alias", "claude-sonnet", "claude-sonnet-4-20250514", anthropicModels},
		{"gemini alias", "gemini-flash", "gemini-2.0-flash", geminiModels},
		{"pass-through", "gpt-4.1", "gpt-4.1", openaiModels},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("%s: resolveModel(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}
