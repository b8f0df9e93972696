package hint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/adaptly/internal/llm"
)

// ErrNoHint means the hint source answered but had no hint to give.
var ErrNoHint = errors.New("no hint available")

// Fetcher returns raw hint text for a question prompt.
type Fetcher interface {
	FetchHint(ctx context.Context, prompt string) (string, error)
}

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// APIFetcher calls POST {BaseURL}/api/ai/hint.
type APIFetcher struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource // optional
}

// NewAPIFetcher returns a fetcher with a timeout-bound HTTP client.
func NewAPIFetcher(baseURL string, timeout time.Duration, tokens TokenSource) *APIFetcher {
	return &APIFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
	}
}

type hintRequest struct {
	Prompt string `json:"prompt"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

func (f *APIFetcher) FetchHint(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(hintRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+"/api/ai/hint", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if f.Tokens != nil {
		if tok, ok := f.Tokens.Token(ctx); ok && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	client := f.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request hint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d", ErrNoHint, resp.StatusCode)
	}

	var out hintResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode hint: %w", err)
	}
	if strings.TrimSpace(out.Hint) == "" {
		return "", ErrNoHint
	}
	return out.Hint, nil
}

// LLMFetcher generates hints locally with an LLM provider.
type LLMFetcher struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewLLMFetcher returns a fetcher backed by provider.
func NewLLMFetcher(provider llm.Provider) *LLMFetcher {
	return &LLMFetcher{provider: provider, maxTokens: 512, temperature: 0.4}
}

const hintSystemPrompt = `You are a patient tutor helping a student with fractions.
Give a short hint that moves the student toward the answer without stating it.
Then give one concrete next step the student can try.
Use plain text without markdown.`

// HintSchema is the JSON schema for LLM hint output.
var HintSchema = &llm.Schema{
	Name:        "fraction-hint",
	Description: "A hint and a next step for a multiple-choice fraction question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One or two sentences that guide without revealing the answer",
			},
			"next_step": map[string]any{
				"type":        "string",
				"description": "A single action the student should take next",
			},
		},
		"required":             []string{"hint", "next_step"},
		"additionalProperties": false,
	},
}

type llmHint struct {
	Hint     string `json:"hint"`
	NextStep string `json:"next_step"`
}

func (f *LLMFetcher) FetchHint(ctx context.Context, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, "hint")

	resp, err := f.provider.Generate(ctx, llm.Request{
		System: hintSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Question: " + prompt},
		},
		Schema:      HintSchema,
		MaxTokens:   f.maxTokens,
		Temperature: f.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("hint generation: %w", err)
	}

	var out llmHint
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse hint response: %w", err)
	}
	if strings.TrimSpace(out.Hint) == "" {
		return "", ErrNoHint
	}
	if out.NextStep == "" {
		return out.Hint, nil
	}
	return out.Hint + "\n\nNext step: " + out.NextStep, nil
}
