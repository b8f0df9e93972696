// Package llm generates structured text with hosted language models. It backs
// local hint generation when no learning API is configured.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a request. When the request carries a
// Schema, Content is JSON that has been validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider is configured for.
	ModelID() string
}

// Request is a single generation request.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text, returned as
	// raw bytes in Response.Content.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON object a response must match.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "fraction-hint".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// structured validates content against the request schema, if any.
func structured(req Request, content json.RawMessage) (json.RawMessage, error) {
	if req.Schema == nil {
		return content, nil
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// resolveModel maps a short alias to a model ID. Unknown names pass through.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
