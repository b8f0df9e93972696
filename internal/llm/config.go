package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config selects and configures the hint-generation model.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock".
	Provider string `env:"ADAPTLY_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one request including retries.
	Timeout time.Duration `env:"ADAPTLY_LLM_TIMEOUT"`
}

type AnthropicConfig struct {
	APIKey  string `env:"ADAPTLY_ANTHROPIC_API_KEY"`
	Model   string `env:"ADAPTLY_ANTHROPIC_MODEL"`
	BaseURL string `env:"ADAPTLY_ANTHROPIC_BASE_URL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"ADAPTLY_OPENAI_API_KEY"`
	Model   string `env:"ADAPTLY_OPENAI_MODEL"`
	BaseURL string `env:"ADAPTLY_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"ADAPTLY_GEMINI_API_KEY"`
	Model  string `env:"ADAPTLY_GEMINI_MODEL"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"ADAPTLY_OPENROUTER_API_KEY"`
	Model   string `env:"ADAPTLY_OPENROUTER_MODEL"`
	BaseURL string `env:"ADAPTLY_OPENROUTER_BASE_URL"`
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays ADAPTLY_* variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse llm config: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig looks for a vendor's standard API key variable, in the order
// Gemini, OpenAI, Anthropic, OpenRouter, and configures the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Configured reports whether the selected provider has what it needs.
func (c Config) Configured() bool { return c.Validate() == nil }

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, name string
	switch c.Provider {
	case "anthropic":
		key, name = c.Anthropic.APIKey, "ADAPTLY_ANTHROPIC_API_KEY"
	case "openai":
		key, name = c.OpenAI.APIKey, "ADAPTLY_OPENAI_API_KEY"
	case "gemini":
		key, name = c.Gemini.APIKey, "ADAPTLY_GEMINI_API_KEY"
	case "openrouter":
		key, name = c.OpenRouter.APIKey, "ADAPTLY_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", name, c.Provider)
	}
	return nil
}
