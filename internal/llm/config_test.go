package llm

import (
	"testing"
	"time"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ADAPTLY_LLM_PROVIDER", "openai")
	t.Setenv("ADAPTLY_OPENAI_API_KEY", "sk-test")
	t.Setenv("ADAPTLY_OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("ADAPTLY_LLM_TIMEOUT", "5s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default model lost: %q", cfg.OpenAI.Model)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if !cfg.Configured() {
		t.Error("Configured = false")
	}
}

func TestConfigFromEnvBadDuration(t *testing.T) {
	t.Setenv("ADAPTLY_LLM_TIMEOUT", "soon")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("expected parse error")
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("discovered a provider with no keys set")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o" {
		t.Errorf("cfg = %+v, ok = %v; want openai first", cfg, ok)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic ok", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"anthropic missing key", Config{Provider: "anthropic"}, true},
		{"gemini missing key", Config{Provider: "gemini"}, true},
		{"openrouter ok", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k"}}, false},
		{"mock", Config{Provider: "mock"}, false},
		{"unknown", Config{Provider: "abacus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
