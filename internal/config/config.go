// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/adaptly/internal/llm"
)

// KV backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Hint sources.
const (
	HintAuto = "auto"
	HintAPI  = "api"
	HintLLM  = "llm"
	HintOff  = "off"
)

// Narration modes.
const (
	NarrationOff = "off"
	NarrationTTS = "tts"
)

// Config holds every ADAPTLY_* setting.
type Config struct {
	DB          string `env:"ADAPTLY_DB"`
	KVBackend   string `env:"ADAPTLY_KV_BACKEND" envDefault:"sqlite"`
	RedisAddr   string `env:"ADAPTLY_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPrefix string `env:"ADAPTLY_REDIS_PREFIX" envDefault:"adaptly"`

	APIBaseURL  string        `env:"ADAPTLY_API_BASE_URL"`
	HintSource  string        `env:"ADAPTLY_HINT_SOURCE" envDefault:"auto"`
	HTTPTimeout time.Duration `env:"ADAPTLY_HTTP_TIMEOUT" envDefault:"15s"`

	LogLevel string `env:"ADAPTLY_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"ADAPTLY_LOG_FILE"`

	Narration         string `env:"ADAPTLY_NARRATION" envDefault:"off"`
	NarrationPlayer   string `env:"ADAPTLY_NARRATION_PLAYER" envDefault:"mpg123 -q"`
	NarrationCache    string `env:"ADAPTLY_NARRATION_CACHE"`
	NarrationLanguage string `env:"ADAPTLY_NARRATION_LANGUAGE" envDefault:"en-US"`
	NarrationVoice    string `env:"ADAPTLY_NARRATION_VOICE" envDefault:"en-US-Neural2-F"`

	LLM llm.Config
}

// Load reads envFile (when it exists) and then the environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{LLM: llm.DefaultConfig()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if !cfg.LLM.Configured() {
		if found, ok := llm.DiscoverConfig(); ok {
			found.Timeout = cfg.LLM.Timeout
			cfg.LLM = found
		}
	}

	cfg.KVBackend = strings.ToLower(cfg.KVBackend)
	cfg.HintSource = strings.ToLower(cfg.HintSource)
	cfg.Narration = strings.ToLower(cfg.Narration)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings. All problems are reported together.
func (c Config) Validate() error {
	var errs []string
	if !oneOf(c.KVBackend, BackendSQLite, BackendRedis, BackendMemory) {
		errs = append(errs, fmt.Sprintf("ADAPTLY_KV_BACKEND: unknown backend %q", c.KVBackend))
	}
	if c.KVBackend == BackendRedis && c.RedisAddr == "" {
		errs = append(errs, "ADAPTLY_REDIS_ADDR: required for the redis backend")
	}
	if !oneOf(c.HintSource, HintAuto, HintAPI, HintLLM, HintOff) {
		errs = append(errs, fmt.Sprintf("ADAPTLY_HINT_SOURCE: unknown source %q", c.HintSource))
	}
	if c.HintSource == HintAPI && c.APIBaseURL == "" {
		errs = append(errs, "ADAPTLY_API_BASE_URL: required when ADAPTLY_HINT_SOURCE=api")
	}
	if c.HintSource == HintLLM {
		if err := c.LLM.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if !oneOf(c.Narration, NarrationOff, NarrationTTS) {
		errs = append(errs, fmt.Sprintf("ADAPTLY_NARRATION: unknown mode %q", c.Narration))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, "ADAPTLY_HTTP_TIMEOUT: must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// EffectiveHintSource resolves "auto": the platform API when a base URL is
// set, otherwise a configured LLM provider, otherwise off.
func (c Config) EffectiveHintSource() string {
	if c.HintSource != HintAuto {
		return c.HintSource
	}
	switch {
	case c.APIBaseURL != "":
		return HintAPI
	case c.LLM.Configured() && c.LLM.Provider != "mock":
		return HintLLM
	default:
		return HintOff
	}
}

// PlayerCommand splits NarrationPlayer into a program and its arguments.
func (c Config) PlayerCommand() (string, []string) {
	fields := strings.Fields(c.NarrationPlayer)
	if len(fields) == 0 {
		return "mpg123", []string{"-q"}
	}
	return fields[0], fields[1:]
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
