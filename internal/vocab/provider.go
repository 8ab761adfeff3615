package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoAPIKey            = errors.New("vocab: api key is required")
	ErrUnsupportedProvider = errors.New("vocab: unsupported provider")
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Retry    RetryConfig
}

// NewGenerator builds the generator for cfg.Provider. The Gemini generator
// holds a client that callers should Close.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		return NewOpenAIGenerator(cfg)
	case ProviderAnthropic, "claude":
		return NewAnthropicGenerator(cfg)
	case ProviderGemini, "google":
		return NewGeminiGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}
