package vocab

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sandeepkv93/dashd/internal/model"
)

const (
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	anthropicMaxTokens    = 256
)

type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
	retry  RetryConfig
}

func NewAnthropicGenerator(cfg Config) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic", ErrNoAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicGenerator{client: &client, model: cfg.Model, retry: cfg.Retry}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error) {
	p := buildPrompt(lang, avoid)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: p.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	}
	resp, err := withRetry(ctx, g.retry, "anthropic", func(ctx context.Context) (*anthropic.Message, error) {
		return g.client.Messages.New(ctx, params)
	})
	if err != nil {
		return model.WordPair{}, err
	}
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return parsePayload(text.String(), lang)
}
