package vocab

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sandeepkv93/dashd/internal/model"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

type GeminiGenerator struct {
	client    *genai.Client
	modelName string
	retry     RetryConfig
}

func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini", ErrNoAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, modelName: cfg.Model, retry: cfg.Retry}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error) {
	p := buildPrompt(lang, avoid)
	m := g.client.GenerativeModel(g.modelName)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)

	resp, err := withRetry(ctx, g.retry, "gemini", func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return m.GenerateContent(ctx, genai.Text(p.User))
	})
	if err != nil {
		return model.WordPair{}, err
	}
	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return parsePayload(text.String(), lang)
}
