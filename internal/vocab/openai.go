package vocab

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/sandeepkv93/dashd/internal/model"
)

const DefaultOpenAIModel = "gpt-4o"

type OpenAIGenerator struct {
	client *openai.Client
	model  string
	retry  RetryConfig
}

func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai", ErrNoAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIGenerator{client: &client, model: cfg.Model, retry: cfg.Retry}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, lang model.Language, avoid []string) (model.WordPair, error) {
	p := buildPrompt(lang, avoid)
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
		Temperature: openai.Float(0.7),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	resp, err := withRetry(ctx, g.retry, "openai", func(ctx context.Context) (*openai.ChatCompletion, error) {
		return g.client.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		return model.WordPair{}, err
	}
	if len(resp.Choices) == 0 {
		return model.WordPair{}, errors.New("vocab: openai returned no choices")
	}
	return parsePayload(resp.Choices[0].Message.Content, lang)
}
