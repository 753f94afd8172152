package llm

import (
	"context"
	"errors"
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicClient implements domain.CompletionClient with the Anthropic Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a client for the Anthropic API, or the endpoint
// at cfg.BaseURL when set.
func NewAnthropicClient(cfg config.LLMConfig, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic API key cannot be empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client: &client,
		model:  resolveModel(cfg.DefaultModel, anthropicModels),
	}, nil
}

// Provider returns the backend name, for logs.
func (c *AnthropicClient) Provider() string {
	return config.ProviderAnthropic
}

// Complete implements domain.CompletionClient.
func (c *AnthropicClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	model := pickModel(req.Model, c.model, anthropicModels)
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}

	system, turns := splitSystem(req.Messages)
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(maxTokens),
		Messages:    buildAnthropicMessages(turns),
		Temperature: anthropic.Float(req.Temperature),
	}
	for _, s := range system {
		params.System = append(params.System, anthropic.TextBlockParam{Text: s})
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		logger.Get().Error("LLM completion failed",
			zap.String("provider", config.ProviderAnthropic),
			zap.String("model", model),
			zap.Error(err))
		return "", fmt.Errorf("%s completion failed: %w", config.ProviderAnthropic, err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%s returned no text content", config.ProviderAnthropic)
}

func buildAnthropicMessages(msgs []domain.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(msgs))
	for i, m := range msgs {
		out[i] = anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content))
	}
	return out
}

var _ domain.CompletionClient = (*AnthropicClient)(nil)
