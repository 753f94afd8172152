package llm

import (
	"context"
	"errors"
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient implements domain.CompletionClient against OpenRouter's
// OpenAI-compatible chat completions API.
type OpenRouterClient struct {
	client *openai.Client
	model  string
}

// NewOpenRouterClient creates a client for OpenRouter, or any OpenAI-compatible
// endpoint at cfg.BaseURL.
func NewOpenRouterClient(cfg config.LLMConfig, apiKey string) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter API key cannot be empty")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenRouterClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.DefaultModel,
	}, nil
}

// Provider returns the backend name, for logs.
func (c *OpenRouterClient) Provider() string {
	return config.ProviderOpenRouter
}

// Complete implements domain.CompletionClient.
func (c *OpenRouterClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	model := pickModel(req.Model, c.model, nil)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		logger.Get().Error("LLM completion failed",
			zap.String("provider", config.ProviderOpenRouter),
			zap.String("model", model),
			zap.Error(err))
		return "", fmt.Errorf("%s completion failed: %w", config.ProviderOpenRouter, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", config.ProviderOpenRouter)
	}

	return resp.Choices[0].Message.Content, nil
}

var _ domain.CompletionClient = (*OpenRouterClient)(nil)
