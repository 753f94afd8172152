// Package llm adapts LLM provider SDKs to domain.CompletionClient.
package llm

import (
	"context"
	"errors"
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainClient implements domain.CompletionClient on top of any langchaingo model.
type LangchainClient struct {
	model    llms.Model
	provider string
}

// NewLangchainClient wraps an already constructed langchaingo model.
func NewLangchainClient(model llms.Model, provider string) *LangchainClient {
	return &LangchainClient{model: model, provider: provider}
}

// NewOpenAIClient creates a client for the OpenAI chat completions API, or a
// compatible API when cfg.BaseURL is set.
func NewOpenAIClient(cfg config.LLMConfig, apiKey string) (*LangchainClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}

	opts := []openai.Option{openai.WithToken(apiKey)}
	if cfg.DefaultModel != "" {
		opts = append(opts, openai.WithModel(cfg.DefaultModel))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	return NewLangchainClient(model, config.ProviderOpenAI), nil
}

// NewOllamaClient creates a client for a local Ollama server.
func NewOllamaClient(cfg config.LLMConfig) (*LangchainClient, error) {
	if cfg.Server == "" {
		return nil, errors.New("ollama server URL cannot be empty")
	}

	opts := []ollama.Option{ollama.WithServerURL(cfg.Server)}
	if cfg.DefaultModel != "" {
		opts = append(opts, ollama.WithModel(cfg.DefaultModel))
	}

	model, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	return NewLangchainClient(model, config.ProviderOllama), nil
}

// Provider returns the backend name, for logs.
func (c *LangchainClient) Provider() string {
	return c.provider
}

// Complete implements domain.CompletionClient.
func (c *LangchainClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llms.TextParts(messageType(m.Role), m.Content))
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		logger.Get().Error("LLM completion failed",
			zap.String("provider", c.provider),
			zap.String("model", req.Model),
			zap.Error(err))
		return "", fmt.Errorf("%s completion failed: %w", c.provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", fmt.Errorf("%s returned no choices", c.provider)
	}

	return resp.Choices[0].Content, nil
}

func messageType(role domain.Role) llms.ChatMessageType {
	switch role {
	case domain.RoleSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}

var _ domain.CompletionClient = (*LangchainClient)(nil)
