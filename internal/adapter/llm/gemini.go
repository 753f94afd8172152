package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiClient implements domain.CompletionClient with the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  resolveModel(cfg.DefaultModel, geminiModels),
	}, nil
}

// Provider returns the backend name, for logs.
func (c *GeminiClient) Provider() string {
	return config.ProviderGemini
}

// Complete implements domain.CompletionClient.
func (c *GeminiClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	model := pickModel(req.Model, c.model, geminiModels)
	contents, genCfg := buildGeminiRequest(req)

	result, err := c.client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		logger.Get().Error("LLM completion failed",
			zap.String("provider", config.ProviderGemini),
			zap.String("model", model),
			zap.Error(err))
		return "", fmt.Errorf("%s completion failed: %w", config.ProviderGemini, err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%s returned no text content", config.ProviderGemini)
	}
	return text, nil
}

func buildGeminiRequest(req domain.CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	temp := float32(req.Temperature)
	genCfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	system, turns := splitSystem(req.Messages)
	if len(system) > 0 {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}

	contents := make([]*genai.Content, len(turns))
	for i, m := range turns {
		contents[i] = &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return contents, genCfg
}

var _ domain.CompletionClient = (*GeminiClient)(nil)
