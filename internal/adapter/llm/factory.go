package llm

import (
	"context"
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
)

// Client is a completion backend that can name itself in logs.
type Client interface {
	domain.CompletionClient
	Provider() string
}

// NewFromConfig picks the completion backend named by cfg.LLM.Provider.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.LLM, cfg.OpenAIAPIKey)
	case config.ProviderOllama:
		return NewOllamaClient(cfg.LLM)
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.LLM, cfg.AnthropicAPIKey)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.LLM, cfg.GeminiAPIKey)
	case config.ProviderOpenRouter:
		return NewOpenRouterClient(cfg.LLM, cfg.OpenRouterAPIKey)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.LLM.Provider)
	}
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names are used as-is.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// pickModel prefers the per-request model over the client default.
func pickModel(requested, fallback string, models map[string]string) string {
	if requested == "" {
		requested = fallback
	}
	return resolveModel(requested, models)
}

// splitSystem separates system instructions from the conversation turns.
func splitSystem(msgs []domain.Message) (system []string, turns []domain.Message) {
	for _, m := range msgs {
		if m.Role == domain.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}
