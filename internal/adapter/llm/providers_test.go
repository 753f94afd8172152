package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicClient_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), "path %s", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "[]"},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 3},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewAnthropicClient(config.LLMConfig{BaseURL: srv.URL, DefaultModel: "claude-haiku"}, "sk-ant-test")
	require.NoError(t, err)
	assert.Equal(t, config.ProviderAnthropic, client.Provider())

	req := testRequest()
	req.Model = ""
	out, err := client.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.InDelta(t, 500, body["max_tokens"], 1e-9)
	assert.InDelta(t, 0.2, body["temperature"], 1e-9)

	system, ok := body["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "system prompt", system[0].(map[string]any)["text"])

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestOpenRouterClient_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "gen-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": "[{}]"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewOpenRouterClient(config.LLMConfig{BaseURL: srv.URL + "/v1", DefaultModel: "openai/gpt-4o-mini"}, "or-test")
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "[{}]", out)
	assert.Equal(t, "gpt-4o", body["model"])
	assert.InDelta(t, 500, body["max_tokens"], 1e-9)

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
}

func TestOpenRouterClient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"auth_error"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewOpenRouterClient(config.LLMConfig{BaseURL: srv.URL}, "or-test")
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter completion failed")
}

func TestBuildGeminiRequest(t *testing.T) {
	contents, cfg := buildGeminiRequest(testRequest())

	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "document text", contents[0].Parts[0].Text)

	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "system prompt", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-6)
	assert.Equal(t, int32(500), cfg.MaxOutputTokens)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		requested, fallback string
		models              map[string]string
		want                string
	}{
		{"gemini-flash", "", geminiModels, "gemini-2.0-flash"},
		{"", "claude-sonnet", anthropicModels, "claude-sonnet-4-20250514"},
		{"claude-3-opus", "claude-haiku", anthropicModels, "claude-3-opus"},
		{"", "", nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pickModel(tt.requested, tt.fallback, tt.models))
	}
}

func TestSplitSystem(t *testing.T) {
	system, turns := splitSystem([]domain.Message{
		{Role: domain.RoleSystem, Content: "a"},
		{Role: domain.RoleUser, Content: "b"},
		{Role: domain.RoleSystem, Content: "c"},
	})
	assert.Equal(t, []string{"a", "c"}, system)
	require.Len(t, turns, 1)
	assert.Equal(t, "b", turns[0].Content)
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewFromConfig(ctx, &config.Config{LLM: config.LLMConfig{Provider: "bard"}})
	assert.Error(t, err)

	tests := []struct {
		cfg  *config.Config
		want string
	}{
		{&config.Config{LLM: config.LLMConfig{Provider: config.ProviderOpenAI}, OpenAIAPIKey: "k"}, config.ProviderOpenAI},
		{&config.Config{LLM: config.LLMConfig{Provider: config.ProviderOllama, Server: "http://localhost:11434"}}, config.ProviderOllama},
		{&config.Config{LLM: config.LLMConfig{Provider: config.ProviderAnthropic}, AnthropicAPIKey: "k"}, config.ProviderAnthropic},
		{&config.Config{LLM: config.LLMConfig{Provider: config.ProviderGemini}, GeminiAPIKey: "k"}, config.ProviderGemini},
		{&config.Config{LLM: config.LLMConfig{Provider: config.ProviderOpenRouter}, OpenRouterAPIKey: "k"}, config.ProviderOpenRouter},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, err := NewFromConfig(ctx, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Provider())
		})
	}

	for _, provider := range []string{config.ProviderAnthropic, config.ProviderGemini, config.ProviderOpenRouter} {
		_, err := NewFromConfig(ctx, &config.Config{LLM: config.LLMConfig{Provider: provider}})
		assert.Error(t, err, provider)
	}
}
