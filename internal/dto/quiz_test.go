package dto

import (
	"testing"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQuizRequest_ToDomain(t *testing.T) {
	model := "claude-haiku"
	temp := 0.0
	tokens := 300

	tests := []struct {
		name         string
		req          GenerateQuizRequest
		defaultModel string
		want         domain.QuizRequest
	}{
		{
			name: "all defaults",
			req:  GenerateQuizRequest{Text: "t"},
			want: domain.QuizRequest{Text: "t", Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 1500},
		},
		{
			name:         "configured default model",
			req:          GenerateQuizRequest{Text: "t"},
			defaultModel: "gemini-flash",
			want:         domain.QuizRequest{Text: "t", Model: "gemini-flash", Temperature: 0.7, MaxTokens: 1500},
		},
		{
			name: "explicit zero temperature is kept",
			req:  GenerateQuizRequest{Text: "t", Model: &model, Temperature: &temp, MaxTokens: &tokens},
			want: domain.QuizRequest{Text: "t", Model: "claude-haiku", Temperature: 0, MaxTokens: 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.ToDomain(tt.defaultModel))
		})
	}
}

func TestNewQuizResponse(t *testing.T) {
	out := NewQuizResponse(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
