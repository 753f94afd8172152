package dto

import "doc-quiz/internal/domain"

// ParseDocumentResponse carries the text extracted from an upload
// @Description Extracted document text
type ParseDocumentResponse struct {
	Text string `json:"text"`
}

// GenerateQuizRequest represents the quiz generation request body.
// Optional fields are pointers so an absent field can be told apart from a zero value.
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Text        string   `json:"text"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// ToDomain applies the defaults for absent fields. An empty defaultModel
// falls back to domain.DefaultModel.
func (r GenerateQuizRequest) ToDomain(defaultModel string) domain.QuizRequest {
	if defaultModel == "" {
		defaultModel = domain.DefaultModel
	}
	req := domain.QuizRequest{
		Text:        r.Text,
		Model:       defaultModel,
		Temperature: domain.DefaultTemperature,
		MaxTokens:   domain.DefaultMaxTokens,
	}
	if r.Model != nil && *r.Model != "" {
		req.Model = *r.Model
	}
	if r.Temperature != nil {
		req.Temperature = *r.Temperature
	}
	if r.MaxTokens != nil {
		req.MaxTokens = *r.MaxTokens
	}
	return req
}

// QuizQuestionResponse is one generated question in the API response
// @Description Multiple-choice question
type QuizQuestionResponse struct {
	Question string            `json:"question" yaml:"question"`
	Choices  map[string]string `json:"choices" yaml:"choices"`
	Correct  string            `json:"correct" yaml:"correct"`
}

// NewQuizResponse converts a domain quiz into its wire form.
func NewQuizResponse(quiz domain.Quiz) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(quiz))
	for _, q := range quiz {
		out = append(out, QuizQuestionResponse{
			Question: q.Question,
			Choices:  q.Choices,
			Correct:  q.Correct,
		})
	}
	return out
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error in the API response
// @Description Error information
type ErrorResponse struct {
	Code   string                   `json:"code"`
	Detail string                   `json:"detail"`
	Status int                      `json:"status"`
	Errors []domain.ValidationError `json:"errors,omitempty"`
}
