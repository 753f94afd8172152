package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1500
)

// QuizRequest carries extracted text and the generation parameters for one call.
type QuizRequest struct {
	Text        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// QuizQuestion is one multiple-choice item.
type QuizQuestion struct {
	Question string            `json:"question"`
	Choices  map[string]string `json:"choices"`
	Correct  string            `json:"correct"`
}

// Quiz is the ordered list of generated questions.
type Quiz []QuizQuestion

// Labels returns the choice labels in sorted order (A, B, C, D for a well formed question).
func (q QuizQuestion) Labels() []string {
	labels := make([]string, 0, len(q.Choices))
	for label := range q.Choices {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Validate checks the structural invariants of a generated question.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Choices) == 0 {
		return fmt.Errorf("question %q has no choices", q.Question)
	}
	if _, ok := q.Choices[q.Correct]; !ok {
		return fmt.Errorf("correct label %q is not one of the choices %v", q.Correct, q.Labels())
	}
	return nil
}

// Validate checks every question, reporting the first offender by position.
func (qz Quiz) Validate() error {
	for i, q := range qz {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Role is the sender of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a single turn in a completion conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is one call to an LLM provider.
type CompletionRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message
}

// CompletionClient is the port to an LLM provider. Complete returns the text
// of the first choice of the provider's reply.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
