package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"doc-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// jsonArrayPattern spans the first '[' to the last ']' of the reply.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// locateJSON returns the JSON array embedded in a model reply, or the whole
// trimmed reply when it contains none.
func locateJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if match := jsonArrayPattern.FindString(text); match != "" {
		return match
	}
	return text
}

// ParseQuiz turns free-form model output into a validated quiz. A reply that
// is a single question object, with no array around it, is accepted as a
// one-question quiz.
func ParseQuiz(raw string) (domain.Quiz, error) {
	candidate := locateJSON(raw)

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(candidate))
	if err != nil {
		return nil, domain.NewInvalidModelOutputError(err)
	}
	if obj, ok := doc.(map[string]any); ok {
		doc = []any{obj}
		candidate = "[" + candidate + "]"
	}

	schema, err := quizSchema()
	if err != nil {
		return nil, domain.NewInternalError("quiz schema unavailable", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, domain.NewInvalidModelOutputError(err)
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(candidate), &quiz); err != nil {
		return nil, domain.NewInvalidModelOutputError(err)
	}
	if err := quiz.Validate(); err != nil {
		return nil, domain.NewInvalidModelOutputError(err)
	}
	return quiz, nil
}
