package validation

import (
	"strings"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
)

const maxTokensLimit = 128000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request body.
// Temperature is passed through to the provider unchecked.
func (v *Validator) ValidateGenerateQuizRequest(req dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	}

	if req.MaxTokens != nil && (*req.MaxTokens <= 0 || *req.MaxTokens > maxTokensLimit) {
		errors = append(errors, domain.NewOutOfRangeError("max_tokens", *req.MaxTokens, 1, maxTokensLimit))
	}

	return errors
}

// ValidateUpload validates the uploaded file name.
func (v *Validator) ValidateUpload(filename string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
	}

	return errors
}
