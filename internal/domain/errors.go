package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Extraction errors
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	CodeProcessing        ErrorCode = "PROCESSING_ERROR"

	// Quiz generation errors
	CodeProviderError      ErrorCode = "PROVIDER_ERROR"
	CodeInvalidModelOutput ErrorCode = "INVALID_MODEL_OUTPUT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnsupportedFormatError(ext string) *DomainError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("Unsupported file type: %s", ext), nil)
}

func NewProcessingError(filename string, err error) *DomainError {
	return NewError(CodeProcessing, fmt.Sprintf("Failed to process document %s", filename), err)
}

func NewProviderError(err error) *DomainError {
	return NewError(CodeProviderError, "Failed to call LLM provider", err)
}

func NewInvalidModelOutputError(err error) *DomainError {
	return NewError(CodeInvalidModelOutput, "Invalid JSON generated by AI", err)
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}
