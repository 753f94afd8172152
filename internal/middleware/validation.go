package middleware

import (
	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const validatedQuizRequestKey = "validated_quiz_request"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator    *validation.Validator
	defaultModel string
}

// NewValidationMiddleware creates a new validation middleware instance.
// defaultModel fills in requests that name no model.
func NewValidationMiddleware(defaultModel string) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator:    validation.NewValidator(),
		defaultModel: defaultModel,
	}
}

// ValidateGenerateQuiz parses and validates the quiz generation body.
// Handlers read the result with ValidatedQuizRequest.
func (vm *ValidationMiddleware) ValidateGenerateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}

		if errors := vm.validator.ValidateGenerateQuizRequest(req); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(validatedQuizRequestKey, req.ToDomain(vm.defaultModel))
		return c.Next()
	}
}

// ValidatedQuizRequest returns the request stored by ValidateGenerateQuiz.
func ValidatedQuizRequest(c *fiber.Ctx) (domain.QuizRequest, bool) {
	req, ok := c.Locals(validatedQuizRequestKey).(domain.QuizRequest)
	return req, ok
}
