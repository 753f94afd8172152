package middleware

import (
	"errors"
	"net/http"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get()
		requestID := RequestID(c)

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation errors occurred",
				zap.String("request_id", requestID),
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:   string(domain.CodeValidation),
				Detail: validationErrs.Error(),
				Status: http.StatusBadRequest,
				Errors: validationErrs,
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log := logger.Error
			if statusCode < http.StatusInternalServerError {
				log = logger.Warn
			}
			log("Domain error occurred",
				zap.String("request_id", requestID),
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Err),
			)

			return c.Status(statusCode).JSON(dto.ErrorResponse{
				Code:   string(domainErr.Code),
				Detail: errorDetail(domainErr),
				Status: statusCode,
			})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.String("request_id", requestID),
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Code:   "HTTP_ERROR",
				Detail: fiberErr.Message,
				Status: fiberErr.Code,
			})
		}

		// Handle unknown errors
		logger.Error("Unknown error occurred",
			zap.String("request_id", requestID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:   string(domain.CodeInternal),
			Detail: "Internal server error",
			Status: http.StatusInternalServerError,
		})
	}
}

// errorDetail exposes the cause for extraction and provider failures.
// Model output and internal errors only carry their message.
func errorDetail(err *domain.DomainError) string {
	switch err.Code {
	case domain.CodeProcessing, domain.CodeProviderError:
		return err.Error()
	default:
		return err.Message
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeUnsupportedFormat, domain.CodeInvalidInput,
		domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
