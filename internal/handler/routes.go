package handler

import (
	"doc-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the document and quiz endpoints on r. defaultModel
// is used for quiz requests that name no model.
func RegisterRoutes(r fiber.Router, documents *DocumentHandler, quizzes *QuizHandler, defaultModel string) {
	vm := middleware.NewValidationMiddleware(defaultModel)

	r.Post("/parse_document", documents.ParseDocument)
	r.Post("/generate_quiz", vm.ValidateGenerateQuiz(), quizzes.GenerateQuiz)
}
