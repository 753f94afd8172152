package handler

import (
	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/middleware"
	"doc-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a multiple-choice quiz
// @Description Sends the text to the configured LLM and returns the parsed questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Text and generation parameters"
// @Success 200 {array} dto.QuizQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := middleware.ValidatedQuizRequest(c)
	if !ok {
		return domain.NewInternalError("quiz request was not validated", nil)
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewQuizResponse(quiz))
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}
