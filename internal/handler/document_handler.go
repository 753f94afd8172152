package handler

import (
	"io"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/service"
	"doc-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DocumentHandler handles document upload requests
type DocumentHandler struct {
	service   service.ExtractionService
	validator *validation.Validator
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(service service.ExtractionService) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ParseDocument godoc
// @Summary Extract text from a document
// @Description Accepts a PDF, DOCX, TXT or HTML upload and returns its plain text
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to parse"
// @Success 200 {object} dto.ParseDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /parse_document [post]
func (h *DocumentHandler) ParseDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	if errors := h.validator.ValidateUpload(fileHeader.Filename); len(errors) > 0 {
		return errors
	}

	f, err := fileHeader.Open()
	if err != nil {
		return domain.NewProcessingError(fileHeader.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		logger.Get().Error("Failed to read upload", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return domain.NewProcessingError(fileHeader.Filename, err)
	}

	text, err := h.service.Extract(c.UserContext(), domain.Document{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.ParseDocumentResponse{Text: text})
}
