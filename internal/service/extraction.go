package service

import (
	"context"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// ExtractorRegistry looks up the text extractor for a document format.
type ExtractorRegistry interface {
	For(format domain.Format) (domain.TextExtractor, bool)
}

// ExtractionService defines the interface for document text extraction
type ExtractionService interface {
	Extract(ctx context.Context, doc domain.Document) (string, error)
}

// extractionService implements ExtractionService
type extractionService struct {
	registry ExtractorRegistry
}

// NewExtractionService creates a new instance of extractionService
func NewExtractionService(registry ExtractorRegistry) ExtractionService {
	return &extractionService{registry: registry}
}

// Extract implements ExtractionService. The format comes from the filename
// extension; unknown extensions fail before any extractor runs.
func (s *extractionService) Extract(ctx context.Context, doc domain.Document) (text string, err error) {
	l := logger.Get()
	ext := doc.Ext()
	l.Info("Received file for parsing", zap.String("filename", doc.Filename), zap.String("ext", ext))

	format, ok := domain.FormatFromExt(ext)
	if !ok {
		return "", domain.NewUnsupportedFormatError(ext)
	}
	extractor, ok := s.registry.For(format)
	if !ok {
		return "", domain.NewUnsupportedFormatError(ext)
	}

	defer func() {
		if r := recover(); r != nil {
			l.Error("Extractor panicked", zap.String("filename", doc.Filename), zap.Any("panic", r))
			text, err = "", domain.NewProcessingError(doc.Filename, panicError{value: r})
		}
	}()

	text, err = extractor.Extract(ctx, doc.Data)
	if err != nil {
		l.Error("Error processing document", zap.String("filename", doc.Filename), zap.Error(err))
		return "", domain.NewProcessingError(doc.Filename, err)
	}

	l.Info("Extracted text", zap.String("filename", doc.Filename), zap.Int("length", len(text)))
	return text, nil
}
