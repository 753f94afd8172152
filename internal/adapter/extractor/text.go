package extractor

import (
	"context"
	"strings"
)

// TextExtractor decodes plain text files as UTF-8, dropping invalid byte
// sequences. The content is returned as is, without trimming.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract implements domain.TextExtractor.
func (e *TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	return decodeUTF8(data), nil
}

func decodeUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
