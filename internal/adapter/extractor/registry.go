// Package extractor turns uploaded document bytes into plain text, one
// implementation per supported format.
package extractor

import (
	"doc-quiz/internal/domain"
)

// Registry maps document formats to their extractors.
type Registry struct {
	extractors map[domain.Format]domain.TextExtractor
}

// NewRegistry returns a registry wired with the PDF, DOCX, plain text and HTML extractors.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[domain.Format]domain.TextExtractor)}
	r.Register(domain.FormatPDF, NewPDFExtractor())
	r.Register(domain.FormatDOCX, NewDOCXExtractor())
	r.Register(domain.FormatTXT, NewTextExtractor())
	r.Register(domain.FormatHTML, NewHTMLExtractor())
	return r
}

// Register sets (or replaces) the extractor for a format.
func (r *Registry) Register(format domain.Format, e domain.TextExtractor) {
	r.extractors[format] = e
}

// For returns the extractor registered for format.
func (r *Registry) For(format domain.Format) (domain.TextExtractor, bool) {
	e, ok := r.extractors[format]
	return e, ok
}
