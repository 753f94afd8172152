package domain

import (
	"context"
	"path/filepath"
	"strings"
)

// Format identifies a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

// Document is an uploaded file. It only lives for the request that carries it.
type Document struct {
	Filename string
	Data     []byte
}

// Ext returns the lower-cased extension of the filename, including the dot.
func (d Document) Ext() string {
	return strings.ToLower(filepath.Ext(d.Filename))
}

// FormatFromExt maps a file extension (with or without the leading dot) to a Format.
func FormatFromExt(ext string) (Format, bool) {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "pdf":
		return FormatPDF, true
	case "docx":
		return FormatDOCX, true
	case "txt":
		return FormatTXT, true
	case "html", "htm":
		return FormatHTML, true
	default:
		return "", false
	}
}

// SupportedExtensions lists the accepted upload extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".html", ".htm"}
}

// TextExtractor converts the raw bytes of one document format into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
