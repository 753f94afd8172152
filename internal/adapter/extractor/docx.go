package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// DOCXExtractor extracts the body paragraphs of a Word document.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

// Extract implements domain.TextExtractor.
func (e *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", errors.New("docx archive has no word/document.xml")
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", docxBodyPart, err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(ctx, rc)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", docxBodyPart, err)
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// readParagraphs returns the text of each w:p that is a direct child of
// w:body. Paragraphs nested in tables are not body paragraphs.
func readParagraphs(ctx context.Context, r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		paraDepth  = -1
		inText     bool
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case name == "p" && paraDepth < 0 && parent() == "body":
				paraDepth = len(stack)
				current.Reset()
			case paraDepth >= 0 && parent() == "r":
				switch name {
				case "t":
					inText = true
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("unbalanced document.xml")
			}
			stack = stack[:len(stack)-1]
			switch {
			case t.Name.Local == "t":
				inText = false
			case t.Name.Local == "p" && len(stack) == paraDepth:
				paragraphs = append(paragraphs, current.String())
				paraDepth = -1
			}

		case xml.CharData:
			if paraDepth >= 0 && inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
