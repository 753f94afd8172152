package extractor

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLExtractor returns the visible text nodes of an HTML document, one per line.
type HTMLExtractor struct{}

func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract implements domain.TextExtractor.
func (e *HTMLExtractor) Extract(_ context.Context, data []byte) (string, error) {
	doc, err := html.Parse(strings.NewReader(decodeUTF8(data)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var parts []string
	collectText(doc, &parts)
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			*parts = append(*parts, n.Data)
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template, atom.Noscript:
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
