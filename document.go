package lingo

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextNode represents a translatable unit of content extracted from a
// document.
type TextNode struct {
	ID       string            // Position-derived identifier within the document
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	Context  string            // Hint about the surrounding markup
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// Processor extracts translatable text from a document and applies
// translations back to it.
type Processor interface {
	// Extract parses content and returns an opaque parsed form plus the
	// translatable nodes, deduplicated by hash.
	Extract(content string) (any, []TextNode, error)
	// Apply writes translations (keyed by node hash) back into the parsed
	// form and renders it.
	Apply(parsed any, nodes []TextNode, translations map[string]string) (string, error)
	// ContentType names the content this processor handles, e.g. "html".
	ContentType() string
}

// DocumentResult is the outcome of a document translation.
type DocumentResult struct {
	Content    string     // Translated document
	TotalNodes int        // Translatable nodes found
	Stats      BatchStats // Cache/fetch breakdown for the nodes
}

// TranslateDocument translates a document using the processor registered
// for contentType. Node texts go through the batch cache protocol, so a
// provider failure yields the document with the failed nodes left in the
// source language rather than an error.
func (s *Service) TranslateDocument(ctx context.Context, content, contentType, targetLang string, sourceLang ...string) (*DocumentResult, error) {
	source := s.sourceOf(sourceLang)

	processor, ok := s.processors[contentType]
	if !ok {
		return nil, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}

	if s.isIdentity(targetLang, source) {
		return &DocumentResult{Content: content}, nil
	}

	parsed, nodes, err := processor.Extract(content)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return &DocumentResult{Content: content}, nil
	}

	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Text
	}

	batch := s.TranslateBatch(ctx, texts, targetLang, source)

	translations := make(map[string]string, len(nodes))
	for i, node := range nodes {
		translations[node.Hash] = batch.Items[i].Text
	}

	result, err := processor.Apply(parsed, nodes, translations)
	if err != nil {
		return nil, err
	}

	if contentType == "html" {
		result = setHTMLAttributes(result, targetLang)
	}

	return &DocumentResult{
		Content:    result,
		TotalNodes: len(nodes),
		Stats:      batch.Stats(),
	}, nil
}

// setHTMLAttributes sets lang and dir attributes on the <html> tag.
func setHTMLAttributes(html, targetLang string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	tag := doc.Find("html")
	if tag.Length() > 0 {
		tag.SetAttr("lang", ToHTMLLang(targetLang))
		tag.SetAttr("dir", GetDirection(targetLang))
	}

	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}
