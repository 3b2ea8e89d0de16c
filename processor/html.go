package processor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nivalis-labs/lingo"
	"golang.org/x/net/html"
)

// defaultIgnoredTags are HTML tags whose content is never translated.
var defaultIgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// HTML extracts and applies translations to HTML content. Text inside
// ignored tags and elements carrying data-no-translate is left alone.
type HTML struct {
	ignoredTags map[string]bool
}

// NewHTML creates an HTML processor with the default ignored tags.
func NewHTML() *HTML {
	return &HTML{ignoredTags: defaultIgnoredTags}
}

// NewHTMLWithIgnoredTags creates an HTML processor with custom ignored tags.
func NewHTMLWithIgnoredTags(tags []string) *HTML {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTML{ignoredTags: ignored}
}

// parsedHTML holds the parsed document plus every raw text node grouped by
// content hash, so Apply can mutate duplicates in one pass.
type parsedHTML struct {
	doc    *goquery.Document
	byHash map[string][]*html.Node
}

// Extract parses HTML and returns the translatable text nodes,
// deduplicated by content hash.
func (p *HTML) Extract(content string) (any, []TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &lingo.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var nodes []TextNode
	byHash := make(map[string][]*html.Node)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				hash := lingo.HashText(trimmed)
				if _, seen := byHash[hash]; !seen {
					node := TextNode{
						ID:       fmt.Sprintf("node-%d", len(nodes)),
						Text:     trimmed,
						Hash:     hash,
						Metadata: map[string]string{},
					}
					if n.Parent != nil && n.Parent.Type == html.ElementNode {
						node.Context = n.Parent.Data
						node.Metadata["parent_tag"] = n.Parent.Data
					}
					nodes = append(nodes, node)
				}
				byHash[hash] = append(byHash[hash], n)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, root := range doc.Nodes {
		walk(root)
	}

	return &parsedHTML{doc: doc, byHash: byHash}, nodes, nil
}

// Apply writes translations back into the document and renders it.
// Surrounding whitespace in each text node is preserved.
func (p *HTML) Apply(parsed any, nodes []TextNode, translations map[string]string) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &lingo.ProcessorError{
			Message:     "unexpected parsed form",
			ContentType: "html",
		}
	}

	for _, node := range nodes {
		translated, ok := translations[node.Hash]
		if !ok || translated == node.Text {
			continue
		}
		for _, raw := range ph.byHash[node.Hash] {
			raw.Data = strings.Replace(raw.Data, node.Text, translated, 1)
		}
	}

	out, err := ph.doc.Html()
	if err != nil {
		return "", &lingo.ProcessorError{
			Message:     "failed to render HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	return out, nil
}

// ContentType returns "html".
func (p *HTML) ContentType() string {
	return "html"
}

// Verify HTML implements Processor
var _ Processor = (*HTML)(nil)
