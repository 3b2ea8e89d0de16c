// Package processor implements content processors for document translation.
package processor

import "github.com/nivalis-labs/lingo"

// Processor is an alias to the main package interface for convenience.
type Processor = lingo.Processor

// TextNode is an alias to the main package type.
type TextNode = lingo.TextNode
