// Package provider defines remote translation backends.
package provider

import "github.com/nivalis-labs/lingo"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = lingo.Provider

// Request is an alias to the main package type.
type Request = lingo.Request
