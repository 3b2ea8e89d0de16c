// Package store provides durable key-value backends for the translation
// cache.
package store

import "github.com/nivalis-labs/lingo"

// Store is the durable key-value contract consumed by the translation
// service. This is an alias to the main package interface for convenience.
type Store = lingo.Store

// ErrNotFound is returned by Get when a key is absent.
var ErrNotFound = lingo.ErrNotFound
