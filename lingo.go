// Package lingo provides a read-through, write-through translation cache.
//
// Lingo translates application text into a user-selected language via a
// pluggable remote provider (Google Translate REST, OpenAI, etc.), caching
// every result in an in-process map backed by a durable key-value store
// (Redis, a JSON file, or plain memory). Translation is always best effort:
// any provider or store failure degrades to the original text, never to an
// error surfaced to the caller.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/nivalis-labs/lingo"
//	    "github.com/nivalis-labs/lingo/provider"
//	    "github.com/nivalis-labs/lingo/store"
//	)
//
//	func main() {
//	    p := provider.NewGoogle(provider.GoogleConfig{
//	        APIKey: os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
//	    })
//	    st := store.NewMemory()
//
//	    svc := lingo.NewService(st, p, lingo.WithBaseLang("en"))
//
//	    greeting := svc.Translate(context.Background(), "Hello", "hi")
//	    fmt.Println(greeting) // नमस्ते (or "Hello" if the provider is down)
//	}
package lingo
