package lingo

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Namespace is the reserved key prefix for all cache entries in the durable
// store. Keys outside this prefix are never touched by the service.
const Namespace = "lingo:v1:"

// KeyFunc derives the namespace-relative cache key for a translation.
// The service prepends Namespace to the returned string.
type KeyFunc func(sourceLang, targetLang, text string) string

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// HashKey is the default KeyFunc. It keys on the language pair plus the
// SHA-256 hash of the full trimmed text, so distinct texts never collide.
func HashKey(sourceLang, targetLang, text string) string {
	return sourceLang + ":" + targetLang + ":" + HashText(text)
}

// TruncateKey returns a KeyFunc that keys on the language pair plus the
// first limit runes of the text. This reproduces the legacy identity scheme:
// two texts sharing a limit-rune prefix collide and resolve to the same
// cached translation. Prefer HashKey unless compatibility with an existing
// key population matters.
func TruncateKey(limit int) KeyFunc {
	return func(sourceLang, targetLang, text string) string {
		runes := []rune(text)
		if len(runes) > limit {
			runes = runes[:limit]
		}
		return sourceLang + ":" + targetLang + ":" + string(runes)
	}
}
