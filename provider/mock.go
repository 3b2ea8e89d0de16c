package provider

import (
	"context"
	"fmt"
)

// Mock is a canned-response provider for testing.
type Mock struct {
	Translations map[string]string // Map of source text to translation
	Err          error             // If set, Translate fails with this error
	CallCount    int               // Number of times Translate was called
	LastRequest  *Request          // Last request received
}

// NewMock creates a mock provider with a few default translations.
func NewMock() *Mock {
	return &Mock{
		Translations: map[string]string{
			"Hello":   "नमस्ते",
			"World":   "दुनिया",
			"Welcome": "स्वागत है",
		},
	}
}

// Translate returns canned translations. Unknown texts come back bracketed
// so tests can tell a mock translation from a passthrough.
func (m *Mock) Translate(_ context.Context, req Request) ([]string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}
	return results, nil
}

// Reset resets the call count and last request.
func (m *Mock) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify Mock implements Provider
var _ Provider = (*Mock)(nil)
