package lingo

import (
	"context"
	"sync"
)

// TranslateValue recursively translates a nested value: strings are
// translated, slices element-wise and string-keyed maps per value (keys
// untouched), with sibling elements translated concurrently. All other
// scalar types pass through unchanged. The returned value has the same
// shape as the input.
//
// When targetLang is the source or base language, the input is returned
// as-is without traversal.
func (s *Service) TranslateValue(ctx context.Context, v any, targetLang string, sourceLang ...string) any {
	source := s.sourceOf(sourceLang)
	if s.isIdentity(targetLang, source) {
		return v
	}
	return s.translateValue(ctx, v, source, targetLang)
}

func (s *Service) translateValue(ctx context.Context, v any, source, target string) any {
	switch val := v.(type) {
	case string:
		return s.Translate(ctx, val, target, source)

	case []string:
		out := make([]string, len(val))
		var wg sync.WaitGroup
		for i, elem := range val {
			wg.Add(1)
			go func(i int, elem string) {
				defer wg.Done()
				out[i] = s.Translate(ctx, elem, target, source)
			}(i, elem)
		}
		wg.Wait()
		return out

	case []any:
		out := make([]any, len(val))
		var wg sync.WaitGroup
		for i, elem := range val {
			wg.Add(1)
			go func(i int, elem any) {
				defer wg.Done()
				out[i] = s.translateValue(ctx, elem, source, target)
			}(i, elem)
		}
		wg.Wait()
		return out

	case map[string]any:
		out := make(map[string]any, len(val))
		var mu sync.Mutex
		var wg sync.WaitGroup
		for k, elem := range val {
			wg.Add(1)
			go func(k string, elem any) {
				defer wg.Done()
				translated := s.translateValue(ctx, elem, source, target)
				mu.Lock()
				out[k] = translated
				mu.Unlock()
			}(k, elem)
		}
		wg.Wait()
		return out

	case map[string]string:
		out := make(map[string]string, len(val))
		var mu sync.Mutex
		var wg sync.WaitGroup
		for k, elem := range val {
			wg.Add(1)
			go func(k, elem string) {
				defer wg.Done()
				translated := s.Translate(ctx, elem, target, source)
				mu.Lock()
				out[k] = translated
				mu.Unlock()
			}(k, elem)
		}
		wg.Wait()
		return out

	default:
		// Numbers, booleans, nil and anything else pass through.
		return v
	}
}
