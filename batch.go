package lingo

import (
	"context"
	"strings"
)

// Outcome classifies how a single batch item was resolved.
type Outcome int

const (
	// OutcomePassthrough means the item needed no translation (blank text
	// or identity language pair).
	OutcomePassthrough Outcome = iota
	// OutcomeHit means the translation came from the cache.
	OutcomeHit
	// OutcomeFetched means the translation came from the provider.
	OutcomeFetched
	// OutcomeFallback means the provider failed and the source text was
	// returned unchanged.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassthrough:
		return "passthrough"
	case OutcomeHit:
		return "hit"
	case OutcomeFetched:
		return "fetched"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// BatchItem is one positional result of a batch translation.
type BatchItem struct {
	Text    string
	Outcome Outcome
}

// BatchResult holds the positional results of TranslateBatch. Items matches
// the input slice in length and order.
type BatchResult struct {
	Items []BatchItem
}

// Texts returns the translated texts in input order.
func (r *BatchResult) Texts() []string {
	out := make([]string, len(r.Items))
	for i, item := range r.Items {
		out[i] = item.Text
	}
	return out
}

// Stats returns summary counts per outcome.
func (r *BatchResult) Stats() BatchStats {
	var st BatchStats
	for _, item := range r.Items {
		switch item.Outcome {
		case OutcomePassthrough:
			st.Passthrough++
		case OutcomeHit:
			st.Hits++
		case OutcomeFetched:
			st.Fetched++
		case OutcomeFallback:
			st.Fallbacks++
		}
	}
	return st
}

// Complete reports whether every item resolved without falling back.
func (r *BatchResult) Complete() bool {
	for _, item := range r.Items {
		if item.Outcome == OutcomeFallback {
			return false
		}
	}
	return true
}

// BatchStats contains summary counts for a batch translation.
type BatchStats struct {
	Passthrough int
	Hits        int
	Fetched     int
	Fallbacks   int
}

// TranslateBatch translates an ordered sequence of texts in at most one
// provider round trip. Cache hits are resolved locally; all misses are sent
// to the provider together.
//
// The result preserves input order and length. When the provider call
// fails, cache hits already resolved are kept and only the pending subset
// falls back to its source text; inspect the per-item Outcome (or Complete)
// to distinguish.
func (s *Service) TranslateBatch(ctx context.Context, texts []string, targetLang string, sourceLang ...string) *BatchResult {
	source := s.sourceOf(sourceLang)
	res := &BatchResult{Items: make([]BatchItem, len(texts))}

	if s.isIdentity(targetLang, source) {
		for i, t := range texts {
			res.Items[i] = BatchItem{Text: t, Outcome: OutcomePassthrough}
		}
		return res
	}

	// Resolve what we can from the cache, collecting misses in input order.
	var pendingIdx []int
	var pendingKeys []string
	var pendingTexts []string

	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			res.Items[i] = BatchItem{Text: t, Outcome: OutcomePassthrough}
			continue
		}

		key := s.cacheKey(source, targetLang, t)
		if v, ok := s.memGet(key); ok {
			res.Items[i] = BatchItem{Text: v, Outcome: OutcomeHit}
			continue
		}
		if v, ok := s.storeGet(ctx, key); ok {
			s.memSet(key, v)
			res.Items[i] = BatchItem{Text: v, Outcome: OutcomeHit}
			continue
		}

		pendingIdx = append(pendingIdx, i)
		pendingKeys = append(pendingKeys, key)
		pendingTexts = append(pendingTexts, t)
	}

	if len(pendingIdx) == 0 {
		return res
	}

	results, err := s.fetch(ctx, pendingTexts, source, targetLang)
	if err != nil {
		s.log.Warn("batch translation failed, pending items fall back",
			"target", targetLang, "pending", len(pendingIdx), "error", err)
		for _, i := range pendingIdx {
			res.Items[i] = BatchItem{Text: texts[i], Outcome: OutcomeFallback}
		}
		return res
	}

	for j, i := range pendingIdx {
		s.put(ctx, pendingKeys[j], results[j])
		res.Items[i] = BatchItem{Text: results[j], Outcome: OutcomeFetched}
	}
	return res
}
