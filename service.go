package lingo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Provider is the interface for remote translation backends. Results are
// positional: the returned slice matches req.Texts in length and order.
type Provider interface {
	Translate(ctx context.Context, req Request) ([]string, error)
}

// Request contains the parameters for a provider translation call.
type Request struct {
	Texts      []string
	SourceLang string
	TargetLang string
}

// Store is the durable key-value backend consumed by the Service. Get
// returns ErrNotFound (possibly wrapped) when the key is absent.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	GetMulti(ctx context.Context, keys []string) (map[string]string, error)
	DeleteMulti(ctx context.Context, keys []string) error
}

// warmStartTimeout bounds the startup scan of the durable store.
const warmStartTimeout = 30 * time.Second

// Service is a read-through, write-through translation cache.
//
// Lookups go in-memory map → durable store → provider; fetched translations
// are written through to both layers. Every translation method degrades to
// the original text on failure and never returns an error to the caller.
// Concurrent identical misses may each call the provider (no single-flight);
// results are idempotent so the only cost is the redundant call.
type Service struct {
	store    Store
	provider Provider

	baseLang   string
	keyFn      KeyFunc
	timeout    time.Duration
	log        *slog.Logger
	processors map[string]Processor

	mu  sync.RWMutex
	mem map[string]string

	ready chan struct{}
}

// Option is a functional option for configuring the Service.
type Option func(*Service)

// WithBaseLang sets the language application strings are authored in.
// Translation to the base language is an identity operation, and it is the
// default source language. Defaults to "en".
func WithBaseLang(lang string) Option {
	return func(s *Service) {
		s.baseLang = lang
	}
}

// WithKeyFunc sets the cache-key derivation strategy. Defaults to HashKey.
func WithKeyFunc(fn KeyFunc) Option {
	return func(s *Service) {
		s.keyFn = fn
	}
}

// WithLogger sets the logger for diagnostics. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithRequestTimeout bounds each provider call. A call that exceeds the
// timeout is treated as a failure and falls back to the original text.
// Defaults to 15 seconds; zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithProcessor registers a content processor for TranslateDocument.
func WithProcessor(p Processor) Option {
	return func(s *Service) {
		s.processors[p.ContentType()] = p
	}
}

// NewService creates a translation cache backed by the given store and
// provider. Either may be nil: a nil store disables persistence, a nil
// provider makes every cache miss fall back to the source text.
//
// The in-memory cache is populated from the durable store asynchronously;
// callers needing full warm coverage can wait on Ready or WaitReady, routine
// calls simply fall through to the store on early misses.
func NewService(store Store, provider Provider, opts ...Option) *Service {
	s := &Service{
		store:      store,
		provider:   provider,
		baseLang:   "en",
		keyFn:      HashKey,
		timeout:    15 * time.Second,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		processors: make(map[string]Processor),
		mem:        make(map[string]string),
		ready:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		close(s.ready)
	} else {
		go s.warmStart()
	}

	return s
}

// warmStart loads previously persisted translations into the in-memory map.
// Failures are logged and leave the map cold; misses then fall through to
// the store per lookup.
func (s *Service) warmStart() {
	defer close(s.ready)

	ctx, cancel := context.WithTimeout(context.Background(), warmStartTimeout)
	defer cancel()

	keys, err := s.store.Keys(ctx, Namespace)
	if err != nil {
		s.log.Warn("warm start: listing cache keys failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	entries, err := s.store.GetMulti(ctx, keys)
	if err != nil {
		s.log.Warn("warm start: bulk read failed", "error", err)
		return
	}

	s.mu.Lock()
	for k, v := range entries {
		// Entries written while the scan ran win over the stored copy.
		if _, exists := s.mem[k]; !exists {
			s.mem[k] = v
		}
	}
	s.mu.Unlock()

	s.log.Debug("warm start complete", "entries", len(entries))
}

// Ready returns a channel that is closed once the warm start has finished
// (successfully or not).
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until the warm start has finished or ctx is done.
func (s *Service) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Translate translates text into targetLang, consulting the cache first.
// The optional trailing argument overrides the source language (default:
// the base language).
//
// Blank text, and translation into the source or base language, are
// identity operations. All failures are absorbed: the worst case is the
// original text coming back untranslated.
func (s *Service) Translate(ctx context.Context, text, targetLang string, sourceLang ...string) string {
	source := s.sourceOf(sourceLang)
	if strings.TrimSpace(text) == "" || s.isIdentity(targetLang, source) {
		return text
	}
	return s.translateOne(ctx, text, source, targetLang)
}

// translateOne runs the cache-then-fetch protocol for a single non-blank,
// non-identity text.
func (s *Service) translateOne(ctx context.Context, text, source, target string) string {
	key := s.cacheKey(source, target, text)

	if v, ok := s.memGet(key); ok {
		return v
	}
	if v, ok := s.storeGet(ctx, key); ok {
		s.memSet(key, v)
		return v
	}

	results, err := s.fetch(ctx, []string{text}, source, target)
	if err != nil {
		s.log.Warn("translation failed, returning source text",
			"target", target, "error", err)
		return text
	}

	s.put(ctx, key, results[0])
	return results[0]
}

// fetch calls the provider with the configured timeout and validates the
// result count.
func (s *Service) fetch(ctx context.Context, texts []string, source, target string) ([]string, error) {
	if s.provider == nil {
		return nil, &ProviderError{Message: "no provider configured"}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	results, err := s.provider.Translate(ctx, Request{
		Texts:      texts,
		SourceLang: source,
		TargetLang: target,
	})
	if err != nil {
		return nil, err
	}
	if len(results) != len(texts) {
		return nil, &CountMismatchError{Expected: len(texts), Got: len(results)}
	}
	return results, nil
}

// ClearCache removes every namespaced entry from the durable store and
// empties the in-memory map. Irreversible.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.store != nil {
		keys, err := s.store.Keys(ctx, Namespace)
		if err != nil {
			return &StoreError{Message: "listing cache keys", Cause: err}
		}
		if len(keys) > 0 {
			if err := s.store.DeleteMulti(ctx, keys); err != nil {
				return &StoreError{Message: "deleting cache keys", Cause: err}
			}
		}
	}

	s.mu.Lock()
	s.mem = make(map[string]string)
	s.mu.Unlock()

	return nil
}

// CacheSize returns the number of entries resident in memory. The durable
// store may hold more before the warm start completes.
func (s *Service) CacheSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mem)
}

// BaseLang returns the configured base language.
func (s *Service) BaseLang() string {
	return s.baseLang
}

func (s *Service) cacheKey(source, target, text string) string {
	return Namespace + s.keyFn(source, target, text)
}

// isIdentity reports whether translating into target is a no-op for the
// given source language.
func (s *Service) isIdentity(target, source string) bool {
	t := BaseCode(target)
	return t == BaseCode(source) || t == BaseCode(s.baseLang)
}

func (s *Service) sourceOf(override []string) string {
	if len(override) > 0 && override[0] != "" {
		return override[0]
	}
	return s.baseLang
}

func (s *Service) memGet(key string) (string, bool) {
	s.mu.RLock()
	v, ok := s.mem[key]
	s.mu.RUnlock()
	return v, ok
}

func (s *Service) memSet(key, value string) {
	s.mu.Lock()
	s.mem[key] = value
	s.mu.Unlock()
}

// storeGet looks up a key in the durable store. Any store failure is logged
// and treated as a miss.
func (s *Service) storeGet(ctx context.Context, key string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	v, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("durable store read failed", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// put writes a fetched translation through to both cache layers. A store
// write failure degrades that entry to memory-only caching.
func (s *Service) put(ctx context.Context, key, value string) {
	s.memSet(key, value)
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		s.log.Warn("durable store write failed", "key", key, "error", err)
	}
}
