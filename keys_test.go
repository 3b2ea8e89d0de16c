package lingo

import (
	"context"
	"strings"
	"testing"
)

func TestHashText(t *testing.T) {
	h1 := HashText("Hello World")
	h2 := HashText("  Hello World  ") // Trimmed before hashing
	h3 := HashText("Hello World!")

	if h1 != h2 {
		t.Error("hash should ignore surrounding whitespace")
	}
	if h1 == h3 {
		t.Error("different texts should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64-char hex hash, got %d chars", len(h1))
	}
}

func TestHashKey_LongTextsDistinct(t *testing.T) {
	shared := strings.Repeat("a", 50)
	k1 := HashKey("en", "hi", shared+" first tail")
	k2 := HashKey("en", "hi", shared+" second tail")

	if k1 == k2 {
		t.Error("HashKey collided for texts sharing a 50-char prefix")
	}
}

func TestHashKey_LanguagePairsDistinct(t *testing.T) {
	if HashKey("en", "hi", "Hello") == HashKey("en", "es", "Hello") {
		t.Error("HashKey collided across target languages")
	}
	if HashKey("en", "hi", "Hello") == HashKey("es", "hi", "Hello") {
		t.Error("HashKey collided across source languages")
	}
}

func TestTruncateKey_PrefixCollision(t *testing.T) {
	fn := TruncateKey(50)
	shared := strings.Repeat("x", 50)

	k1 := fn("en", "hi", shared+" one ending")
	k2 := fn("en", "hi", shared+" another ending")

	// The legacy scheme is deliberately lossy: a shared 50-rune prefix is a
	// shared identity.
	if k1 != k2 {
		t.Error("TruncateKey(50) should collide for texts sharing a 50-rune prefix")
	}

	k3 := fn("en", "hi", "short text")
	k4 := fn("en", "hi", "short test")
	if k3 == k4 {
		t.Error("TruncateKey should distinguish texts shorter than the limit")
	}
}

func TestTruncateKey_RuneSafe(t *testing.T) {
	fn := TruncateKey(3)
	key := fn("en", "hi", "日本語テキスト")

	if !strings.HasSuffix(key, "日本語") {
		t.Errorf("truncation split a multi-byte rune: %q", key)
	}
}

// The collision boundary observed end to end: with the legacy key scheme,
// translating the second of two near-duplicate long strings returns the
// first's cached translation without a remote call.
func TestService_TruncationCollisionBehavior(t *testing.T) {
	svc, _, p := newTestService(t, WithKeyFunc(TruncateKey(50)))
	ctx := context.Background()

	shared := strings.Repeat("z", 50)
	first := shared + " first variant"
	second := shared + " second variant"

	got1 := svc.Translate(ctx, first, "hi")
	got2 := svc.Translate(ctx, second, "hi")

	if got2 != got1 {
		t.Errorf("expected the collision to return the first cached value, got %q vs %q", got2, got1)
	}
	if p.calls() != 1 {
		t.Errorf("collision still made %d provider calls, want 1", p.calls())
	}

	// The default scheme does not collide.
	svc2, _, p2 := newTestService(t)
	svc2.Translate(ctx, first, "hi")
	svc2.Translate(ctx, second, "hi")
	if p2.calls() != 2 {
		t.Errorf("HashKey scheme made %d provider calls for distinct texts, want 2", p2.calls())
	}
}
