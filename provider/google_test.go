package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/nivalis-labs/lingo"
)

// googleHandler returns an httptest handler answering with the given
// translations and capturing the request body.
func googleHandler(t *testing.T, translations []string, captured *googleRequest) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("API key missing from query: %s", r.URL.RawQuery)
		}

		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decoding request body: %v", err)
			}
		}

		var resp googleResponse
		for _, tr := range translations {
			resp.Data.Translations = append(resp.Data.Translations,
				struct {
					TranslatedText string `json:"translatedText"`
				}{TranslatedText: tr})
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGoogle_Translate(t *testing.T) {
	var captured googleRequest
	srv := httptest.NewServer(googleHandler(t, []string{"नमस्ते", "दुनिया"}, &captured))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{APIKey: "test-key", Endpoint: srv.URL})

	results, err := g.Translate(context.Background(), Request{
		Texts:      []string{"Hello", "World"},
		SourceLang: "en",
		TargetLang: "hi",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if want := []string{"नमस्ते", "दुनिया"}; !reflect.DeepEqual(results, want) {
		t.Errorf("results = %v, want %v", results, want)
	}

	// Wire format: q as array, text format, both language codes.
	if !reflect.DeepEqual(captured.Q, []string{"Hello", "World"}) {
		t.Errorf("request q = %v", captured.Q)
	}
	if captured.Source != "en" || captured.Target != "hi" {
		t.Errorf("request langs = %s→%s", captured.Source, captured.Target)
	}
	if captured.Format != "text" {
		t.Errorf("request format = %q, want text", captured.Format)
	}
}

func TestGoogle_EmptyBatch(t *testing.T) {
	g := NewGoogle(GoogleConfig{APIKey: "test-key"})

	results, err := g.Translate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

func TestGoogle_MissingAPIKey(t *testing.T) {
	g := NewGoogle(GoogleConfig{})

	_, err := g.Translate(context.Background(), Request{Texts: []string{"Hello"}})

	var provErr *lingo.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestGoogle_ServerError_Retryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{APIKey: "test-key", Endpoint: srv.URL})

	_, err := g.Translate(context.Background(), Request{Texts: []string{"Hello"}, TargetLang: "hi"})

	var provErr *lingo.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !provErr.Retryable {
		t.Error("503 should be retryable")
	}
}

func TestGoogle_ClientError_NotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{APIKey: "test-key", Endpoint: srv.URL})

	_, err := g.Translate(context.Background(), Request{Texts: []string{"Hello"}, TargetLang: "hi"})

	var provErr *lingo.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Retryable {
		t.Error("400 should not be retryable")
	}
}

func TestGoogle_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{APIKey: "test-key", Endpoint: srv.URL})

	if _, err := g.Translate(context.Background(), Request{Texts: []string{"Hello"}, TargetLang: "hi"}); err == nil {
		t.Error("expected an error for a malformed response")
	}
}

func TestGoogle_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(googleHandler(t, []string{"only one"}, nil))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{APIKey: "test-key", Endpoint: srv.URL})

	_, err := g.Translate(context.Background(), Request{
		Texts:      []string{"Hello", "World"},
		TargetLang: "hi",
	})

	var mismatch *lingo.CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CountMismatchError, got %v", err)
	}
	if mismatch.Expected != 2 || mismatch.Got != 1 {
		t.Errorf("mismatch = %+v", mismatch)
	}
}

func TestGoogle_APIErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	g := NewGoogle(GoogleConfig{APIKey: "test-key", Endpoint: srv.URL})

	_, err := g.Translate(context.Background(), Request{Texts: []string{"Hello"}, TargetLang: "hi"})

	var provErr *lingo.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !provErr.Retryable {
		t.Error("429 payload should be retryable")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tt := range tests {
		if got := isRetryableStatus(tt.code); got != tt.want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
