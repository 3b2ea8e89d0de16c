package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nivalis-labs/lingo"
)

const defaultGoogleEndpoint = "https://translation.googleapis.com/language/translate/v2"

// Google calls the Google Cloud Translation v2 REST API. One call carries
// the whole batch: q is always sent as an array and the response's
// translations come back in input order.
type Google struct {
	client   *http.Client
	apiKey   string
	endpoint string
	timeout  time.Duration
}

// GoogleConfig holds configuration for the Google provider. The API key is
// injected here; resolve it from your environment or secret store, never a
// source literal.
type GoogleConfig struct {
	APIKey     string        // Required
	Endpoint   string        // Custom endpoint (optional, mainly for tests)
	HTTPClient *http.Client  // Custom HTTP client (optional)
	Timeout    time.Duration // Per-request timeout (default: 15s)
}

// NewGoogle creates a new Google Translation provider.
func NewGoogle(cfg GoogleConfig) *Google {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultGoogleEndpoint
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Google{
		client:   client,
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		timeout:  timeout,
	}
}

type googleRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate implements Provider.
func (g *Google) Translate(ctx context.Context, req Request) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}
	if g.apiKey == "" {
		return nil, &lingo.ProviderError{Message: "google: API key not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(googleRequest{
		Q:      req.Texts,
		Source: req.SourceLang,
		Target: req.TargetLang,
		Format: "text",
	})
	if err != nil {
		return nil, &lingo.ProviderError{Message: "google: encoding request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.endpoint+"?key="+url.QueryEscape(g.apiKey), bytes.NewReader(body))
	if err != nil {
		return nil, &lingo.ProviderError{Message: "google: building request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", lingo.UserAgent())

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &lingo.ProviderError{
			Message:   "google: request failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, &lingo.ProviderError{
			Message:   "google: reading response",
			Cause:     err,
			Retryable: true,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &lingo.ProviderError{
			Message:   fmt.Sprintf("google: API returned %d", resp.StatusCode),
			Retryable: isRetryableStatus(resp.StatusCode),
		}
	}

	var parsed googleResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, &lingo.ProviderError{Message: "google: malformed response", Cause: err}
	}
	if parsed.Error.Code != 0 {
		return nil, &lingo.ProviderError{
			Message:   fmt.Sprintf("google: %s", parsed.Error.Message),
			Retryable: isRetryableStatus(parsed.Error.Code),
		}
	}

	if len(parsed.Data.Translations) != len(req.Texts) {
		return nil, &lingo.CountMismatchError{
			Expected: len(req.Texts),
			Got:      len(parsed.Data.Translations),
		}
	}

	results := make([]string, len(req.Texts))
	for i, tr := range parsed.Data.Translations {
		results[i] = tr.TranslatedText
	}
	return results, nil
}

// isRetryableStatus reports whether an HTTP status is worth retrying.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Verify Google implements Provider
var _ Provider = (*Google)(nil)
