package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nivalis-labs/lingo"
	"github.com/sashabaranov/go-openai"
)

// OpenAI implements Provider using OpenAI chat completions. The batch is
// sent as a JSON array and the model is asked to answer with a JSON object
// whose "translations" array mirrors the input order.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // Required
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAI{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate implements Provider.
func (p *OpenAI) Translate(ctx context.Context, req Request) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	input, _ := json.Marshal(req.Texts)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: string(input)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &lingo.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &lingo.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

func (p *OpenAI) systemPrompt(req Request) string {
	source := lingo.GetLanguageName(req.SourceLang)
	target := lingo.GetLanguageName(req.TargetLang)

	return fmt.Sprintf(`You are an expert native translator. Translate each of the provided strings from %s into idiomatic, natural-sounding %s.

Rules:
- Do NOT translate variables or placeholders (e.g., {{name}}, {count}, %%s, $1).
- Do NOT translate URLs, email addresses, or content inside backticks.
- Preserve meaningful whitespace (leading/trailing spaces, newlines).
- Never translate idioms literally; use natural %s equivalents.

Return a valid JSON object with a single key "translations" containing an array of strings in the exact same order as the input.
Example: { "translations": ["first translation", "second translation"] }
Do NOT wrap the output in Markdown code blocks.`, source, target, target)
}

// parseResponse extracts the translations array, tolerating stray code
// fences around the JSON.
func (p *OpenAI) parseResponse(content string, expected int) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed struct {
		Translations []string `json:"translations"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, &lingo.ProviderError{
			Message: "malformed JSON from OpenAI",
			Cause:   err,
		}
	}

	if len(parsed.Translations) != expected {
		return nil, &lingo.CountMismatchError{
			Expected: expected,
			Got:      len(parsed.Translations),
		}
	}
	return parsed.Translations, nil
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAI implements Provider
var _ Provider = (*OpenAI)(nil)
