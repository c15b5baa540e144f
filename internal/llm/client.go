// In file: internal/llm/client.go

// Package llm contains the text generators the metadata tool uses to write
// share-ready page summaries.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// GenerationConfig controls one generator's output.
type GenerationConfig struct {
	// Model is the provider's model ID, e.g. "gemini-1.5-flash" or "gpt-4o-mini".
	Model string `yaml:"model"`
	// MaxTokens caps the reply length. Zero uses defaultMaxTokens.
	MaxTokens int `yaml:"max_tokens"`
	// Temperature is optional; nil leaves the provider default.
	Temperature *float32 `yaml:"temperature"`
}

// TextGenerator turns a prompt into a single block of text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// New builds the generator for provider. It returns nil and no error for
// ProviderNone or an empty provider, meaning summaries are not generated.
func New(ctx context.Context, provider, apiKey string, cfg GenerationConfig) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, apiKey, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		client, err := NewOpenAIClient(apiKey, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown summary provider %q", provider)
}
