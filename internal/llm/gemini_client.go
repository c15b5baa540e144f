// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient generates text with Google's Gemini models.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ TextGenerator = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey string, cfg GenerationConfig, opts ...option.ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelID := cfg.Model
	if modelID == "" {
		modelID = defaultGeminiModel
	}
	model := client.GenerativeModel(modelID)
	// Use the SDK setters; the config fields are pointers.
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	model.SetMaxOutputTokens(int32(maxTokens))
	if cfg.Temperature != nil {
		model.SetTemperature(*cfg.Temperature)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate sends one prompt and returns the concatenated text parts of the
// first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no content returned from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned an empty reply")
	}
	return text, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
