// In file: internal/llm/openai_client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const openAIAPIURL = "https://api.openai.com/v1/chat/completions"

// openAIRequest is the chat completions request body.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature *float32        `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIClient generates text with OpenAI chat models over plain HTTP.
type OpenAIClient struct {
	apiKey     string
	endpoint   string
	cfg        GenerationConfig
	httpClient *http.Client
}

// Statically verify that OpenAIClient implements the TextGenerator interface.
var _ TextGenerator = (*OpenAIClient)(nil)

func NewOpenAIClient(apiKey string, cfg GenerationConfig) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		endpoint:   openAIAPIURL,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// WithEndpoint points the client at a compatible server.
func (c *OpenAIClient) WithEndpoint(endpoint string) *OpenAIClient {
	c.endpoint = endpoint
	return c
}

// Generate sends prompt as a single user message. There are no retries; a
// failure is reported and the caller falls back.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(openAIRequest{
		Model:       c.cfg.Model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("openai API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no choices returned from OpenAI")
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openai returned an empty reply")
	}
	return text, nil
}
