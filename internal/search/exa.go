// In file: internal/search/exa.go

// Package search is a client for the Exa web search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is Exa's search endpoint.
const DefaultBaseURL = "https://api.exa.ai/search"

const (
	TypeNeural  = "neural"
	TypeKeyword = "keyword"
)

// Categories accepted by Exa's category filter.
var Categories = []string{
	"company",
	"research paper",
	"news",
	"pdf",
	"github",
	"tweet",
	"personal site",
	"linkedin profile",
	"financial report",
}

var (
	// ErrTransport wraps failures to reach the API at all.
	ErrTransport = errors.New("search request failed")
	// ErrDecode wraps responses that are not the expected JSON.
	ErrDecode = errors.New("failed to decode search response")
	// ErrInvalidURL is returned when the configured endpoint cannot be parsed.
	ErrInvalidURL = errors.New("invalid search endpoint")
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("search API returned status %d: %s", e.StatusCode, e.Body)
}

// Request is one search.
type Request struct {
	Query           string
	NumResults      int
	Type            string
	IncludeContents bool
	Category        string
}

// Result is one hit.
type Result struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	PublishedDate string  `json:"publishedDate,omitempty"`
	Author        string  `json:"author,omitempty"`
	Score         float64 `json:"score,omitempty"`
	Text          string  `json:"text,omitempty"`
}

// Response is the decoded reply.
type Response struct {
	Results []Result `json:"results"`
}

// Config holds client settings. The API key is passed per client, not here.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client talks to Exa.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client with a dedicated HTTP client.
func NewClient(apiKey string, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type requestBody struct {
	Query      string          `json:"query"`
	NumResults int             `json:"numResults"`
	Type       string          `json:"type"`
	Category   string          `json:"category,omitempty"`
	Contents   *contentOptions `json:"contents,omitempty"`
}

type contentOptions struct {
	Text textOptions `json:"text"`
}

type textOptions struct {
	MaxCharacters int `json:"maxCharacters"`
}

// Search runs one query.
func (c *Client) Search(ctx context.Context, req Request) (*Response, error) {
	if _, err := url.ParseRequestURI(c.baseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	body := requestBody{
		Query:      req.Query,
		NumResults: req.NumResults,
		Type:       req.Type,
		Category:   req.Category,
	}
	if req.IncludeContents {
		body.Contents = &contentOptions{Text: textOptions{MaxCharacters: 1000}}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("User-Agent", "Device-Tools-Agent/1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := string(raw)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &out, nil
}
