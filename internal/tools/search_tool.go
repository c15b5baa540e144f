// In file: internal/tools/search_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dileep-u-k/device-tools/internal/search"
)

// --- Web Search Tool Implementation ---

// SearchProvider runs one web search.
type SearchProvider interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

// SearchConfig is read once at startup from the environment or the persisted
// settings store.
type SearchConfig struct {
	APIKey string
}

var searchErrorKinds = []ErrorKind{
	KindMissingAPIKey,
	KindEmptyQuery,
	KindInvalidFieldValue,
	KindInvalidURL,
	KindNetworkError,
	KindAPIError,
	KindNoResults,
}

var searchEncoder = NewEncoder(
	StringField("query"),
	StringField("abstract"),
	StringField("abstractSource"),
	IntField("relatedTopicsCount"),
	StringField("summary"),
	StringField("searchType"),
	StringField("category"),
)

// SearchResults is the search tool's result.
type SearchResults struct {
	Query              string `json:"query"`
	Abstract           string `json:"abstract"`
	AbstractSource     string `json:"abstractSource"`
	RelatedTopicsCount int    `json:"relatedTopicsCount"`
	Listing            string `json:"summary"`
	SearchType         string `json:"searchType"`
	Category           string `json:"category"`
}

func (s *SearchResults) Fields() map[string]any {
	return map[string]any{
		"query":              s.Query,
		"abstract":           s.Abstract,
		"abstractSource":     s.AbstractSource,
		"relatedTopicsCount": s.RelatedTopicsCount,
		"summary":            s.Listing,
		"searchType":         s.SearchType,
		"category":           s.Category,
	}
}

func (s *SearchResults) Summary() string {
	return fmt.Sprintf("Found %d results for %q", s.RelatedTopicsCount, s.Query)
}

// SearchTool searches the web through Exa.
type SearchTool struct {
	provider SearchProvider
	apiKey   string
}

// Statically verify that SearchTool implements the ToolExecutor interface.
var _ ToolExecutor = (*SearchTool)(nil)

// NewSearchTool creates the tool. An empty API key is allowed here; every
// invocation then fails with missingAPIKey.
func NewSearchTool(provider SearchProvider, cfg SearchConfig) *SearchTool {
	return &SearchTool{provider: provider, apiKey: strings.TrimSpace(cfg.APIKey)}
}

func (st *SearchTool) Definition() Tool {
	return NewFunctionTool(
		"searchWeb",
		"Search the web for up-to-date information and return the top results with short excerpts.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					Description: "What to search for, e.g., 'latest Mars rover findings'.",
				},
				"numResults": {
					Type:        "integer",
					Description: "How many results to return (1-10).",
					Default:     5.0,
					Minimum:     Bound(1),
					Maximum:     Bound(10),
				},
				"type": {
					Type:        "string",
					Description: "neural for meaning-based search, keyword for exact terms.",
					Enum:        []string{search.TypeNeural, search.TypeKeyword},
					Default:     search.TypeNeural,
				},
				"includeContents": {
					Type:        "boolean",
					Description: "Include a text excerpt for each result.",
					Default:     true,
				},
				"category": {
					Type:        "string",
					Description: "Restrict results to one kind of source.",
					Enum:        search.Categories,
				},
			},
			Required: []string{"query"},
		},
	)
}

// Raw arguments echoed on failures, by output key.
var searchEchoKeys = map[string]string{"query": "query", "type": "searchType", "category": "category"}

func (st *SearchTool) Execute(ctx context.Context, arguments string) Output {
	rawEcho := echoArguments(arguments, searchEchoKeys)
	// The key is checked first so a misconfigured tool never reaches the network.
	if st.apiKey == "" {
		return searchEncoder.EncodeError(NewError(KindMissingAPIKey, ""), rawEcho)
	}

	args, err := ParseArguments(arguments, st.Definition().Function.Parameters)
	if err != nil {
		argErr := asArgumentError(err)
		if argErr.Kind == KindMissingRequiredField && argErr.Field == "query" {
			return searchEncoder.EncodeError(NewError(KindEmptyQuery, ""), rawEcho)
		}
		return searchEncoder.EncodeError(argErr.ToolError(), rawEcho)
	}

	req := search.Request{
		Query:           args.String("query"),
		NumResults:      args.Int("numResults"),
		Type:            args.String("type"),
		IncludeContents: args.Bool("includeContents"),
		Category:        args.String("category"),
	}
	echo := map[string]any{"query": req.Query, "searchType": req.Type, "category": req.Category}

	resp, err := st.provider.Search(ctx, req)
	if err != nil {
		te := Classify(mapSearchError(err), searchErrorKinds, KindAPIError)
		log.Printf("❌ searchWeb failed for %q: %v", req.Query, te)
		return searchEncoder.EncodeError(te, echo)
	}
	if len(resp.Results) == 0 {
		return searchEncoder.EncodeError(NewError(KindNoResults, req.Query), echo)
	}

	results := resp.Results
	if len(results) > req.NumResults {
		results = results[:req.NumResults]
	}
	first := results[0]
	abstract := strings.TrimSpace(first.Text)
	if abstract == "" {
		abstract = first.Title
	}

	var listing strings.Builder
	for i, r := range results {
		if i > 0 {
			listing.WriteString("\n")
		}
		title := r.Title
		if title == "" {
			title = r.URL
		}
		listing.WriteString(fmt.Sprintf("%d. %s (%s)", i+1, title, r.URL))
	}

	return searchEncoder.Encode(&SearchResults{
		Query:              req.Query,
		Abstract:           truncateRunes(abstract, 500),
		AbstractSource:     first.URL,
		RelatedTopicsCount: len(results),
		Listing:            listing.String(),
		SearchType:         req.Type,
		Category:           req.Category,
	})
}

func mapSearchError(err error) error {
	var statusErr *search.StatusError
	switch {
	case errors.As(err, &statusErr):
		return WrapError(KindAPIError, "", err)
	case errors.Is(err, search.ErrInvalidURL):
		return WrapError(KindInvalidURL, "", err)
	case errors.Is(err, search.ErrDecode):
		return WrapError(KindAPIError, "", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return WrapError(KindNetworkError, "", err)
	case errors.Is(err, search.ErrTransport):
		return WrapError(KindNetworkError, "", err)
	}
	return WrapError(KindAPIError, "", err)
}
