package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotKey = r.Header.Get("x-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"Go 1.24","url":"https://go.dev/blog","score":0.91,"text":"Release notes"}]}`))
	}))
	defer srv.Close()

	client := NewClient("secret", Config{BaseURL: srv.URL})
	resp, err := client.Search(context.Background(), Request{
		Query:           "go release",
		NumResults:      3,
		Type:            TypeKeyword,
		IncludeContents: true,
		Category:        "news",
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "go release", gotBody["query"])
	assert.Equal(t, 3.0, gotBody["numResults"])
	assert.Equal(t, TypeKeyword, gotBody["type"])
	assert.Equal(t, "news", gotBody["category"])
	assert.Equal(t, map[string]any{"text": map[string]any{"maxCharacters": 1000.0}}, gotBody["contents"])

	require.Len(t, resp.Results, 1)
	assert.Equal(t, Result{Title: "Go 1.24", URL: "https://go.dev/blog", Score: 0.91, Text: "Release notes"}, resp.Results[0])
}

func TestSearchOmitsContentsAndCategory(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", Config{BaseURL: srv.URL}).Search(context.Background(), Request{Query: "q", NumResults: 1, Type: TypeNeural})
	require.NoError(t, err)
	assert.NotContains(t, gotBody, "contents")
	assert.NotContains(t, gotBody, "category")
}

func TestSearchErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad key"}`))
		}))
		defer srv.Close()

		_, err := NewClient("k", Config{BaseURL: srv.URL}).Search(context.Background(), Request{Query: "q"})
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "bad key")
	})

	t.Run("decode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewClient("k", Config{BaseURL: srv.URL}).Search(context.Background(), Request{Query: "q"})
		assert.True(t, errors.Is(err, ErrDecode))
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := NewClient("k", Config{BaseURL: srv.URL}).Search(context.Background(), Request{Query: "q"})
		assert.True(t, errors.Is(err, ErrTransport))
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		_, err := NewClient("k", Config{BaseURL: "::nope"}).Search(context.Background(), Request{Query: "q"})
		assert.True(t, errors.Is(err, ErrInvalidURL))
	})
}
