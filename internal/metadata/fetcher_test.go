package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!doctype html>
<html><head>
<title>Fallback Title</title>
<meta property="og:title" content="  Go Concurrency   Patterns ">
<meta name="description" content="Plain description">
<meta property="og:description" content="Pipelines and cancellation in Go.">
<meta property="og:image" content="/img/cover.png">
<script>var tracking = "ignore me";</script>
</head><body>
<nav><p>Menu entry</p></nav>
<h1>Concurrency</h1>
<p>Goroutines are   cheap.</p>
<ul><li>Fan out</li><li>Fan in</li></ul>
<footer><p>Copyright</p></footer>
</body></html>`

func TestParseOpenGraph(t *testing.T) {
	base, _ := url.Parse("https://www.example.com/blog/post")

	page, err := Parse(strings.NewReader(articleHTML), base)
	require.NoError(t, err)

	assert.Equal(t, "Go Concurrency Patterns", page.Title)
	assert.Equal(t, "Pipelines and cancellation in Go.", page.Description)
	assert.Equal(t, "https://www.example.com/img/cover.png", page.ImageURL)
	assert.Equal(t, "example.com", page.SiteName)
	assert.Equal(t, "Concurrency Goroutines are cheap. Fan out Fan in", page.Content)
}

func TestParseFallbacks(t *testing.T) {
	html := `<html><head><title> Only a title </title>
<meta name="twitter:description" content="From the card">
<meta property="og:site_name" content="Example Site">
</head><body></body></html>`

	page, err := Parse(strings.NewReader(html), nil)
	require.NoError(t, err)

	assert.Equal(t, "Only a title", page.Title)
	assert.Equal(t, "From the card", page.Description)
	assert.Equal(t, "Example Site", page.SiteName)
	assert.Empty(t, page.ImageURL)
	assert.Empty(t, page.Content)
}

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	page, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL+"/post")
	require.NoError(t, err)

	assert.Equal(t, userAgent, gotUA)
	assert.Equal(t, srv.URL+"/post", page.URL)
	assert.Equal(t, srv.URL+"/img/cover.png", page.ImageURL)
	assert.Equal(t, "Go Concurrency Patterns", page.Title)
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetchNotHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	_, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	assert.True(t, errors.Is(err, ErrNotHTML))
}

func TestFetchWithClient(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	// The default client does not trust the test certificate.
	_, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	page, err := NewFetcherWithClient(srv.Client()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Go Concurrency Patterns", page.Title)
}
