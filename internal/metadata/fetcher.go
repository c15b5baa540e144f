// In file: internal/metadata/fetcher.go

// Package metadata fetches a web page and extracts its link-preview
// metadata (Open Graph, Twitter card and plain HTML tags) plus readable text.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Device-Tools-Agent/1.0"
	// Pages beyond this size are truncated before parsing.
	maxBodyBytes = 2 << 20
)

// ErrNotHTML is returned when the page is not an HTML document.
var ErrNotHTML = errors.New("response is not HTML")

// StatusError is returned when the page answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("page returned status %d", e.StatusCode)
}

// Page is the metadata extracted from one document.
type Page struct {
	URL         string
	Title       string
	Description string
	ImageURL    string
	SiteName    string
	// Content is the page's readable text, whitespace-collapsed.
	Content string
}

// Config holds fetcher settings.
type Config struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Fetcher downloads and parses pages.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher builds a Fetcher with a dedicated HTTP client.
func NewFetcher(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{httpClient: &http.Client{Timeout: timeout}}
}

// NewFetcherWithClient uses the given client as is.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{httpClient: client}
}

// Fetch downloads pageURL and extracts its metadata.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(strings.ToLower(ct), "html") {
		return nil, fmt.Errorf("%w: %s", ErrNotHTML, ct)
	}

	page, err := Parse(io.LimitReader(resp.Body, maxBodyBytes), resp.Request.URL)
	if err != nil {
		return nil, err
	}
	page.URL = resp.Request.URL.String()
	return page, nil
}

// Parse extracts metadata from an HTML document. base resolves relative
// image URLs and may be nil.
func Parse(r io.Reader, base *url.URL) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &Page{
		Title: firstNonEmpty(
			metaContent(doc, "property", "og:title"),
			metaContent(doc, "name", "twitter:title"),
			collapse(doc.Find("title").First().Text()),
		),
		Description: firstNonEmpty(
			metaContent(doc, "property", "og:description"),
			metaContent(doc, "name", "twitter:description"),
			metaContent(doc, "name", "description"),
		),
		SiteName: metaContent(doc, "property", "og:site_name"),
	}

	image := firstNonEmpty(
		metaContent(doc, "property", "og:image"),
		metaContent(doc, "name", "twitter:image"),
	)
	page.ImageURL = resolve(base, image)
	if page.SiteName == "" && base != nil {
		page.SiteName = strings.TrimPrefix(base.Hostname(), "www.")
	}

	doc.Find("script, style, nav, footer, header, aside, iframe, noscript").Remove()
	var parts []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	page.Content = strings.Join(parts, " ")
	return page, nil
}

func metaContent(doc *goquery.Document, attr, name string) string {
	var value string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if key, ok := s.Attr(attr); ok && strings.EqualFold(key, name) {
			content, _ := s.Attr("content")
			value = collapse(content)
			return value == ""
		}
		return true
	})
	return value
}

func resolve(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
