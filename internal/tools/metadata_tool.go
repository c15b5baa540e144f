// In file: internal/tools/metadata_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/dileep-u-k/device-tools/internal/metadata"
)

// --- Web Metadata Tool Implementation ---

// MetadataFetcher downloads a page and extracts its preview metadata.
type MetadataFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*metadata.Page, error)
}

// TextGenerator writes free text from a prompt. Backed by an LLM provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	platformGeneral   = "general"
	platformTwitter   = "twitter"
	platformInstagram = "instagram"
	platformLinkedIn  = "linkedin"
	platformFacebook  = "facebook"
)

// Summary length limits per platform, in runes.
var platformSummaryLimits = map[string]int{
	platformGeneral:   400,
	platformTwitter:   280,
	platformInstagram: 300,
	platformLinkedIn:  600,
	platformFacebook:  500,
}

var platformHashtagLimits = map[string]int{
	platformTwitter: 3,
}

const defaultHashtagLimit = 5

var metadataErrorKinds = []ErrorKind{
	KindEmptyURL,
	KindInvalidURL,
	KindInvalidFieldValue,
	KindFetchFailed,
	KindNoData,
}

var metadataEncoder = NewEncoder(
	StringField("url"),
	StringField("title"),
	StringField("description"),
	StringField("imageURL"),
	StringField("siteName"),
	StringField("summary"),
	ListField("hashtags", " "),
	StringField("platform"),
	StringField("content"),
)

// PageMetadata is the metadata tool's result.
type PageMetadata struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageURL"`
	SiteName    string   `json:"siteName"`
	Blurb       string   `json:"summary"`
	Hashtags    []string `json:"-"`
	Platform    string   `json:"platform"`
	Content     string   `json:"content"`
}

func (p *PageMetadata) Fields() map[string]any {
	return map[string]any{
		"url":         p.URL,
		"title":       p.Title,
		"description": p.Description,
		"imageURL":    p.ImageURL,
		"siteName":    p.SiteName,
		"summary":     p.Blurb,
		"hashtags":    p.Hashtags,
		"platform":    p.Platform,
		"content":     p.Content,
	}
}

func (p *PageMetadata) Summary() string {
	title := p.Title
	if title == "" {
		title = p.URL
	}
	if p.Blurb == "" {
		return title
	}
	return fmt.Sprintf("%s: %s", title, p.Blurb)
}

// MetadataTool builds link previews: title, description, image, a short
// platform-flavored summary and hashtags.
type MetadataTool struct {
	fetcher   MetadataFetcher
	generator TextGenerator
}

var _ ToolExecutor = (*MetadataTool)(nil)

// NewMetadataTool creates the tool. generator may be nil, in which case
// summaries fall back to the page description.
func NewMetadataTool(fetcher MetadataFetcher, generator TextGenerator) *MetadataTool {
	return &MetadataTool{fetcher: fetcher, generator: generator}
}

func (mt *MetadataTool) Definition() Tool {
	return NewFunctionTool(
		"fetchWebMetadata",
		"Fetch a web page and return its title, description, preview image, a short summary and suggested hashtags for sharing.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"url": {
					Type:        "string",
					Description: "The page URL. https:// is assumed when no scheme is given.",
				},
				"includeContent": {
					Type:        "boolean",
					Description: "Include an excerpt of the page text.",
					Default:     true,
				},
				"maxContentLength": {
					Type:        "integer",
					Description: "Maximum excerpt length in characters.",
					Default:     500.0,
					Minimum:     Bound(50),
					Maximum:     Bound(5000),
				},
				"platform": {
					Type:        "string",
					Description: "Where the link will be shared; shapes the summary and hashtags.",
					Enum:        []string{platformGeneral, platformTwitter, platformInstagram, platformLinkedIn, platformFacebook},
					Default:     platformGeneral,
				},
				"includeHashtags": {
					Type:        "boolean",
					Description: "Suggest hashtags.",
					Default:     true,
				},
			},
			Required: []string{"url"},
		},
	)
}

func (mt *MetadataTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, mt.Definition().Function.Parameters)
	if err != nil {
		argErr := asArgumentError(err)
		echo := echoArguments(arguments, map[string]string{"url": "url", "platform": "platform"})
		if argErr.Kind == KindMissingRequiredField && argErr.Field == "url" {
			return metadataEncoder.EncodeError(NewError(KindEmptyURL, ""), echo)
		}
		return metadataEncoder.EncodeError(argErr.ToolError(), echo)
	}
	rawURL := args.String("url")
	platform := args.String("platform")
	echo := map[string]any{"url": rawURL, "platform": platform}

	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return metadataEncoder.EncodeError(Classify(err, metadataErrorKinds, KindInvalidURL), echo)
	}
	echo["url"] = pageURL

	page, err := mt.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		log.Printf("❌ fetchWebMetadata failed for %s: %v", pageURL, err)
		return metadataEncoder.EncodeError(WrapError(KindFetchFailed, "", err), echo)
	}
	if page.Title == "" && page.Description == "" {
		return metadataEncoder.EncodeError(NewError(KindNoData, "page has no title or description"), echo)
	}

	result := &PageMetadata{
		URL:         pageURL,
		Title:       page.Title,
		Description: page.Description,
		ImageURL:    page.ImageURL,
		SiteName:    page.SiteName,
		Platform:    platform,
	}
	if page.URL != "" {
		result.URL = page.URL
	}
	if args.Bool("includeContent") {
		result.Content = truncateRunes(page.Content, args.Int("maxContentLength"))
	}
	result.Blurb = mt.summarize(ctx, page, platform)
	if args.Bool("includeHashtags") {
		limit, ok := platformHashtagLimits[platform]
		if !ok {
			limit = defaultHashtagLimit
		}
		result.Hashtags = Hashtags(page.Title+" "+page.Description, limit)
	}
	return metadataEncoder.Encode(result)
}

// summarize asks the generator for a share-ready summary and falls back to
// the description (or title) when it is absent or fails.
func (mt *MetadataTool) summarize(ctx context.Context, page *metadata.Page, platform string) string {
	limit := platformSummaryLimits[platform]
	fallback := page.Description
	if fallback == "" {
		fallback = page.Title
	}
	if mt.generator == nil {
		return truncateRunes(fallback, limit)
	}

	prompt := fmt.Sprintf(
		"Write a concise summary of this web page for sharing on %s, at most %d characters. Reply with the summary only.\n\nTitle: %s\nDescription: %s\nSite: %s",
		platform, limit, page.Title, page.Description, page.SiteName,
	)
	summary, err := mt.generator.Generate(ctx, prompt)
	summary = strings.TrimSpace(summary)
	if err != nil || summary == "" {
		log.Printf("⚠️ Summary generation failed, using description: %v", err)
		return truncateRunes(fallback, limit)
	}
	return truncateRunes(summary, limit)
}

// NormalizeURL trims raw, assumes https when no scheme is given and requires
// an http(s) URL with a host.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewError(KindEmptyURL, "")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", WrapError(KindInvalidURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", WrapError(KindInvalidURL, raw, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Hostname() == "" {
		return "", WrapError(KindInvalidURL, raw, errors.New("missing host"))
	}
	return u.String(), nil
}

var hashtagStopwords = map[string]bool{
	"about": true, "after": true, "also": true, "been": true, "before": true,
	"being": true, "best": true, "both": true, "from": true, "have": true,
	"here": true, "into": true, "just": true, "more": true, "most": true,
	"only": true, "other": true, "over": true, "some": true, "such": true,
	"than": true, "that": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "those": true,
	"through": true, "very": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "with": true, "your": true, "will": true,
	"would": true, "could": true, "should": true, "page": true, "home": true,
}

// Hashtags picks up to limit keyword tags from text, most frequent first and
// ties broken by first appearance.
func Hashtags(text string, limit int) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	counts := map[string]int{}
	var order []string
	for _, w := range words {
		if len([]rune(w)) < 4 || hashtagStopwords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}
	tags := make([]string, len(order))
	for i, w := range order {
		tags[i] = "#" + w
	}
	return tags
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
