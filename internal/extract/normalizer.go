package extract

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/propascan/propascan/internal/cache"
	"github.com/propascan/propascan/internal/model"
)

// ErrNoContent signals that no usable article text could be obtained from
// either direct content or a URL fetch. It is a normal request-level
// outcome, not an internal fault.
var ErrNoContent = errors.New("no usable article content")

// DocumentFetcher retrieves a raw HTML document for a URL.
type DocumentFetcher interface {
	FetchHTML(ctx context.Context, rawURL string) (html string, finalURL string, err error)
}

// Normalizer turns raw input into a canonical ExtractedContent record.
// Direct content wins when present; otherwise the URL is fetched and the
// main article is extracted with readability, falling back to a plain
// visible-text walk for pages readability cannot handle.
type Normalizer struct {
	fetcher DocumentFetcher
	store   cache.Cache // nil disables extraction caching
	ttl     time.Duration
}

// NewNormalizer creates a normalizer. store may be nil.
func NewNormalizer(fetcher DocumentFetcher, store cache.Cache, ttl time.Duration) *Normalizer {
	return &Normalizer{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
	}
}

// Normalize produces the canonical content record for an analysis request.
// Every collaborator fault folds into ErrNoContent; extraction failure is
// never a crash.
func (n *Normalizer) Normalize(ctx context.Context, rawURL, directContent string) (*model.ExtractedContent, error) {
	if trimmed := strings.TrimSpace(directContent); trimmed != "" {
		return &model.ExtractedContent{
			Text:   trimmed,
			Source: model.SourceDirectInput,
			Length: len(trimmed),
		}, nil
	}

	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrNoContent
	}

	// The extraction of a given URL is immutable enough to cache; the
	// analysis built on top of it never is.
	key := cache.Key(rawURL)
	if n.store != nil {
		if data, found := n.store.Get(key); found {
			var content model.ExtractedContent
			if err := json.Unmarshal(data, &content); err == nil && content.Text != "" {
				return &content, nil
			}
		}
	}

	html, finalURL, err := n.fetcher.FetchHTML(ctx, rawURL)
	if err != nil {
		log.Printf("content extraction failed for %s: %v", rawURL, err)
		return nil, ErrNoContent
	}

	content := n.extract(html, finalURL)
	if content == nil {
		return nil, ErrNoContent
	}

	if n.store != nil {
		if data, err := json.Marshal(content); err == nil {
			_ = n.store.Set(key, data, n.ttl)
		}
	}

	return content, nil
}

// extract pulls the main article out of an HTML document. Returns nil when
// no text survives extraction.
func (n *Normalizer) extract(html, sourceURL string) *model.ExtractedContent {
	parsedURL, err := url.Parse(sourceURL)
	if err != nil {
		return nil
	}

	var (
		text, title, author, date string
	)

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err == nil {
		text = strings.TrimSpace(article.TextContent)
		title = strings.TrimSpace(article.Title)
		author = strings.TrimSpace(article.Byline)
		if article.PublishedTime != nil {
			date = article.PublishedTime.Format(time.RFC3339)
		}
	} else {
		// Readability gives up on sparse or malformed pages; a plain
		// visible-text walk still salvages something to analyze.
		text = strings.TrimSpace(visibleText(html))
	}

	if text == "" {
		return nil
	}

	// Meta tags fill in whatever readability could not name.
	meta := documentMeta(html)
	if title == "" {
		title = meta.title
	}
	if author == "" {
		author = meta.author
	}
	if date == "" {
		date = meta.published
	}

	return &model.ExtractedContent{
		Text:   text,
		Title:  title,
		Author: author,
		Date:   date,
		Source: sourceURL,
		Length: len(text),
	}
}
