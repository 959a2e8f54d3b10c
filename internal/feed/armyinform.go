// Package feed pulls items from the external ArmyInform RSS feed and
// scrapes article pages for a representative thumbnail.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// summaryLimit caps the plain-text summary derived from a feed entry
const summaryLimit = 200

// Item is one entry of the external feed, reduced to what the news sync
// needs
type Item struct {
	Title   string
	Link    string
	Summary string
}

// Client fetches the external news feed and article thumbnails. Every fetch
// shares one HTTP client with a short fixed timeout; a timeout is a
// per-item failure, never fatal.
type Client struct {
	feedURL    string
	source     string
	parser     *gofeed.Parser
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a feed client for the given feed URL
func NewClient(feedURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := &http.Client{Timeout: timeout}

	parser := gofeed.NewParser()
	parser.Client = httpClient

	source := ""
	if u, err := url.Parse(feedURL); err == nil {
		source = u.Host
	}

	return &Client{
		feedURL:    feedURL,
		source:     source,
		parser:     parser,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Source returns the feed's domain, recorded on every ingested item
func (c *Client) Source() string {
	return c.source
}

// Fetch parses the feed and returns up to limit newest entries with their
// summaries reduced to plain text
func (c *Client) Fetch(ctx context.Context, limit int) ([]Item, error) {
	parsed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", c.feedURL, err)
	}

	entries := parsed.Items
	if len(entries) > limit {
		entries = entries[:limit]
	}
	c.logger.Debug("fetched feed", zap.String("feed", c.feedURL), zap.Int("entries", len(entries)))

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		summary := entry.Description
		if summary == "" {
			summary = entry.Title
		}

		items = append(items, Item{
			Title:   entry.Title,
			Link:    entry.Link,
			Summary: truncateSummary(stripHTML(summary)),
		})
	}

	return items, nil
}

// FetchThumbnail loads the article page and returns its thumbnail image URL,
// looking for the post-thumbnail image first and the social-preview meta tag
// as a fallback. An empty string means the page has neither.
func (c *Client) FetchThumbnail(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	if src, ok := doc.Find("img.post-thumbnail").First().Attr("src"); ok && src != "" {
		return src, nil
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && content != "" {
		return content, nil
	}

	return "", nil
}

// stripHTML reduces an HTML fragment to its text content
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// truncateSummary cuts the summary at the configured rune limit
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryLimit {
		return s
	}
	return string(runes[:summaryLimit]) + "..."
}
