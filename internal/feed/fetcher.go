package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"xraynews/internal/allowlist"
	"xraynews/internal/config"
	"xraynews/internal/metrics"
	"xraynews/internal/model"
)

// Fetcher retrieves one syndication feed and normalizes its entries.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]model.FeedItem, error)
}

// HTTPFetcher fetches feeds over HTTP and parses them with gofeed.
// It never follows a URL whose host fails the allowlist, and it drops
// parsed items whose self-reported source host fails it too.
type HTTPFetcher struct {
	client  *http.Client
	metrics metrics.Recorder
	now     func() time.Time
}

// NewHTTPFetcher wires a fetcher around the given client. The client
// is expected to carry a bounded timeout; a slow upstream must not be
// able to stall an entire fetch batch.
func NewHTTPFetcher(client *http.Client, rec metrics.Recorder) *HTTPFetcher {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &HTTPFetcher{client: client, metrics: rec, now: time.Now}
}

// Fetch downloads and parses a single feed. Disallowed hosts resolve
// to zero items without an error; network, HTTP and parse failures
// return an error for the caller to absorb and log.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]model.FeedItem, error) {
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	if !allowlist.Allowed(parsed.Hostname()) {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", config.UserAgent)

	start := f.now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.metrics.RecordFetchFailure()
		return nil, fmt.Errorf("fetch %s: %w", parsed.Hostname(), err)
	}
	defer resp.Body.Close()
	f.metrics.RecordFetchLatency(f.now().Sub(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.metrics.RecordFetchFailure()
		return nil, fmt.Errorf("fetch %s: HTTP %d", parsed.Hostname(), resp.StatusCode)
	}

	doc, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		f.metrics.RecordParseFailure()
		return nil, fmt.Errorf("parse %s: %w", parsed.Hostname(), err)
	}
	f.metrics.RecordFetchSuccess()

	now := f.now().UTC()
	items := make([]model.FeedItem, 0, len(doc.Items))
	for _, entry := range doc.Items {
		if item, ok := normalizeItem(entry, parsed, doc.FeedType, now); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// normalizeItem maps one gofeed entry onto the FeedItem shape. Items
// without a title are discarded, missing or unparseable dates default
// to fetch time, and the source host must pass the allowlist.
func normalizeItem(entry *gofeed.Item, feedURL *url.URL, feedType string, now time.Time) (model.FeedItem, bool) {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		return model.FeedItem{}, false
	}

	link := strings.TrimSpace(entry.Link)

	published := now
	if ts := pickTimestamp(entry, feedType); ts != nil {
		published = ts.UTC()
	}

	// The item host derives from its own link when present, otherwise
	// from the feed URL. The link itself is kept as given.
	host := feedURL.Hostname()
	if link != "" {
		if linkURL, err := url.Parse(link); err == nil && linkURL.Hostname() != "" {
			host = linkURL.Hostname()
		}
	}
	source := strings.TrimPrefix(strings.ToLower(host), "www.")
	if !allowlist.Allowed(source) {
		return model.FeedItem{}, false
	}

	return model.FeedItem{
		Title:       title,
		Link:        link,
		Source:      source,
		PublishedAt: published,
	}, true
}

// pickTimestamp prefers updated over published for Atom entries and
// the reverse for RSS, matching how the two formats use those fields.
func pickTimestamp(entry *gofeed.Item, feedType string) *time.Time {
	if feedType == "atom" {
		if entry.UpdatedParsed != nil {
			return entry.UpdatedParsed
		}
		return entry.PublishedParsed
	}
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}
