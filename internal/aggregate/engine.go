// Package aggregate implements the feed aggregation and ranking
// pipeline: concurrent batched fetching, de-duplication, optional text
// filtering and recency/source-weighted scoring.
package aggregate

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"xraynews/internal/feed"
	"xraynews/internal/logger"
	"xraynews/internal/metrics"
	"xraynews/internal/model"
)

const (
	// batchSize bounds how many feeds are fetched concurrently.
	// Batch N+1 does not start until batch N has settled; this is
	// the sole backpressure mechanism toward upstream hosts.
	batchSize = 6

	latestCap = 50
	topCap    = 25
)

// Engine orchestrates fetching across the configured feed groups and
// turns the raw item stream into a ranked AggregateResult.
type Engine struct {
	fetcher feed.Fetcher
	groups  feed.Groups
	metrics metrics.Recorder
	now     func() time.Time
}

func NewEngine(fetcher feed.Fetcher, groups feed.Groups, rec metrics.Recorder) *Engine {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &Engine{fetcher: fetcher, groups: groups, metrics: rec, now: time.Now}
}

// Aggregate expands the requested groups, fetches every feed, and
// returns the de-duplicated, optionally filtered, ranked result.
// Individual feed failures contribute zero items and are never
// surfaced; an empty group set yields an empty result.
func (e *Engine) Aggregate(ctx context.Context, groups []string, query string) model.AggregateResult {
	urls := e.groups.Expand(groups)
	items := e.fetchAll(ctx, urls)

	items = dedupe(items)

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		items = filterByQuery(items, q)
	}

	e.metrics.RecordAggregate(len(items))

	return model.AggregateResult{
		Count:  len(items),
		Latest: sortByRecency(items),
		Top:    e.sortByScore(items),
	}
}

// fetchAll walks urls in fixed-size batches. Within a batch fetches
// race freely; results merge in input order so the flattened stream is
// deterministic for identical inputs.
func (e *Engine) fetchAll(ctx context.Context, urls []string) []model.FeedItem {
	var all []model.FeedItem
	for start := 0; start < len(urls); start += batchSize {
		end := min(start+batchSize, len(urls))
		batch := urls[start:end]

		results := make([][]model.FeedItem, len(batch))
		g := new(errgroup.Group)
		for i, feedURL := range batch {
			g.Go(func() error {
				items, err := e.fetcher.Fetch(ctx, feedURL)
				if err != nil {
					// Absorbed: a broken feed must not fail the run.
					logger.Warn("feed fetch failed", "module", "aggregate", "action", "fetch", "resource", "feed", "result", "failed", "url", feedURL, "error", err)
					return nil
				}
				results[i] = items
				return nil
			})
		}
		_ = g.Wait()

		for _, items := range results {
			all = append(all, items...)
		}
	}
	return all
}

// dedupe keeps the first occurrence of each item key in stream order.
func dedupe(items []model.FeedItem) []model.FeedItem {
	seen := make(map[string]bool, len(items))
	kept := items[:0:0]
	for _, item := range items {
		key := item.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}
	return kept
}

// filterByQuery retains items whose title or source contains q, which
// must already be lower-cased. Plain substring match, not tokenized.
func filterByQuery(items []model.FeedItem, q string) []model.FeedItem {
	kept := items[:0:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Source), q) {
			kept = append(kept, item)
		}
	}
	return kept
}

func sortByRecency(items []model.FeedItem) []model.FeedItem {
	sorted := make([]model.FeedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	return truncate(sorted, latestCap)
}

// sortByScore ranks by the scoring formula against a single "now"
// captured once per run, so ties and ordering are reproducible.
func (e *Engine) sortByScore(items []model.FeedItem) []model.FeedItem {
	now := e.now()
	scores := make([]float64, len(items))
	sorted := make([]model.FeedItem, len(items))
	copy(sorted, items)
	for i, item := range sorted {
		scores[i] = Score(item, now)
	}
	indices := make([]int, len(sorted))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})
	ranked := make([]model.FeedItem, len(sorted))
	for i, idx := range indices {
		ranked[i] = sorted[idx]
	}
	return truncate(ranked, topCap)
}

func truncate(items []model.FeedItem, limit int) []model.FeedItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
