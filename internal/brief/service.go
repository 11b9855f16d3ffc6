// Package brief generates, renders and injects the daily market
// brief.
package brief

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"xraynews/internal/ai"
	"xraynews/internal/feed"
	"xraynews/internal/logger"
	"xraynews/internal/metrics"
	"xraynews/internal/model"
	"xraynews/internal/store"
)

// maxSeedItems bounds how many ranked headlines seed the prompt.
const maxSeedItems = 10

// Aggregator is the slice of the aggregation engine the generator
// needs to collect seed headlines.
type Aggregator interface {
	Aggregate(ctx context.Context, groups []string, query string) model.AggregateResult
}

// GenerateResult reports one generation run.
type GenerateResult struct {
	Slug    string
	Skipped bool
	Keys    []string
}

// Service writes one brief per UTC day into the store and maintains
// the rolling feed index.
type Service struct {
	store      store.BriefStore
	provider   ai.Provider
	limiter    *ai.RateLimiter
	aggregator Aggregator
	groups     feed.Groups
	sanitizer  *bluemonday.Policy
	metrics    metrics.Recorder

	canonicalBase string
	ogImage       string
	author        string

	now func() time.Time
}

func NewService(briefStore store.BriefStore, provider ai.Provider, limiter *ai.RateLimiter, aggregator Aggregator, groups feed.Groups, rec metrics.Recorder, canonicalBase, ogImage, author string) *Service {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &Service{
		store:         briefStore,
		provider:      provider,
		limiter:       limiter,
		aggregator:    aggregator,
		groups:        groups,
		sanitizer:     bluemonday.UGCPolicy(),
		metrics:       rec,
		canonicalBase: strings.TrimRight(canonicalBase, "/"),
		ogImage:       ogImage,
		author:        author,
		now:           time.Now,
	}
}

// briefContent is the typed schema expected from the model. Every
// field gets an explicit default; a response that is not valid JSON
// falls back to placeholders rather than aborting the run.
type briefContent struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	ArticleHTML string `json:"article_html"`
	LastWord    string `json:"last_word"`
}

// Generate writes today's brief. A brief already stored for today is
// left alone unless force is set. Provider failures degrade to
// placeholder content so a brief is still stored; only store failures
// abort.
func (s *Service) Generate(ctx context.Context, force bool) (GenerateResult, error) {
	jobID := uuid.New().String()
	slug := s.now().UTC().Format("2006-01-02")

	if !force {
		if _, err := s.store.GetBrief(ctx, slug); err == nil {
			logger.Info("brief already generated today", "module", "brief", "action", "generate", "resource", "brief", "result", "skipped", "job_id", jobID, "slug", slug)
			return GenerateResult{Slug: slug, Skipped: true}, nil
		}
	}

	seeds := s.collectSeeds(ctx)
	content := s.complete(ctx, jobID, seeds)

	b := s.buildBrief(slug, content, seeds)
	if err := s.store.PutBrief(ctx, b, store.BriefTTL); err != nil {
		s.metrics.RecordBriefGenerated(false)
		return GenerateResult{}, fmt.Errorf("store brief: %w", err)
	}
	if err := s.updateIndex(ctx, b); err != nil {
		s.metrics.RecordBriefGenerated(false)
		return GenerateResult{}, fmt.Errorf("update feed index: %w", err)
	}

	s.metrics.RecordBriefGenerated(true)
	logger.Info("brief generated", "module", "brief", "action", "generate", "resource", "brief", "result", "ok", "job_id", jobID, "slug", slug, "seed_items", len(seeds))
	return GenerateResult{
		Slug: slug,
		Keys: []string{store.BriefKey(slug), store.IndexKey()},
	}, nil
}

// collectSeeds pulls the top-ranked headlines across all groups.
func (s *Service) collectSeeds(ctx context.Context) []ai.SeedItem {
	result := s.aggregator.Aggregate(ctx, s.groups.Names(), "")
	items := result.Top
	if len(items) > maxSeedItems {
		items = items[:maxSeedItems]
	}

	seeds := make([]ai.SeedItem, 0, len(items))
	for _, item := range items {
		seeds = append(seeds, ai.SeedItem{
			Title:       item.Title,
			URL:         item.Link,
			Source:      item.Source,
			PublishedAt: item.PublishedAt.UTC().Format(time.RFC3339),
		})
	}
	return seeds
}

// complete calls the provider and parses its response into the typed
// schema. Any failure along the way resolves to zero-valued content;
// buildBrief supplies the placeholder defaults.
func (s *Service) complete(ctx context.Context, jobID string, seeds []ai.SeedItem) briefContent {
	var content briefContent

	if s.provider == nil {
		logger.Warn("no brief provider configured", "module", "brief", "action", "generate", "resource", "brief", "result", "degraded", "job_id", jobID)
		return content
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			logger.Warn("brief rate limit wait failed", "module", "brief", "action", "generate", "resource", "brief", "result", "degraded", "job_id", jobID, "error", err)
			return content
		}
	}

	raw, err := s.provider.Complete(ctx, ai.BriefSystemPrompt, ai.BuildBriefUserPrompt(seeds))
	if err != nil {
		logger.Warn("brief completion failed", "module", "brief", "action", "generate", "resource", "brief", "result", "degraded", "job_id", jobID, "provider", s.provider.Name(), "error", err)
		return content
	}

	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		logger.Warn("brief response not valid JSON", "module", "brief", "action", "generate", "resource", "brief", "result", "degraded", "job_id", jobID, "provider", s.provider.Name(), "error", err)
		return briefContent{}
	}
	return content
}

func (s *Service) buildBrief(slug string, content briefContent, seeds []ai.SeedItem) model.Brief {
	title := strings.TrimSpace(content.Title)
	if title == "" {
		title = "Market Brief – " + slug
	}
	summary := strings.TrimSpace(content.Summary)
	if summary == "" {
		summary = "Daily market wrap."
	}
	articleHTML := strings.TrimSpace(content.ArticleHTML)
	if articleHTML == "" {
		articleHTML = "<p>(No article returned)</p>"
	}

	sources := make([]model.BriefSource, 0, len(seeds))
	for _, seed := range seeds {
		label := seed.Source
		if label == "" {
			label = "source"
		}
		sources = append(sources, model.BriefSource{Label: label, URL: seed.URL})
	}

	return model.Brief{
		Slug:        slug,
		Date:        slug,
		Title:       title,
		Summary:     summary,
		ArticleHTML: s.sanitizer.Sanitize(articleHTML),
		LastWord:    strings.TrimSpace(content.LastWord),
		Author:      s.author,
		OGImage:     s.ogImage,
		Canonical:   s.canonicalBase + "/marketbrief/" + slug,
		Sources:     sources,
	}
}

// updateIndex prepends the new brief, dropping any stale entry for the
// same slug so a forced regeneration never duplicates it, and caps the
// history at 50.
func (s *Service) updateIndex(ctx context.Context, b model.Brief) error {
	index, err := s.store.GetIndex(ctx)
	if err != nil {
		return err
	}

	items := make([]model.FeedIndexItem, 0, len(index.Items)+1)
	items = append(items, model.FeedIndexItem{
		Slug:      b.Slug,
		Title:     b.Title,
		Date:      b.Date,
		Canonical: b.Canonical,
	})
	for _, item := range index.Items {
		if item.Slug == b.Slug {
			continue
		}
		items = append(items, item)
	}
	if len(items) > 50 {
		items = items[:50]
	}

	latest := b.Slug
	return s.store.PutIndex(ctx, model.FeedIndex{Latest: &latest, Items: items})
}
