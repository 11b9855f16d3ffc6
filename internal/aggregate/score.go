package aggregate

import (
	"strings"
	"time"

	"xraynews/internal/model"
)

// sourceWeights maps host substrings to trust multipliers. First match
// wins, so entries are ordered most-specific-first where it matters.
// These are tuning constants, not derived values.
var sourceWeights = []struct {
	substr string
	weight float64
}{
	{"reuters", 1.2},
	{"federalreserve", 1.2},
	{"bls.gov", 1.2},
	{"bea.gov", 1.2},
	{"apnews", 1.15},
	{"cnbc", 1.1},
	{"coindesk", 1.1},
	{"cointelegraph", 1.1},
	{"theblock", 1.1},
}

// SourceWeight returns the trust multiplier for a source host.
// Unrecognized hosts weigh 1.0.
func SourceWeight(host string) float64 {
	for _, sw := range sourceWeights {
		if strings.Contains(host, sw.substr) {
			return sw.weight
		}
	}
	return 1.0
}

// Score ranks an item by recency scaled by source trust:
//
//	score = (1 / max(1, ageMinutes)) * SourceWeight(source)
//
// Items newer than a minute (or dated in the future) are clamped to
// one minute old so the recency term never exceeds 1.
func Score(item model.FeedItem, now time.Time) float64 {
	ageMinutes := now.Sub(item.PublishedAt).Minutes()
	if ageMinutes < 1 {
		ageMinutes = 1
	}
	return (1 / ageMinutes) * SourceWeight(item.Source)
}
