// Package store persists generated briefs and the rolling feed index
// in a key-value layout: brief:<slug> (with expiry) and feed:index.
package store

import (
	"context"
	"errors"
	"time"

	"xraynews/internal/model"
)

// ErrNotFound is returned when a brief slug has no stored record.
var ErrNotFound = errors.New("not found")

const (
	briefKeyPrefix = "brief:"
	indexKey       = "feed:index"

	// BriefTTL is the retention window for stored briefs. The feed
	// index never expires; it is capped by item count instead.
	BriefTTL = 90 * 24 * time.Hour
)

// BriefKey returns the storage key for a brief slug.
func BriefKey(slug string) string { return briefKeyPrefix + slug }

// IndexKey returns the storage key of the feed index.
func IndexKey() string { return indexKey }

// BriefStore is the KV contract shared by the Redis and sqlite
// backends. Writes are last-write-wins; there are no transactions.
type BriefStore interface {
	GetBrief(ctx context.Context, slug string) (model.Brief, error)
	PutBrief(ctx context.Context, brief model.Brief, ttl time.Duration) error
	// GetIndex returns an empty index, not an error, when none has
	// been written yet.
	GetIndex(ctx context.Context) (model.FeedIndex, error)
	PutIndex(ctx context.Context, index model.FeedIndex) error
	Close() error
}
