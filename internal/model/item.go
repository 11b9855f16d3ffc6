package model

import "time"

// FeedItem is one normalized syndication entry after parsing.
// Source is the bare host of the item link (or of the feed it came
// from when the entry carries no link), with any leading "www." removed.
type FeedItem struct {
	Title       string
	Link        string
	Source      string
	PublishedAt time.Time
}

// DedupeKey identifies an item across feeds. Items without a link
// fall back to their title so two linkless items with the same title
// collapse into one.
func (i FeedItem) DedupeKey() string {
	if i.Link != "" {
		return i.Link
	}
	return "t:" + i.Title
}

// AggregateResult is the output of one aggregation run. Latest and Top
// are independently truncated views over the same de-duplicated set:
// Latest by publish time (max 50), Top by ranking score (max 25).
// Count is the size of the full set before truncation.
type AggregateResult struct {
	Count  int
	Latest []FeedItem
	Top    []FeedItem
}
