package model

// Brief is a generated daily market summary, keyed by its date slug
// (YYYY-MM-DD, UTC). ArticleHTML is sanitized before storage.
type Brief struct {
	Slug        string        `json:"slug"`
	Date        string        `json:"date"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	ArticleHTML string        `json:"article_html"`
	LastWord    string        `json:"last_word"`
	Author      string        `json:"author"`
	OGImage     string        `json:"og_image"`
	Canonical   string        `json:"canonical"`
	Sources     []BriefSource `json:"sources"`
}

// BriefSource is one attributed seed item of a brief.
type BriefSource struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// FeedIndex is the rolling history of generated briefs. Latest is nil
// until the first brief has been stored. Items is capped at 50,
// newest first.
type FeedIndex struct {
	Latest *string         `json:"latest"`
	Items  []FeedIndexItem `json:"items"`
}

// FeedIndexItem is one index entry pointing at a stored brief.
type FeedIndexItem struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Canonical string `json:"canonical"`
}
