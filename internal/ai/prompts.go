package ai

import (
	"encoding/json"
	"fmt"
)

// BriefSystemPrompt instructs the model to write the daily brief and
// return it as a JSON object with known fields.
const BriefSystemPrompt = `You are a markets analyst. Write a tight 3-5 paragraph crypto+macro market brief for a retail audience.
- Keep it factual, avoid hype.
- If information density is low, acknowledge uncertainty.
- Close with a one-sentence "Last Word".
Return JSON with fields: title, summary, article_html, last_word.`

// SeedItem is one headline handed to the model as context.
type SeedItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// BuildBriefUserPrompt renders the seed headlines into the user turn.
func BuildBriefUserPrompt(items []SeedItem) string {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		raw = []byte("[]")
	}
	return fmt.Sprintf(`Here are today's seed items (titles, links, timestamps). Use them only as hints, do not hallucinate details:

%s
`, raw)
}
