package ai_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xraynews/internal/ai"
)

func TestBuildBriefUserPrompt_EmbedsSeedItems(t *testing.T) {
	prompt := ai.BuildBriefUserPrompt([]ai.SeedItem{
		{Title: "Fed holds rates", URL: "https://reuters.com/fed", Source: "reuters.com", PublishedAt: "2026-01-02T11:00:00Z"},
	})

	require.Contains(t, prompt, "Fed holds rates")
	require.Contains(t, prompt, "https://reuters.com/fed")
	require.Contains(t, prompt, "do not hallucinate")

	// The embedded block must be valid JSON so the model sees clean
	// structure.
	start := strings.Index(prompt, "[")
	require.GreaterOrEqual(t, start, 0)
	var items []ai.SeedItem
	require.NoError(t, json.Unmarshal([]byte(prompt[start:strings.LastIndex(prompt, "]")+1]), &items))
	require.Len(t, items, 1)
}

func TestBuildBriefUserPrompt_EmptySeeds(t *testing.T) {
	prompt := ai.BuildBriefUserPrompt(nil)
	require.Contains(t, prompt, "null")
}

func TestBriefSystemPrompt_NamesSchemaFields(t *testing.T) {
	for _, field := range []string{"title", "summary", "article_html", "last_word"} {
		require.Contains(t, ai.BriefSystemPrompt, field)
	}
}
