package brief

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"xraynews/internal/model"
)

// articleSchema is the schema.org NewsArticle document embedded in
// permalink pages and injected heads.
type articleSchema struct {
	Context          string            `json:"@context"`
	Type             string            `json:"@type"`
	Headline         string            `json:"headline"`
	DatePublished    string            `json:"datePublished"`
	DateModified     string            `json:"dateModified"`
	Author           map[string]string `json:"author"`
	Image            string            `json:"image"`
	Description      string            `json:"description"`
	MainEntityOfPage string            `json:"mainEntityOfPage"`
}

func schemaJSON(b model.Brief) (template.JS, error) {
	author := b.Author
	if author == "" {
		author = "XRayCrypto News"
	}
	raw, err := json.Marshal(articleSchema{
		Context:          "https://schema.org",
		Type:             "NewsArticle",
		Headline:         b.Title,
		DatePublished:    b.Date,
		DateModified:     b.Date,
		Author:           map[string]string{"@type": "Organization", "name": author},
		Image:            b.OGImage,
		Description:      b.Summary,
		MainEntityOfPage: b.Canonical,
	})
	if err != nil {
		return "", fmt.Errorf("encode article schema: %w", err)
	}
	return template.JS(raw), nil
}

const permalinkPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width,initial-scale=1"/>
  <title>{{.Brief.Title}}</title>
  <meta name="description" content="{{.Brief.Summary}}"/>
  <meta property="og:title" content="{{.Brief.Title}}">
  <meta property="og:description" content="{{.Brief.Summary}}">
  <meta property="og:image" content="{{.Brief.OGImage}}">
  <meta property="og:type" content="article">
  <meta name="twitter:card" content="summary_large_image">
  <link rel="canonical" href="{{.Brief.Canonical}}">
  <script type="application/ld+json">{{.Schema}}</script>
  <style>
    body{font-family:system-ui,Segoe UI,Arial,sans-serif;max-width:920px;margin:24px auto;padding:0 16px;line-height:1.6;background:#0b0c10;color:#e7e7e7}
    a{color:#66fcf1}
    header,footer{opacity:.9}
  </style>
</head>
<body>
  <header><a href="/marketbrief.html">&larr; Market Brief</a></header>
  <main>
    <h1>{{.Brief.Title}}</h1>
    <p><em>{{.Brief.Date}}</em></p>
    {{.Article}}
    <p><strong>Last Word:</strong> {{.Brief.LastWord}}</p>
    <p><strong>Sources:</strong> {{range $i, $s := .Brief.Sources}}{{if $i}} &middot; {{end}}<a href="{{$s.URL}}" rel="noopener">{{$s.Label}}</a>{{end}}</p>
  </main>
  <footer><small>&copy; {{.Brief.Author}}</small></footer>
</body>
</html>`

var permalinkTmpl = template.Must(template.New("permalink").Parse(permalinkPage))

// Render produces the standalone HTML permalink page for a brief.
// ArticleHTML is trusted here because it was sanitized at generation
// time; everything else is escaped by the template.
func Render(b model.Brief) (string, error) {
	schema, err := schemaJSON(b)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = permalinkTmpl.Execute(&sb, struct {
		Brief   model.Brief
		Article template.HTML
		Schema  template.JS
	}{
		Brief:   b,
		Article: template.HTML(b.ArticleHTML),
		Schema:  schema,
	})
	if err != nil {
		return "", fmt.Errorf("render permalink: %w", err)
	}
	return sb.String(), nil
}

const headMetaBlock = `
<meta property="og:title" content="{{.Brief.Title}}">
<meta property="og:description" content="{{.Brief.Summary}}">
<meta property="og:image" content="{{.Brief.OGImage}}">
<meta name="twitter:card" content="summary_large_image">
<link rel="canonical" href="{{.Brief.Canonical}}">
<script type="application/ld+json">{{.Schema}}</script>
`

var headMetaTmpl = template.Must(template.New("headmeta").Parse(headMetaBlock))

// renderHeadMeta produces the metadata fragment appended to the head
// of injected origin pages.
func renderHeadMeta(b model.Brief) (string, error) {
	schema, err := schemaJSON(b)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = headMetaTmpl.Execute(&sb, struct {
		Brief  model.Brief
		Schema template.JS
	}{Brief: b, Schema: schema})
	if err != nil {
		return "", fmt.Errorf("render head meta: %w", err)
	}
	return sb.String(), nil
}

const injectedArticle = `
<article class="brief">
  <p><em>Let&rsquo;s talk about something.</em></p>
  {{.Article}}
  <p><strong>Last Word:</strong> {{.LastWord}}</p>
  <p class="muted"><a href="/marketbrief/{{.Slug}}">Permalink</a></p>
</article>
`

var injectedArticleTmpl = template.Must(template.New("injected").Parse(injectedArticle))

// renderInjectedArticle produces the fragment that replaces the
// brief-placeholder element on origin pages.
func renderInjectedArticle(b model.Brief) (string, error) {
	var sb strings.Builder
	err := injectedArticleTmpl.Execute(&sb, struct {
		Article  template.HTML
		LastWord string
		Slug     string
	}{
		Article:  template.HTML(b.ArticleHTML),
		LastWord: b.LastWord,
		Slug:     b.Slug,
	})
	if err != nil {
		return "", fmt.Errorf("render injected article: %w", err)
	}
	return sb.String(), nil
}
