package brief

import (
	"fmt"
	"io"

	"golang.org/x/net/html"

	"xraynews/internal/model"
)

// injectAttr marks the element whose content is replaced with the
// latest brief on proxied origin pages.
const injectAttr = "data-latest-brief"

// Inject copies the HTML document from r to w in a single streaming
// pass, replacing the inner content of the element marked with
// data-latest-brief by the rendered brief article and appending
// OG/JSON-LD metadata before </head>. The input is never buffered
// whole; everything outside those two touch points is copied verbatim.
func Inject(w io.Writer, r io.Reader, b model.Brief) error {
	article, err := renderInjectedArticle(b)
	if err != nil {
		return err
	}
	headMeta, err := renderHeadMeta(b)
	if err != nil {
		return err
	}

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				return nil
			}
			return fmt.Errorf("tokenize origin page: %w", z.Err())
		}

		// Raw is invalidated by TagName/TagAttr, so copy it first.
		raw := append([]byte(nil), z.Raw()...)

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if hasAttr && hasInjectAttr(z) {
				if _, err := w.Write(raw); err != nil {
					return err
				}
				if _, err := io.WriteString(w, article); err != nil {
					return err
				}
				if err := skipSubtree(z, w, string(name)); err != nil {
					return err
				}
				continue
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "head" {
				if _, err := io.WriteString(w, headMeta); err != nil {
					return err
				}
			}
		}

		if _, err := w.Write(raw); err != nil {
			return err
		}
	}
}

func hasInjectAttr(z *html.Tokenizer) bool {
	for {
		key, _, more := z.TagAttr()
		if string(key) == injectAttr {
			return true
		}
		if !more {
			return false
		}
	}
}

// skipSubtree discards the original children of the replaced element
// and writes its closing tag. The tokenizer emits no end tags for
// implicitly closed children (an unclosed <p> before the parent's
// </div>), so nesting is tracked by the parent's tag name alone; other
// tags inside the placeholder are irrelevant to finding its end. A
// truncated document simply ends the stream.
func skipSubtree(z *html.Tokenizer, w io.Writer, parent string) error {
	depth := 1
	for depth > 0 {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return nil
			}
			return fmt.Errorf("tokenize origin page: %w", z.Err())
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == parent {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != parent {
				continue
			}
			depth--
			if depth == 0 {
				if _, err := fmt.Fprintf(w, "</%s>", parent); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
