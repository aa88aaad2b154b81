// Package extract derives the visible body text of a captured page and
// writes a Markdown snapshot of it for the run's audit directory.
package extract

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Readability needs this much extracted text to be trusted; below it the
// tag-stripping fallback is used instead.
const minArticleLen = 80

// BodyText extracts the visible text of a rendered page. The primary path
// is readability article extraction; short or failed extractions fall back
// to sanitizer-based tag stripping so a body is always returned for any
// parseable input.
func BodyText(rawHTML, pageURL string) string {
	if article, err := fromReadability(rawHTML, pageURL); err == nil && len(article) >= minArticleLen {
		return article
	}
	return StripTags(rawHTML)
}

func fromReadability(rawHTML, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = nil
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return "", fmt.Errorf("extract: readability: %w", err)
	}
	return collapse(article.TextContent), nil
}

// StripTags reduces HTML to its text content using the strict sanitizer
// policy. Scripts and styles are dropped, entities are decoded, and
// whitespace is collapsed.
func StripTags(rawHTML string) string {
	text := bluemonday.StrictPolicy().Sanitize(rawHTML)
	return collapse(html.UnescapeString(text))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Snapshot converts the page HTML to Markdown and writes it to path. The
// snapshot is an audit artifact; failures are reported but callers treat
// them as non-fatal.
func Snapshot(rawHTML, path string) error {
	md, err := htmltomarkdown.ConvertString(rawHTML)
	if err != nil {
		return fmt.Errorf("extract: markdown snapshot: %w", err)
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("extract: write snapshot: %w", err)
	}
	return nil
}
