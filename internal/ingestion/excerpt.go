// Package ingestion flattens recruiter-supplied rich text into the plain
// excerpts shown in job lists and recommendations. The stored description
// is never modified; excerpts are derived per response.
package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultExcerptLength is the excerpt size used in list views.
const DefaultExcerptLength = 160

// Excerpt strips any HTML markup from the content and truncates the result
// to at most maxLen runes, appending an ellipsis when truncated. Plain-text
// input passes through unchanged apart from whitespace normalization.
func Excerpt(content string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}

	text := content
	if strings.Contains(content, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			text = doc.Text()
		}
	}

	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}
