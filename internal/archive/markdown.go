package archive

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var blankLineRuns = regexp.MustCompile(`\n{3,}`)

// ConvertMarkdown turns an HTML fragment into markdown text with ATX-style
// headings, collapsing runs of blank lines down to a single one.
func ConvertMarkdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return normalizeMarkdown(md), nil
}

// normalizeMarkdown collapses 3+ consecutive newlines to a single blank line
// and trims surrounding whitespace.
func normalizeMarkdown(md string) string {
	md = blankLineRuns.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}
