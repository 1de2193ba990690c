// Package links parses the labeled hyperlink list out of a markdown document.
package links

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/kotoba-works/qiita-archiver/internal/domain"
)

// linkPattern matches an inline markdown link restricted to http/https URLs.
var linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^)]+)\)`)

// Load reads the links document at path and parses it.
func Load(path string) ([]domain.LinkItem, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("links file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open links file: %w", err)
	}
	defer file.Close()

	items, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse links file %s: %w", path, err)
	}
	return items, nil
}

// Parse scans the document line by line and returns the links in document
// order. Only list lines carrying a markdown link are considered; anything
// else is decoration and skipped.
//
// Indented list entries get Parent set to the title of the first link parsed
// overall. That is not nearest-ancestor nesting, but it is the grouping
// behavior downstream consumers rely on, so it is kept as is.
func Parse(r io.Reader) ([]domain.LinkItem, error) {
	var items []domain.LinkItem

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		trimmed := strings.TrimLeft(raw, " \t")
		if trimmed == "" || strings.IndexByte("-*+", trimmed[0]) < 0 {
			continue
		}

		m := linkPattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		item := domain.LinkItem{Title: m[1], URL: m[2]}
		if len(raw) > len(trimmed) && len(items) > 0 {
			item.Parent = items[0].Title
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan links document: %w", err)
	}

	return items, nil
}
