package archive

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strippedSelector lists the non-content elements removed from the selected
// fragment no matter how deeply they are nested.
const strippedSelector = "script, style, nav, header, footer, aside"

// containerSelectors is the ordered cascade tried when isolating the article
// body. Qiita renders the post body inside div.it-MdContent when no semantic
// article element is present.
var containerSelectors = []string{"article", "div.it-MdContent"}

// ExtractArticle reduces a full page to the HTML fragment holding the article
// body. When no known container matches, the whole document is used.
func ExtractArticle(pageHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	for _, selector := range containerSelectors {
		node := doc.Find(selector).First()
		if node.Length() == 0 {
			continue
		}
		node.Find(strippedSelector).Remove()
		fragment, err := goquery.OuterHtml(node)
		if err != nil {
			return "", fmt.Errorf("render article fragment: %w", err)
		}
		return fragment, nil
	}

	doc.Find(strippedSelector).Remove()
	fragment, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return fragment, nil
}

// ExtractTitle returns the first non-empty h1 text, falling back to the page
// title, falling back to the empty string.
func ExtractTitle(pageHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var title string
	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			title = text
			return false
		}
		return true
	})
	if title != "" {
		return title, nil
	}

	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
