package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kotoba-works/qiita-archiver/internal/domain"
)

// Persister writes archived articles as front-matter-annotated markdown files.
type Persister struct {
	outputDir  string
	filePrefix string
	now        func() time.Time
}

// NewPersister builds a Persister rooted at outputDir. Filenames are
// filePrefix + source id + ".md", so reprocessing a URL overwrites its file.
func NewPersister(outputDir, filePrefix string) *Persister {
	return &Persister{
		outputDir:  outputDir,
		filePrefix: filePrefix,
		now:        time.Now,
	}
}

// SourceIDFromURL returns the last non-empty path segment of a URL.
func SourceIDFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// Write persists the article and returns the path of the written file. The
// output directory is created on demand; an existing file is overwritten.
func (p *Persister) Write(article domain.Article) (string, error) {
	if p == nil {
		return "", fmt.Errorf("persister is not initialized")
	}
	if strings.TrimSpace(article.SourceID) == "" {
		return "", fmt.Errorf("article has no source id (url %q)", article.SourceURL)
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(p.outputDir, p.filePrefix+article.SourceID+".md")
	if err := os.WriteFile(path, []byte(p.render(article)), 0o644); err != nil {
		return "", fmt.Errorf("write article file: %w", err)
	}
	return path, nil
}

// render produces the file content: a front matter block in fixed key order,
// a blank line, then the translated body. Values are written raw; consumers
// of these files expect the unquoted key: value form.
func (p *Persister) render(article domain.Article) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", article.TranslatedTitle)
	if article.OriginalTitle != "" {
		fmt.Fprintf(&b, "title_ja: %s\n", article.OriginalTitle)
	}
	fmt.Fprintf(&b, "source: %s\n", article.SourceURL)
	fmt.Fprintf(&b, "source_id: %s\n", article.SourceID)
	fmt.Fprintf(&b, "language: %s\n", article.TargetLang)
	fmt.Fprintf(&b, "origin_language: %s\n", article.OriginalLang)
	fmt.Fprintf(&b, "fetched_at: %s\n", p.now().UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(article.Body)
	return b.String()
}
