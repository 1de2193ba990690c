package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kotoba-works/qiita-archiver/internal/archive"
	"github.com/kotoba-works/qiita-archiver/internal/config"
	"github.com/kotoba-works/qiita-archiver/internal/logger"
)

// failingFetcher rejects every URL.
type failingFetcher struct{}

func (failingFetcher) Fetch(_ context.Context, url string) (string, error) {
	return "", fmt.Errorf("fetch %s: status 500", url)
}

// pageFetcher serves one canned page for any URL.
type pageFetcher struct {
	page string
}

func (p pageFetcher) Fetch(context.Context, string) (string, error) {
	return p.page, nil
}

type identityTranslator struct{}

func (identityTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

func newTestArchiver(t *testing.T, fetcher archive.HTMLFetcher, linkLines string) (*Archiver, string) {
	t.Helper()
	dir := t.TempDir()
	linksFile := filepath.Join(dir, "README.md")
	if err := os.WriteFile(linksFile, []byte(linkLines), 0o644); err != nil {
		t.Fatalf("write links file: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	svc := archive.NewService(archive.ServiceOptions{
		Fetcher:    fetcher,
		Translator: identityTranslator{},
		Persister:  archive.NewPersister(outDir, "qiita_"),
		SourceLang: "ja",
		TargetLang: "zh-TW",
	})

	return &Archiver{
		cfg:     &config.Config{LinksFile: linksFile},
		service: svc,
		log:     &logger.NopLogger{},
	}, outDir
}

func TestRunPropagatesLinkFailures(t *testing.T) {
	a, _ := newTestArchiver(t, failingFetcher{},
		"- [A](https://example.com/items/aaa)\n")

	err := a.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error when every link fails")
	}
	if !strings.Contains(err.Error(), "items/aaa") {
		t.Fatalf("error should name the failed link: %v", err)
	}
}

func TestRunSucceedsWhenAllLinksArchive(t *testing.T) {
	page := `<html><body><article><h1>題名</h1><p>本文</p></article></body></html>`
	a, outDir := newTestArchiver(t, pageFetcher{page: page},
		"- [A](https://example.com/items/aaa)\n")

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "qiita_aaa.md")); err != nil {
		t.Fatalf("archived file missing: %v", err)
	}
}

func TestRunFailsOnUnreadableLinksFile(t *testing.T) {
	a := &Archiver{
		cfg:     &config.Config{LinksFile: filepath.Join(t.TempDir(), "absent.md")},
		service: archive.NewService(archive.ServiceOptions{
			Fetcher:    failingFetcher{},
			Translator: identityTranslator{},
			Persister:  archive.NewPersister(t.TempDir(), "qiita_"),
		}),
		log: &logger.NopLogger{},
	}

	if err := a.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing links document")
	}
}
