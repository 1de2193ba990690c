package archive

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kotoba-works/qiita-archiver/internal/domain"
	"github.com/kotoba-works/qiita-archiver/internal/logger"
	"github.com/kotoba-works/qiita-archiver/pkg/publishers"
)

// Service runs the archive pipeline across a batch of links. Each link is an
// independently scheduled unit; one link failing never cancels its siblings.
type Service struct {
	fetcher    HTMLFetcher
	translator Translator
	persister  *Persister
	fanout     EventPublisher
	log        logger.Logger

	sourceLang string
	targetLang string
}

// ServiceOptions collects the collaborators a Service needs.
type ServiceOptions struct {
	Fetcher    HTMLFetcher
	Translator Translator
	Persister  *Persister
	Fanout     EventPublisher
	Log        logger.Logger
	SourceLang string
	TargetLang string
}

// NewService wires an archive service.
func NewService(opts ServiceOptions) *Service {
	log := opts.Log
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		fetcher:    opts.Fetcher,
		translator: opts.Translator,
		persister:  opts.Persister,
		fanout:     opts.Fanout,
		log:        log,
		sourceLang: opts.SourceLang,
		targetLang: opts.TargetLang,
	}
}

// Result is the outcome of one pipeline instance.
type Result struct {
	Link domain.LinkItem
	Path string
	Err  error
}

// Run processes every link concurrently and waits for all of them. It returns
// the joined errors of failed links; partial completion is expected and the
// successful files stay written.
func (s *Service) Run(ctx context.Context, items []domain.LinkItem) error {
	if s == nil || s.fetcher == nil || s.translator == nil || s.persister == nil {
		return fmt.Errorf("archive service is not initialized")
	}

	if len(items) == 0 {
		s.log.InfoObj("no links found in document", "links_count", 0)
		return nil
	}

	results := make([]Result, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.processLink(ctx, items[i])
		}(i)
	}
	wg.Wait()

	return s.report(ctx, results)
}

// report logs per-link outcomes plus an aggregate summary and publishes
// completion events for archived articles.
func (s *Service) report(ctx context.Context, results []Result) error {
	var errs []error
	archived := 0
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("link %q: %w", res.Link.URL, res.Err))
			s.log.ErrorObj("link archive failed", "link_error", map[string]any{
				"title": res.Link.Title,
				"url":   res.Link.URL,
				"error": res.Err.Error(),
			})
			continue
		}

		archived++
		s.log.InfoObj("article archived", "archive_result", map[string]any{
			"title": res.Link.Title,
			"url":   res.Link.URL,
			"path":  res.Path,
		})
	}

	s.log.InfoObj("archive run completed", "run_summary", map[string]any{
		"total":    len(results),
		"archived": archived,
		"failed":   len(errs),
	})

	return errors.Join(errs...)
}

// processLink executes one end-to-end pipeline instance:
// fetch -> extract -> convert -> translate -> persist -> publish.
func (s *Service) processLink(ctx context.Context, link domain.LinkItem) Result {
	res := Result{Link: link}

	pageHTML, err := s.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		res.Err = err
		return res
	}

	// An empty title is a valid outcome: the persister omits the original
	// title line and the translated title stays blank.
	origTitle, err := ExtractTitle(pageHTML)
	if err != nil {
		res.Err = err
		return res
	}

	fragment, err := ExtractArticle(pageHTML)
	if err != nil {
		res.Err = err
		return res
	}

	body, err := ConvertMarkdown(fragment)
	if err != nil {
		res.Err = err
		return res
	}

	article := domain.Article{
		SourceURL:     link.URL,
		SourceID:      SourceIDFromURL(link.URL),
		OriginalTitle: origTitle,
		OriginalLang:  s.sourceLang,
		TargetLang:    s.targetLang,
	}
	article.TranslatedTitle = s.translate(ctx, origTitle)
	article.Body = s.translate(ctx, body)

	path, err := s.persister.Write(article)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = path

	s.publish(ctx, article, path)
	return res
}

// translate is best-effort: a failing backend falls back to the original text
// so translation trouble never loses an article.
func (s *Service) translate(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}
	translated, err := s.translator.Translate(ctx, text, s.sourceLang, s.targetLang)
	if err != nil {
		s.log.WarnObj("translation failed, keeping original text", "translate_error", err.Error())
		return text
	}
	return translated
}

// publish fans the completion event out; delivery problems are logged, never fatal.
func (s *Service) publish(ctx context.Context, article domain.Article, path string) {
	if s.fanout == nil {
		return
	}
	evt := publishers.NewEvent(article.SourceID, article.SourceURL, article.TranslatedTitle, path, article.TargetLang)
	if _, err := s.fanout.Publish(ctx, evt); err != nil {
		s.log.WarnObj("archive event publish failed", "publish_error", map[string]any{
			"source_id": article.SourceID,
			"error":     err.Error(),
		})
	}
}
