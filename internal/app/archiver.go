package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/kotoba-works/qiita-archiver/internal/archive"
	"github.com/kotoba-works/qiita-archiver/internal/config"
	"github.com/kotoba-works/qiita-archiver/internal/links"
	"github.com/kotoba-works/qiita-archiver/internal/logger"
	"github.com/kotoba-works/qiita-archiver/internal/ratelimit"
	"github.com/kotoba-works/qiita-archiver/pkg/httpclient"
	"github.com/kotoba-works/qiita-archiver/pkg/publishers"
	"github.com/kotoba-works/qiita-archiver/pkg/translate"
)

// Archiver is the one-shot runtime: it reads the links document, runs the
// archive pipeline across every link, and reports the outcome.
type Archiver struct {
	cfg     *config.Config
	service *archive.Service
	fanout  *publishers.Fanout
	log     logger.Logger
}

// NewArchiver builds an archiver runtime from config.
func NewArchiver(ctx context.Context, cfg *config.Config, log logger.Logger) (*Archiver, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.FetchRatePerSecond,
		Burst:             cfg.FetchBurst,
	})
	client := httpclient.NewRestyClientWithOptions(httpclient.Options{
		Timeout:      cfg.FetchTimeout,
		UserAgent:    cfg.UserAgent,
		MaxRedirects: 10,
	})

	translator := translate.New(translate.NewGoogleBackend(), cfg.ChunkLimit)

	service := archive.NewService(archive.ServiceOptions{
		Fetcher:    archive.NewFetcher(client, limiter),
		Translator: translator,
		Persister:  archive.NewPersister(cfg.OutputDir, cfg.FilePrefix),
		Fanout:     fanout,
		Log:        log,
		SourceLang: cfg.SourceLang,
		TargetLang: cfg.TargetLang,
	})

	log.InfoObj("archiver initialized", "archiver_config", map[string]any{
		"links_file":       cfg.LinksFile,
		"output_dir":       cfg.OutputDir,
		"source_lang":      cfg.SourceLang,
		"target_lang":      cfg.TargetLang,
		"fetch_rate":       cfg.FetchRatePerSecond,
		"fetch_timeout":    cfg.FetchTimeout.String(),
		"publishers_count": fanout.Size(),
	})

	return &Archiver{
		cfg:     cfg,
		service: service,
		fanout:  fanout,
		log:     log,
	}, nil
}

// buildFanout loads the publishers registry. A missing publishers file is not
// an error for a one-shot tool; it degrades to the log sink.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load publishers registry: %w", err)
		}
		log.WarnObj("publishers file missing, using log publisher", "publishers_file", cfg.PublishersFile)
		return publishers.NewFanout([]publishers.Publisher{publishers.NewLogPublisher("log", log)}), nil
	}

	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("publishers file has no enabled publishers")
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	return publishers.NewFanout(pubs), nil
}

// Run executes one archive pass: parse links, process them all, report.
// Per-link failures never abort siblings, but the joined failure set is
// returned so a partially failed batch exits non-zero.
func (a *Archiver) Run(ctx context.Context) error {
	if a == nil || a.service == nil {
		return fmt.Errorf("archiver is not initialized")
	}

	items, err := links.Load(a.cfg.LinksFile)
	if err != nil {
		return fmt.Errorf("read links: %w", err)
	}

	start := time.Now()
	a.log.InfoObj("archive run started", "run_meta", map[string]any{
		"links_count": len(items),
		"started_at":  start.UTC(),
	})

	if err := a.service.Run(ctx, items); err != nil {
		a.log.ErrorObj("archive run finished with failures", "error", err.Error())
		return fmt.Errorf("archive failures: %w", err)
	}

	a.log.InfoObj("archive run finished", "run_meta", map[string]any{
		"links_count": len(items),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}
