package archive

import (
	"context"

	"github.com/kotoba-works/qiita-archiver/pkg/httpclient"
	"github.com/kotoba-works/qiita-archiver/pkg/publishers"
)

// HTMLFetcher retrieves a single HTML document for a URL.
type HTMLFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Translator translates a block of text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// EventPublisher fans archive completion events out to downstream sinks.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within archive.
type HTTPClient = httpclient.Client
