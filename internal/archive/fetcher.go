package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/kotoba-works/qiita-archiver/internal/ratelimit"
)

// Fetcher retrieves article pages through the shared rate limiter. Every
// pipeline instance funnels its fetches through the same Fetcher so the
// global request ceiling holds regardless of how many links are in flight.
type Fetcher struct {
	client  HTTPClient
	limiter *ratelimit.Limiter
}

// NewFetcher builds a Fetcher on the given client and limiter.
func NewFetcher(client HTTPClient, limiter *ratelimit.Limiter) *Fetcher {
	return &Fetcher{client: client, limiter: limiter}
}

// StatusError reports a non-success response from the upstream site.
type StatusError struct {
	URL     string
	Code    int
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d body: %s", e.URL, e.Code, e.Snippet)
}

// Fetch acquires a rate-limit permit, then GETs the URL. Redirects and the
// per-request timeout are handled by the underlying client.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f == nil || f.client == nil {
		return "", fmt.Errorf("fetcher is not initialized")
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := f.client.Get(ctx, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return "", &StatusError{URL: url, Code: code, Snippet: bodySnippet(resp.Body())}
	}

	return string(resp.Body()), nil
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
