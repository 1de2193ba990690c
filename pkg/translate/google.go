package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kotoba-works/qiita-archiver/pkg/httpclient"
)

const (
	googleEndpoint       = "https://translate.googleapis.com/translate_a/single"
	googleDefaultTimeout = 15 * time.Second
)

// GoogleBackend translates chunks through the public Google Translate web
// endpoint (the gtx client). No API key is required; the endpoint applies its
// own throttling externally.
type GoogleBackend struct {
	client   *resty.Client
	endpoint string
}

// GoogleOptions tunes the backend. Zero values pick the defaults.
type GoogleOptions struct {
	Endpoint string
	Timeout  time.Duration
}

// NewGoogleBackend builds a backend with default options.
func NewGoogleBackend() *GoogleBackend {
	return NewGoogleBackendWithOptions(GoogleOptions{})
}

// NewGoogleBackendWithOptions builds a backend with the provided options.
func NewGoogleBackendWithOptions(opts GoogleOptions) *GoogleBackend {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = googleDefaultTimeout
	}
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = googleEndpoint
	}
	return &GoogleBackend{
		client:   httpclient.NewRestyHTTPClient(timeout),
		endpoint: endpoint,
	}
}

// Translate sends one chunk and reassembles the translated segments.
func (g *GoogleBackend) Translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     source,
			"tl":     target,
			"dt":     "t",
		}).
		SetFormData(map[string]string{"q": text}).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("translate response status %d: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	return decodeGoogleResponse(resp.Body())
}

// decodeGoogleResponse parses the nested-array payload the gtx endpoint
// returns: [[["translated","original",...], ...], ...].
func decodeGoogleResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("translate response is empty")
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("translate response has unexpected shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		return s[:512] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
