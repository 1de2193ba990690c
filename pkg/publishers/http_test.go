package publishers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPPublisherPostsEvent(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s", r.Method)
		}
		if got := r.Header.Get("X-Token"); got != "secret" {
			t.Fatalf("X-Token = %q", got)
		}
		if got := r.Header.Get("X-Archive-Source-Id"); got != "abc123" {
			t.Fatalf("X-Archive-Source-Id = %q", got)
		}
		if got := r.Header.Get("X-Archive-Language"); got != "zh-TW" {
			t.Fatalf("X-Archive-Language = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	pub, err := newHTTPPublisher(PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{
			URL:            server.URL,
			Method:         "POST",
			Headers:        map[string]string{"X-Token": "secret"},
			TimeoutSeconds: 2,
		},
	}, noopLogger{})
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	evt := NewEvent("abc123", "https://example.com/items/abc123", "title", "docs/qiita_abc123.md", "zh-TW")
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if received.SourceID != "abc123" || received.Path != "docs/qiita_abc123.md" {
		t.Fatalf("unexpected event delivered: %#v", received)
	}
}

func TestHTTPPublisherErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	pub, err := newHTTPPublisher(PublisherConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: server.URL, Method: "POST", TimeoutSeconds: 2},
	}, noopLogger{})
	if err != nil {
		t.Fatalf("newHTTPPublisher: %v", err)
	}

	if err := pub.Publish(context.Background(), Event{SourceID: "x"}); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestHTTPPublisherRequiresConfig(t *testing.T) {
	if _, err := newHTTPPublisher(PublisherConfig{ID: "hook", Type: TypeHTTP}, nil); err == nil {
		t.Fatalf("expected error for missing http config")
	}
}
