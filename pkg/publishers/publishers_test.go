package publishers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const samplePublishersYAML = `publishers:
  - id: stdout
    type: log
  - id: hook
    type: http
    enabled: false
    http:
      url: https://hooks.example.com/archive
      method: post
  - id: queue
    type: sqs
    sqs:
      uri: "  https://sqs.ap-northeast-1.amazonaws.com/123/archive "
      region: ap-northeast-1
`

func writeTempRegistry(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
	return path
}

func TestLoadRegistryParsesAndSanitizes(t *testing.T) {
	reg, err := LoadRegistry(writeTempRegistry(t, "publishers.yaml", samplePublishersYAML))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if got := len(reg.All()); got != 3 {
		t.Fatalf("All = %d entries", got)
	}

	hook, ok := reg.ByID("hook")
	if !ok {
		t.Fatalf("hook entry missing")
	}
	if hook.EnabledValue() {
		t.Fatalf("hook should be disabled")
	}
	if hook.HTTP.Method != "POST" {
		t.Fatalf("http method not normalized: %q", hook.HTTP.Method)
	}

	queue, _ := reg.ByID("queue")
	if queue.SQS.QueueURL != "https://sqs.ap-northeast-1.amazonaws.com/123/archive" {
		t.Fatalf("queue url not trimmed: %q", queue.SQS.QueueURL)
	}

	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("Enabled = %d entries, want 2", len(enabled))
	}
}

func TestLoadRegistryRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing id":       "publishers:\n  - type: log\n",
		"missing type":     "publishers:\n  - id: a\n",
		"sqs without conf": "publishers:\n  - id: a\n    type: sqs\n",
		"sns without arn":  "publishers:\n  - id: a\n    type: sns\n    sns:\n      region: us-east-1\n",
		"pubsub no topic":  "publishers:\n  - id: a\n    type: gcppubsub\n    gcppubsub:\n      project_id: p\n",
		"duplicate ids":    "publishers:\n  - id: a\n    type: log\n  - id: a\n    type: log\n",
		"empty file":       "publishers: []\n",
	}
	for name, content := range cases {
		if _, err := LoadRegistry(writeTempRegistry(t, "bad.yaml", content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestBuildAllWiresLogAndHTTP(t *testing.T) {
	cfgs := []PublisherConfig{
		{ID: "stdout", Type: TypeLog},
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://hooks.example.com", Method: "POST", TimeoutSeconds: 2}},
	}

	pubs, err := BuildAll(context.Background(), DefaultRegistry(), cfgs, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 2 {
		t.Fatalf("BuildAll = %d publishers", len(pubs))
	}
	if pubs[0].Type() != TypeLog || pubs[1].Type() != TypeHTTP {
		t.Fatalf("unexpected publisher types: %s, %s", pubs[0].Type(), pubs[1].Type())
	}
}

func TestBuildAllUnknownTypeFails(t *testing.T) {
	cfgs := []PublisherConfig{{ID: "x", Type: "kafka"}}
	if _, err := BuildAll(context.Background(), DefaultRegistry(), cfgs, nil); err == nil {
		t.Fatalf("expected error for unknown publisher type")
	}
}

func TestLogPublisherDeliversToLogger(t *testing.T) {
	pub := NewLogPublisher("", nil)
	if pub.ID() != "log" || pub.Type() != TypeLog {
		t.Fatalf("unexpected defaults: %s/%s", pub.ID(), pub.Type())
	}
	if err := pub.Publish(context.Background(), Event{SourceID: "a"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
