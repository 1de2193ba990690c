package archive

import (
	"strings"
	"testing"
)

func TestConvertMarkdownUsesATXHeadings(t *testing.T) {
	got, err := ConvertMarkdown(`<h1>Top</h1><h2>Sub</h2><p>para</p>`)
	if err != nil {
		t.Fatalf("ConvertMarkdown: %v", err)
	}

	if !strings.Contains(got, "# Top") {
		t.Fatalf("missing ATX h1: %q", got)
	}
	if !strings.Contains(got, "## Sub") {
		t.Fatalf("missing ATX h2: %q", got)
	}
	if strings.Contains(got, "===") || strings.Contains(got, "---") {
		t.Fatalf("underline-style heading leaked: %q", got)
	}
}

func TestConvertMarkdownNeverEmitsBlankRuns(t *testing.T) {
	got, err := ConvertMarkdown(`<p>one</p><br><br><br><br><p>two</p>`)
	if err != nil {
		t.Fatalf("ConvertMarkdown: %v", err)
	}

	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank line run not collapsed: %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Fatalf("result not trimmed: %q", got)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Fatalf("content lost: %q", got)
	}
}

func TestNormalizeMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"keeps single blank line", "a\n\nb", "a\n\nb"},
		{"trims edges", "\n\n  hello  \n\n", "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeMarkdown(tc.in); got != tc.want {
				t.Fatalf("normalizeMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
