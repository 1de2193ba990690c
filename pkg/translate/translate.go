// Package translate splits text into backend-sized chunks, translates them in
// order, and reassembles the document with its paragraph structure intact.
package translate

import (
	"context"
	"strings"
)

// DefaultChunkLimit is the per-request character safety margin for the backend.
const DefaultChunkLimit = 3500

// Backend translates one chunk of text between languages.
type Backend interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Translator chunks documents and delegates chunks to a Backend. A chunk that
// fails to translate keeps its original text; translation is never fatal.
type Translator struct {
	backend    Backend
	chunkLimit int
}

// New builds a Translator. A non-positive chunkLimit falls back to the default.
func New(backend Backend, chunkLimit int) *Translator {
	if chunkLimit <= 0 {
		chunkLimit = DefaultChunkLimit
	}
	return &Translator{backend: backend, chunkLimit: chunkLimit}
}

// Translate converts text from source to target language. Whitespace-only
// input is returned unchanged without touching the backend. Paragraphs
// (double-newline separated) are preserved exactly, including empty ones.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	paragraphs := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, block := range paragraphs {
		block = strings.TrimSpace(block)
		if block == "" {
			out = append(out, "")
			continue
		}

		chunks := packChunks(block, t.chunkLimit)
		translated := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			got, err := t.backend.Translate(ctx, chunk, source, target)
			if err != nil {
				got = chunk
			}
			translated = append(translated, got)
		}
		out = append(out, strings.Join(translated, "\n"))
	}

	return strings.Join(out, "\n\n"), nil
}

// packChunks greedily packs lines so that a chunk's accumulated length plus
// line separators stays under limit. A single line longer than the limit
// forms its own oversized chunk.
func packChunks(block string, limit int) []string {
	var chunks []string
	var current []string
	currentLen := 0

	for _, line := range strings.Split(block, "\n") {
		if len(current) > 0 && currentLen+len(line)+1 > limit {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = []string{line}
			currentLen = len(line)
			continue
		}
		current = append(current, line)
		currentLen += len(line) + 1
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}

	return chunks
}
