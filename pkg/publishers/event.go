package publishers

import "time"

// Event is the payload published downstream after an article is archived.
type Event struct {
	SourceID   string    `json:"source_id"`
	SourceURL  string    `json:"source_url"`
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	Language   string    `json:"language"`
	ArchivedAt time.Time `json:"archived_at"`
}

// NewEvent constructs an Event for an archived article.
func NewEvent(sourceID, sourceURL, title, path, language string) Event {
	return Event{
		SourceID:   sourceID,
		SourceURL:  sourceURL,
		Title:      title,
		Path:       path,
		Language:   language,
		ArchivedAt: time.Now().UTC(),
	}
}
