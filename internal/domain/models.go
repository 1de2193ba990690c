// Package domain contains the core models flowing through the archive pipeline.
package domain

// LinkItem is one labeled hyperlink parsed out of the links document.
// Immutable once parsed; duplicates are processed independently.
type LinkItem struct {
	Title  string
	URL    string
	Parent string
}

// Article is the unit of work produced by one pipeline run and written to disk.
type Article struct {
	SourceURL       string
	SourceID        string
	OriginalTitle   string
	TranslatedTitle string
	OriginalLang    string
	TargetLang      string
	Body            string
}
