// Package entry defines the devotional records read from a content source.
package entry

import (
	"fmt"
	"strings"
)

// Entry is one fully loaded devotional unit. Body is opaque markup that is
// handed to the renderer untouched.
type Entry struct {
	Day   int    `json:"day" yaml:"day"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"html" yaml:"html"`

	ScriptureRef  string `json:"scripture_ref,omitempty" yaml:"scripture_ref,omitempty"`
	ScriptureText string `json:"scripture_text,omitempty" yaml:"scripture_text,omitempty"`
	Devotional    string `json:"devotional,omitempty" yaml:"devotional,omitempty"`
	Prayer        string `json:"prayer,omitempty" yaml:"prayer,omitempty"`
	BibleReading  string `json:"bible_reading,omitempty" yaml:"bible_reading,omitempty"`
	HasLinks      bool   `json:"has_links,omitempty" yaml:"has_links,omitempty"`
	HasHighlights bool   `json:"has_highlights,omitempty" yaml:"has_highlights,omitempty"`
}

// IndexRecord is the lightweight projection of an Entry listed in the manifest.
type IndexRecord struct {
	Day      int      `json:"day" yaml:"day"`
	Title    string   `json:"title" yaml:"title"`
	File     string   `json:"file,omitempty" yaml:"file,omitempty"`
	Complete bool     `json:"is_complete" yaml:"is_complete"`
	Missing  []string `json:"missing_sections,omitempty" yaml:"missing_sections,omitempty"`
}

// RecordFile returns the conventional file name of the record for day.
func RecordFile(day int) string {
	return fmt.Sprintf("day-%03d.json", day)
}

// RecordFile returns the manifest-provided file name, or the conventional one.
func (r IndexRecord) RecordFile() string {
	if f := strings.TrimSpace(r.File); f != "" {
		return f
	}
	return RecordFile(r.Day)
}

// Label renders "Day N: Title".
func (r IndexRecord) Label() string {
	return fmt.Sprintf("Day %d: %s", r.Day, r.Title)
}

// DisplayTitle prefers the record's own title and falls back to fallback.
func (e *Entry) DisplayTitle(fallback string) string {
	if e == nil {
		return fallback
	}
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	return fallback
}
