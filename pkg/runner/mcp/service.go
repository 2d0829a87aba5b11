// Package mcp provides the read-only Model Context Protocol integration for thought.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/entry"
	"tableflip.dev/thought/pkg/history"
	"tableflip.dev/thought/pkg/printers"
	"tableflip.dev/thought/pkg/timeutil"
)

// Service answers MCP requests from an initialized session. It never moves
// the session's cursor.
type Service struct {
	Session  *app.Session
	Location *time.Location
}

// ThoughtDTO is a transport-friendly projection of an entry.
type ThoughtDTO struct {
	Day           int    `json:"day"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	HTML          string `json:"html"`
	Link          string `json:"link"`
	ScriptureRef  string `json:"scriptureRef,omitempty"`
	ScriptureText string `json:"scriptureText,omitempty"`
	Prayer        string `json:"prayer,omitempty"`
	BibleReading  string `json:"bibleReading,omitempty"`
}

// SummaryDTO describes one catalog record.
type SummaryDTO struct {
	Day      int      `json:"day"`
	Title    string   `json:"title"`
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing,omitempty"`
}

// NewService wraps an initialized session.
func NewService(sess *app.Session, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Session: sess, Location: loc}
}

// Today returns the thought selected for date (YYYY-MM-DD in the reference
// zone), or for now when date is empty.
func (s *Service) Today(ctx context.Context, date string) (*ThoughtDTO, error) {
	if s.Session == nil {
		return nil, errors.New("session is not configured")
	}
	var (
		id  int
		err error
	)
	if strings.TrimSpace(date) == "" {
		id, err = s.Session.DefaultID()
	} else {
		var at time.Time
		at, err = timeutil.ParseDate(date, s.Location)
		if err != nil {
			return nil, err
		}
		id, err = s.Session.DefaultIDAt(at)
	}
	if err != nil {
		return nil, err
	}
	return s.Thought(ctx, id)
}

// Thought returns a specific day.
func (s *Service) Thought(ctx context.Context, day int) (*ThoughtDTO, error) {
	if s.Session == nil {
		return nil, errors.New("session is not configured")
	}
	e, err := s.Session.Lookup(ctx, day)
	if err != nil {
		return nil, err
	}
	return toDTO(e, s.title(e)), nil
}

// List returns every catalog record, optionally filtered by a
// case-insensitive title substring.
func (s *Service) List(_ context.Context, query string) ([]SummaryDTO, error) {
	if s.Session == nil {
		return nil, errors.New("session is not configured")
	}
	cat := s.Session.Catalog()
	if cat == nil {
		return nil, app.ErrNotInitialized
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]SummaryDTO, 0, cat.Len())
	for _, r := range cat.Records() {
		if query != "" && !strings.Contains(strings.ToLower(r.Title), query) {
			continue
		}
		out = append(out, SummaryDTO{Day: r.Day, Title: r.Title, Complete: r.Complete, Missing: r.Missing})
	}
	return out, nil
}

func (s *Service) title(e *entry.Entry) string {
	fallback := fmt.Sprintf("Day %d", e.Day)
	if cat := s.Session.Catalog(); cat != nil {
		if r, ok := cat.Lookup(e.Day); ok {
			fallback = r.Title
		}
	}
	return e.DisplayTitle(fallback)
}

func toDTO(e *entry.Entry, title string) *ThoughtDTO {
	return &ThoughtDTO{
		Day:           e.Day,
		Title:         title,
		Text:          printers.Text(e.Body),
		HTML:          e.Body,
		Link:          history.Format("", e.Day),
		ScriptureRef:  e.ScriptureRef,
		ScriptureText: e.ScriptureText,
		Prayer:        e.Prayer,
		BibleReading:  e.BibleReading,
	}
}
