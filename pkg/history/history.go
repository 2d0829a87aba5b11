// Package history keeps the cursor and the "?day=N" deep link in step.
package history

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"tableflip.dev/thought/pkg/nav"
)

// Param is the query parameter carrying the day.
const Param = "day"

// Format returns base with the day parameter set to id. Any other query
// parameters on base are kept.
func Format(base string, id int) string {
	u, err := url.Parse(base)
	if err != nil {
		u = &url.URL{}
	}
	q := u.Query()
	q.Set(Param, strconv.Itoa(id))
	u.RawQuery = q.Encode()
	return u.String()
}

// Parse extracts the day from a deep link. It accepts a full URL, a bare
// query ("?day=7" or "day=7") or a plain number. Missing, non-numeric and
// non-positive values report false.
func Parse(location string) (int, bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(location); err == nil {
		if n < 1 {
			return 0, false
		}
		return n, true
	}

	var raw string
	switch {
	case strings.HasPrefix(location, "?"):
		raw = location[1:]
	case strings.Contains(location, "?"):
		u, err := url.Parse(location)
		if err != nil {
			return 0, false
		}
		raw = u.RawQuery
	default:
		raw = location
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return 0, false
	}
	v := q.Get(Param)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Browser is the navigable history the session writes to.
type Browser interface {
	Location() string
	Push(location string)
	Replace(location string)
}

// Navigator is a Browser the user can step through.
type Navigator interface {
	Browser
	Back() (string, bool)
	Forward() (string, bool)
}

// Stack is an in-memory Navigator.
type Stack struct {
	mu      sync.Mutex
	entries []string
	pos     int
}

// NewStack returns a stack positioned at initial.
func NewStack(initial string) *Stack {
	return &Stack{entries: []string{initial}}
}

// Location returns the current entry.
func (s *Stack) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[s.pos]
}

// Push adds location after the current entry, dropping any forward entries.
func (s *Stack) Push(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		s.entries = []string{location}
		s.pos = 0
		return
	}
	s.entries = append(s.entries[:s.pos+1], location)
	s.pos++
}

// Replace overwrites the current entry.
func (s *Stack) Replace(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		s.entries = []string{location}
		return
	}
	s.entries[s.pos] = location
}

// Back steps back one entry.
func (s *Stack) Back() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos == 0 {
		return "", false
	}
	s.pos--
	return s.entries[s.pos], true
}

// Forward steps forward one entry.
func (s *Stack) Forward() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos+1 >= len(s.entries) {
		return "", false
	}
	s.pos++
	return s.entries[s.pos], true
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sync translates between cursor transitions and a Browser.
type Sync struct {
	Base    string
	Browser Browser
}

// Record pushes a history entry for id.
func (s Sync) Record(id int) string {
	loc := Format(s.Base, id)
	if s.Browser != nil {
		s.Browser.Push(loc)
	}
	return loc
}

// Canonicalize replaces the current entry with the link for id.
func (s Sync) Canonicalize(id int) string {
	loc := Format(s.Base, id)
	if s.Browser != nil {
		s.Browser.Replace(loc)
	}
	return loc
}

// Translate turns an externally reached location into a cursor command.
func (s Sync) Translate(location string, fallback int) nav.ExternalHistoryChange {
	id, ok := Parse(location)
	return nav.ExternalHistoryChange{ID: id, Valid: ok, Fallback: fallback}
}
