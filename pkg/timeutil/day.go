package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultZone is the reference timezone used when none is configured.
	DefaultZone = "UTC"

	layoutISO = "2006-01-02"
	day       = 24 * time.Hour
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// DayOfYear returns the 1-based ordinal of the calendar date of instant as
// observed in loc. The date is pinned before any arithmetic so the viewer's
// own offset and DST transitions never shift the result.
func DayOfYear(instant time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := instant.In(loc).Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(date.Sub(jan1)/day) + 1
}

// Resolver binds a reference timezone and a clock.
type Resolver struct {
	Location *time.Location
	Clock    Clock
}

// NewResolver returns a resolver for loc backed by the system clock.
func NewResolver(loc *time.Location) Resolver {
	return Resolver{Location: loc, Clock: SystemClock{}}
}

// Today returns the day-of-year for the resolver's current instant.
func (r Resolver) Today() int {
	return r.At(r.now())
}

// At returns the day-of-year of instant in the resolver's zone.
func (r Resolver) At(instant time.Time) int {
	return DayOfYear(instant, r.Location)
}

// Now returns the current instant.
func (r Resolver) Now() time.Time { return r.now() }

func (r Resolver) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock.Now()
}

// LoadZone resolves an IANA zone name, defaulting to DefaultZone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timeutil: load zone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as noon in loc, which keeps the
// date stable under any later zone conversion.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(layoutISO, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: parse date %q: %w", value, err)
	}
	return t.Add(12 * time.Hour), nil
}
