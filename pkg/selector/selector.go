// Package selector maps a calendar day (or an explicit request) onto a day
// that exists in the catalog.
package selector

import (
	"errors"
	"time"

	"tableflip.dev/thought/pkg/catalog"
	"tableflip.dev/thought/pkg/timeutil"
)

// ErrEmptyCatalog is returned when there is nothing to select from.
var ErrEmptyCatalog = errors.New("selector: empty catalog")

// Selector chooses the day to show.
type Selector struct {
	Resolver timeutil.Resolver
}

// New returns a selector bound to resolver.
func New(resolver timeutil.Resolver) Selector {
	return Selector{Resolver: resolver}
}

// SelectID returns the day to display for the resolver's current instant.
// override <= 0 means no explicit request.
func (s Selector) SelectID(override int, cat *catalog.Catalog) (int, error) {
	return s.SelectFor(s.Resolver.Now(), override, cat)
}

// Default is SelectID without an override.
func (s Selector) Default(cat *catalog.Catalog) (int, error) {
	return s.SelectID(0, cat)
}

// SelectFor applies the selection policy for an explicit instant:
//  1. an override present in the catalog is used verbatim;
//  2. otherwise the day-of-year, if present;
//  3. otherwise the catalog wraps, indexing by (doy-1) mod len.
func (s Selector) SelectFor(at time.Time, override int, cat *catalog.Catalog) (int, error) {
	n := cat.Len()
	if n == 0 {
		return 0, ErrEmptyCatalog
	}
	if override > 0 && cat.Contains(override) {
		return override, nil
	}
	doy := s.Resolver.At(at)
	if cat.Contains(doy) {
		return doy, nil
	}
	return Wrap(doy, cat), nil
}

// Wrap returns the catalog day at position (doy-1) mod len. The catalog must
// not be empty.
func Wrap(doy int, cat *catalog.Catalog) int {
	n := cat.Len()
	i := (doy - 1) % n
	if i < 0 {
		i += n
	}
	return cat.At(i).Day
}
