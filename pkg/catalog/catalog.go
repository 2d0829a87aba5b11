// Package catalog holds the ordered index of available days.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"tableflip.dev/thought/pkg/entry"
	"tableflip.dev/thought/pkg/store"
)

// ErrEmpty is wrapped by LoadError when no usable record survives validation.
var ErrEmpty = errors.New("catalog: no valid entries")

// LoadError reports that the catalog could not be built. It is fatal to
// session initialization.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Catalog is an immutable list of index records sorted ascending by day with
// unique days.
type Catalog struct {
	records []entry.IndexRecord
	index   map[int]int
}

// New sorts and deduplicates records; the first occurrence of a day wins.
func New(records []entry.IndexRecord) *Catalog {
	seen := make(map[int]bool, len(records))
	uniq := make([]entry.IndexRecord, 0, len(records))
	for _, r := range records {
		if seen[r.Day] {
			continue
		}
		seen[r.Day] = true
		uniq = append(uniq, r)
	}
	sort.SliceStable(uniq, func(i, j int) bool { return uniq[i].Day < uniq[j].Day })

	idx := make(map[int]int, len(uniq))
	for i, r := range uniq {
		idx[r.Day] = i
	}
	return &Catalog{records: uniq, index: idx}
}

// Load reads and validates the manifest from src. Invalid elements are logged
// and dropped; a manifest left with no records is an error.
func Load(ctx context.Context, src store.Source, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if src == nil {
		return nil, &LoadError{Source: "<nil>", Err: errors.New("no source configured")}
	}

	data, err := src.Read(ctx, store.ManifestName)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	records, rejected, err := entry.DecodeManifest(data)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	for _, r := range rejected {
		logger.Warn("dropping manifest element", "position", r.Position, "reason", r.Reason)
	}

	c := New(records)
	if dups := len(records) - c.Len(); dups > 0 {
		logger.Warn("dropping duplicate days", "count", dups)
	}
	if c.Len() == 0 {
		return nil, &LoadError{Source: src.String(), Err: ErrEmpty}
	}
	logger.Debug("catalog loaded", "source", src.String(), "days", c.Len())
	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the i-th record in ascending day order.
func (c *Catalog) At(i int) entry.IndexRecord {
	return c.records[i]
}

// Records returns a copy of the ordered records.
func (c *Catalog) Records() []entry.IndexRecord {
	if c == nil {
		return nil
	}
	out := make([]entry.IndexRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Contains reports whether day is present.
func (c *Catalog) Contains(day int) bool {
	_, ok := c.IndexOf(day)
	return ok
}

// IndexOf returns the position of day.
func (c *Catalog) IndexOf(day int) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[day]
	return i, ok
}

// Lookup returns the record for day.
func (c *Catalog) Lookup(day int) (entry.IndexRecord, bool) {
	i, ok := c.IndexOf(day)
	if !ok {
		return entry.IndexRecord{}, false
	}
	return c.records[i], true
}

// First returns the lowest day.
func (c *Catalog) First() (entry.IndexRecord, bool) {
	if c.Len() == 0 {
		return entry.IndexRecord{}, false
	}
	return c.records[0], true
}

// Last returns the highest day.
func (c *Catalog) Last() (entry.IndexRecord, bool) {
	if c.Len() == 0 {
		return entry.IndexRecord{}, false
	}
	return c.records[len(c.records)-1], true
}
