// Package cache keeps fully loaded entries for the lifetime of a session.
//
// Every day is in exactly one state: Absent (never requested), Pending (a
// fetch is in flight and every caller shares its result), Ready (loaded) or
// Failed (the last fetch failed; the next Get retries). Nothing is evicted:
// the catalog bounds the number of slots.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"tableflip.dev/thought/pkg/entry"
)

// State tags a cache slot.
type State int

const (
	Absent State = iota
	Pending
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Fetcher returns the raw record payload for a day.
type Fetcher interface {
	Fetch(ctx context.Context, day int) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, day int) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, day int) ([]byte, error) { return f(ctx, day) }

// EntryLoadError reports that a day's record could not be fetched or parsed.
type EntryLoadError struct {
	Day int
	Err error
}

func (e *EntryLoadError) Error() string {
	return fmt.Sprintf("cache: load day %d: %v", e.Day, e.Err)
}

func (e *EntryLoadError) Unwrap() error { return e.Err }

type slot struct {
	state State
	entry *entry.Entry
	err   error
}

// Cache is safe for concurrent use.
type Cache struct {
	fetcher Fetcher
	limiter *rate.Limiter
	logger  *log.Logger

	group singleflight.Group

	mu    sync.Mutex
	slots map[int]*slot
}

// Option configures a Cache.
type Option func(*Cache)

// WithLimiter throttles speculative (Preload/Warm) fetches. Explicit Gets are
// never throttled.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Cache) { c.limiter = l }
}

// WithLogger sets the logger used for swallowed preload failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty cache backed by fetcher.
func New(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: fetcher,
		logger:  log.New(io.Discard),
		slots:   make(map[int]*slot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the slot state for day.
func (c *Cache) State(day int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[day]; ok {
		return s.state
	}
	return Absent
}

// Get returns the entry for day, fetching it when it is not Ready. Concurrent
// callers for the same day share one fetch. The fetch itself is detached from
// ctx so that one caller giving up does not fail the others; ctx only bounds
// how long this caller waits.
func (c *Cache) Get(ctx context.Context, day int) (*entry.Entry, error) {
	c.mu.Lock()
	s, ok := c.slots[day]
	if ok && s.state == Ready {
		e := s.entry
		c.mu.Unlock()
		return e, nil
	}
	if !ok {
		s = &slot{}
		c.slots[day] = s
	}
	s.state = Pending
	c.mu.Unlock()

	key := strconv.Itoa(day)
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return c.load(detached, day)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entry.Entry), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load runs once per in-flight group and records the outcome.
func (c *Cache) load(ctx context.Context, day int) (*entry.Entry, error) {
	c.mu.Lock()
	if s := c.slots[day]; s.state == Ready {
		// A previous flight finished between the caller's check and this one.
		c.mu.Unlock()
		return s.entry, nil
	}
	c.mu.Unlock()

	e, err := c.fetchAndParse(ctx, day)

	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slots[day]
	if err != nil {
		s.state, s.entry, s.err = Failed, nil, err
		return nil, err
	}
	s.state, s.entry, s.err = Ready, e, nil
	return e, nil
}

func (c *Cache) fetchAndParse(ctx context.Context, day int) (*entry.Entry, error) {
	if c.fetcher == nil {
		return nil, &EntryLoadError{Day: day, Err: errors.New("no fetcher configured")}
	}
	data, err := c.fetcher.Fetch(ctx, day)
	if err != nil {
		return nil, &EntryLoadError{Day: day, Err: err}
	}
	e, err := entry.DecodeRecord(data)
	if err != nil {
		return nil, &EntryLoadError{Day: day, Err: err}
	}
	if e.Day != day {
		return nil, &EntryLoadError{Day: day, Err: fmt.Errorf("%w: record is for day %d", entry.ErrMalformed, e.Day)}
	}
	return e, nil
}

// Preload warms day without surfacing errors.
func (c *Cache) Preload(ctx context.Context, day int) {
	if c.State(day) == Ready {
		return
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Debug("preload skipped", "day", day, "err", err)
			return
		}
	}
	if _, err := c.Get(ctx, day); err != nil {
		c.logger.Warn("preload failed", "day", day, "err", err)
	}
}

// Warm preloads several days concurrently and returns when all have settled.
func (c *Cache) Warm(ctx context.Context, days ...int) {
	var g errgroup.Group
	for _, d := range days {
		g.Go(func() error {
			c.Preload(ctx, d)
			return nil
		})
	}
	_ = g.Wait()
}
