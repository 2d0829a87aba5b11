package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"tableflip.dev/thought/pkg/cache"
	"tableflip.dev/thought/pkg/catalog"
	"tableflip.dev/thought/pkg/entry"
	"tableflip.dev/thought/pkg/history"
	"tableflip.dev/thought/pkg/nav"
	"tableflip.dev/thought/pkg/selector"
	"tableflip.dev/thought/pkg/store"
	"tableflip.dev/thought/pkg/timeutil"
)

// Renderer displays an entry.
type Renderer interface {
	Render(title, body string)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(title, body string)

// Render implements Renderer.
func (f RendererFunc) Render(title, body string) { f(title, body) }

var (
	// ErrNotInitialized is returned by operations that need a loaded catalog.
	ErrNotInitialized = errors.New("app: session not initialized")
	// ErrNoHistory is returned by Back and Forward when the browser cannot step.
	ErrNoHistory = errors.New("app: browser has no navigable history")
)

// Options configures a Session. Source is required; everything else has a
// default.
type Options struct {
	Source   store.Source
	Location *time.Location
	Clock    timeutil.Clock
	Renderer Renderer
	Browser  history.Browser
	Limiter  *rate.Limiter
	Logger   *log.Logger
	// Base is the deep-link prefix, e.g. "thought://view".
	Base string
}

// Session owns the catalog, cache, cursor and history for one process.
// Dispatches are serialized.
type Session struct {
	src      store.Source
	selector selector.Selector
	renderer Renderer
	browser  history.Browser
	links    history.Sync
	limiter  *rate.Limiter
	logger   *log.Logger

	mu     sync.Mutex
	cat    *catalog.Catalog
	cache  *cache.Cache
	cursor *nav.Cursor

	warming sync.WaitGroup
}

// New creates a session. Call Init (or Start) before navigating.
func New(opts Options) *Session {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = RendererFunc(func(string, string) {})
	}
	browser := opts.Browser
	if browser == nil {
		browser = history.NewStack("")
	}
	return &Session{
		src:      opts.Source,
		selector: selector.New(timeutil.Resolver{Location: loc, Clock: clock}),
		renderer: renderer,
		browser:  browser,
		links:    history.Sync{Base: opts.Base, Browser: browser},
		limiter:  opts.Limiter,
		logger:   logger,
	}
}

// Init loads the catalog, selects the day (honouring a deep link in
// location), loads and renders it, then warms its neighbours. A catalog
// failure is returned as *catalog.LoadError and leaves the session
// uninitialized. An entry failure is returned as *cache.EntryLoadError; the
// cursor is still placed on the selected day so navigation can continue.
func (s *Session) Init(ctx context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := catalog.Load(ctx, s.src, s.logger)
	if err != nil {
		return err
	}
	s.cat = cat
	s.cache = cache.New(s.fetcher(cat), cache.WithLimiter(s.limiter), cache.WithLogger(s.logger))
	s.cursor = nav.New(cat)

	override, _ := history.Parse(location)
	id, err := s.selector.SelectID(override, cat)
	if err != nil {
		return err
	}
	t, err := s.cursor.Plan(nav.JumpTo{ID: id})
	if err != nil {
		return err
	}
	if err := s.cursor.Commit(t); err != nil {
		return err
	}
	s.links.Canonicalize(id)
	s.logger.Debug("session initialized", "day", id, "override", override, "days", cat.Len())

	e, err := s.cache.Get(ctx, id)
	if err != nil {
		return err
	}
	s.render(e)
	s.warmAround(ctx, id)
	return nil
}

// Dispatch runs one navigation command. On success the cursor moves, history
// is updated and the entry is rendered. When the entry cannot be loaded the
// cursor stays where it was and the *cache.EntryLoadError is returned. A jump
// to an unknown day lands on the default day instead.
func (s *Session) Dispatch(ctx context.Context, cmd nav.Command) (nav.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, cmd)
}

func (s *Session) dispatch(ctx context.Context, cmd nav.Command) (nav.Transition, error) {
	if s.cat == nil {
		return nav.Transition{}, ErrNotInitialized
	}

	t, err := s.cursor.Plan(cmd)
	var invalid *nav.InvalidIDError
	if errors.As(err, &invalid) {
		def, derr := s.selector.Default(s.cat)
		if derr != nil {
			return t, derr
		}
		s.logger.Debug("unknown day, using default", "requested", invalid.ID, "default", def)
		t, err = s.cursor.Plan(nav.JumpTo{ID: def})
	}
	if err != nil {
		return t, err
	}
	if !t.Moved {
		return t, nil
	}

	e, err := s.cache.Get(ctx, t.To)
	if err != nil {
		s.logger.Warn("navigation failed", "command", fmt.Sprint(cmd), "day", t.To, "err", err)
		return t, err
	}
	if err := s.cursor.Commit(t); err != nil {
		return t, err
	}

	switch c := cmd.(type) {
	case nav.ExternalHistoryChange:
		if !c.Valid || c.ID != t.To {
			s.links.Canonicalize(t.To)
		}
	default:
		if t.Push {
			s.links.Record(t.To)
		}
	}

	s.render(e)
	s.warmAround(ctx, t.To)
	return t, nil
}

// Back steps the browser back and follows it. At the start of history it is
// a no-op.
func (s *Session) Back(ctx context.Context) (nav.Transition, error) {
	return s.step(ctx, true)
}

// Forward steps the browser forward and follows it.
func (s *Session) Forward(ctx context.Context) (nav.Transition, error) {
	return s.step(ctx, false)
}

func (s *Session) step(ctx context.Context, back bool) (nav.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cat == nil {
		return nav.Transition{}, ErrNotInitialized
	}
	navigator, ok := s.browser.(history.Navigator)
	if !ok {
		return nav.Transition{}, ErrNoHistory
	}

	cur, _ := s.cursor.Current()
	var (
		loc   string
		moved bool
	)
	if back {
		loc, moved = navigator.Back()
	} else {
		loc, moved = navigator.Forward()
	}
	if !moved {
		return nav.Transition{From: cur, To: cur}, nil
	}

	def, err := s.selector.Default(s.cat)
	if err != nil {
		return nav.Transition{From: cur, To: cur}, err
	}
	t, err := s.dispatch(ctx, s.links.Translate(loc, def))
	if err != nil {
		// Undo the step so the browser keeps pointing at what is shown.
		if back {
			navigator.Forward()
		} else {
			navigator.Back()
		}
	}
	return t, err
}

// Lookup loads any catalog day without moving the cursor.
func (s *Session) Lookup(ctx context.Context, id int) (*entry.Entry, error) {
	s.mu.Lock()
	cat, c := s.cat, s.cache
	s.mu.Unlock()
	if cat == nil {
		return nil, ErrNotInitialized
	}
	if !cat.Contains(id) {
		return nil, &nav.InvalidIDError{ID: id}
	}
	return c.Get(ctx, id)
}

// DefaultID returns the day selected for the current instant.
func (s *Session) DefaultID() (int, error) {
	return s.DefaultIDAt(s.selector.Resolver.Now())
}

// DefaultIDAt returns the day selected for at.
func (s *Session) DefaultIDAt(at time.Time) (int, error) {
	s.mu.Lock()
	cat := s.cat
	s.mu.Unlock()
	if cat == nil {
		return 0, ErrNotInitialized
	}
	return s.selector.SelectFor(at, 0, cat)
}

// Now returns the current instant in the reference zone.
func (s *Session) Now() time.Time {
	r := s.selector.Resolver
	if r.Location == nil {
		return r.Now()
	}
	return r.Now().In(r.Location)
}

// Today returns the command that moves to the computed day.
func (s *Session) Today() (nav.Command, error) {
	id, err := s.DefaultID()
	if err != nil {
		return nil, err
	}
	return nav.Today{Day: id}, nil
}

// Catalog returns the loaded catalog, nil before Init.
func (s *Session) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat
}

// Current returns the displayed day.
func (s *Session) Current() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == nil {
		return 0, false
	}
	return s.cursor.Current()
}

// Bounds reports whether the displayed day is the first or last one.
func (s *Session) Bounds() (first, last bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == nil {
		return false, false
	}
	return s.cursor.AtFirst(), s.cursor.AtLast()
}

// Location returns the current deep link.
func (s *Session) Location() string {
	return s.browser.Location()
}

// CacheState reports the cache slot state for id.
func (s *Session) CacheState(id int) cache.State {
	s.mu.Lock()
	c := s.cache
	s.mu.Unlock()
	if c == nil {
		return cache.Absent
	}
	return c.State(id)
}

// Wait blocks until background neighbour warming has finished.
func (s *Session) Wait() {
	s.warming.Wait()
}

func (s *Session) render(e *entry.Entry) {
	fallback := fmt.Sprintf("Day %d", e.Day)
	if rec, ok := s.cat.Lookup(e.Day); ok {
		fallback = rec.Title
	}
	s.renderer.Render(e.DisplayTitle(fallback), e.Body)
}

// warmAround preloads the catalog neighbours of id in the background.
func (s *Session) warmAround(ctx context.Context, id int) {
	i, ok := s.cat.IndexOf(id)
	if !ok {
		return
	}
	var ids []int
	if i > 0 {
		ids = append(ids, s.cat.At(i-1).Day)
	}
	if i+1 < s.cat.Len() {
		ids = append(ids, s.cat.At(i+1).Day)
	}
	if len(ids) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	c := s.cache
	s.warming.Add(1)
	go func() {
		defer s.warming.Done()
		c.Warm(ctx, ids...)
	}()
}

func (s *Session) fetcher(cat *catalog.Catalog) cache.Fetcher {
	return cache.FetcherFunc(func(ctx context.Context, day int) ([]byte, error) {
		name := entry.RecordFile(day)
		if rec, ok := cat.Lookup(day); ok {
			name = rec.RecordFile()
		}
		return s.src.Read(ctx, name)
	})
}
