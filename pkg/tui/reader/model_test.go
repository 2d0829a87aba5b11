package reader

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/store"
	"tableflip.dev/thought/pkg/timeutil"
)

type memorySource map[string]string

func (m memorySource) Read(_ context.Context, name string) ([]byte, error) {
	v, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return []byte(v), nil
}

func (m memorySource) String() string { return "memory" }

func threeDays() memorySource {
	src := memorySource{
		store.ManifestName: `[{"day": 1, "title": "One"}, {"day": 2, "title": "Two"}, {"day": 3, "title": "Three"}]`,
	}
	for d := 1; d <= 3; d++ {
		src[fmt.Sprintf("day-%03d.json", d)] = fmt.Sprintf(`{"day": %d, "title": "Title %d", "html": "<p>Body %d</p>"}`, d, d, d)
	}
	return src
}

func newModel(t *testing.T, src store.Source, link string) (Model, *app.Session) {
	t.Helper()
	r := NewRenderer()
	sess := app.New(app.Options{
		Source:   src,
		Clock:    timeutil.FixedClock(time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)),
		Renderer: r,
	})
	t.Cleanup(sess.Wait)

	m := New(context.Background(), sess, r, link)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	next, _ = m.Update(m.start()())
	m = next.(Model)
	return drain(m), sess
}

// drain applies every queued render.
func drain(m Model) Model {
	for {
		select {
		case r := <-m.renderer.ch:
			next, _ := m.Update(r)
			m = next.(Model)
		default:
			return m
		}
	}
}

// press sends a key, runs the resulting commands and applies their results.
func press(t *testing.T, m Model, key tea.KeyPressMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	m = next.(Model)
	for _, msg := range run(cmd) {
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	return drain(m)
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	switch msg.(type) {
	case navigatedMsg, startedMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func char(c rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(c), Code: c}
}

func TestStartRendersSelectedDay(t *testing.T) {
	m, _ := newModel(t, threeDays(), "")
	if m.Day() != 2 {
		t.Fatalf("day = %d, want 2", m.Day())
	}
	if m.Title() != "Title 2" {
		t.Fatalf("title = %q", m.Title())
	}
	view := m.View()
	for _, want := range []string{"Title 2", "Body 2", "?day=2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestNextAndPreviousKeys(t *testing.T) {
	m, _ := newModel(t, threeDays(), "")

	m = press(t, m, char('l'))
	if m.Day() != 3 || m.Title() != "Title 3" {
		t.Fatalf("after l: day %d title %q", m.Day(), m.Title())
	}
	m = press(t, m, char('l'))
	if m.Day() != 3 || m.Status() != "this is the last day" {
		t.Fatalf("after l at end: day %d status %q", m.Day(), m.Status())
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	if m.Day() != 2 {
		t.Fatalf("after left: day %d", m.Day())
	}
}

func TestHistoryKeys(t *testing.T) {
	m, sess := newModel(t, threeDays(), "")
	m = press(t, m, char('h'))
	if m.Day() != 1 {
		t.Fatalf("day = %d, want 1", m.Day())
	}
	m = press(t, m, char('b'))
	if m.Day() != 2 || sess.Location() != "?day=2" {
		t.Fatalf("after back: day %d location %q", m.Day(), sess.Location())
	}
	m = press(t, m, char('b'))
	if m.Status() != "no more history" {
		t.Fatalf("status = %q", m.Status())
	}
	m = press(t, m, char(']'))
	if m.Day() != 1 {
		t.Fatalf("after forward: day %d", m.Day())
	}
}

func TestJumpPrompt(t *testing.T) {
	m, _ := newModel(t, threeDays(), "")
	m = press(t, m, char('g'))
	if m.mode != modeJump {
		t.Fatalf("expected jump mode")
	}
	m = press(t, m, char('1'))
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNormal || m.Day() != 1 {
		t.Fatalf("after jump: mode %v day %d", m.mode, m.Day())
	}

	// Unknown days land on today's selection.
	m = press(t, m, char('g'))
	m = press(t, m, char('9'))
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Day() != 2 {
		t.Fatalf("after invalid jump: day %d, want 2", m.Day())
	}
}

func TestCalendarOpensPickedDate(t *testing.T) {
	m, _ := newModel(t, threeDays(), "")
	m = press(t, m, char('c'))
	if m.mode != modeCalendar {
		t.Fatalf("expected calendar mode")
	}
	if !strings.Contains(m.View(), "January 2024") {
		t.Fatalf("calendar view missing month:\n%s", m.View())
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNormal || m.Day() != 3 {
		t.Fatalf("after picking Jan 3: mode %v day %d", m.mode, m.Day())
	}

	// Dates past the end of the content wrap around.
	m = press(t, m, char('c'))
	for i := 0; i < 2; i++ {
		m = press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Day() != 1 {
		t.Fatalf("after picking Jan 4: day %d, want 1", m.Day())
	}
}

func TestEntryFailureShowsScopedError(t *testing.T) {
	src := threeDays()
	delete(src, "day-003.json")
	m, _ := newModel(t, src, "")

	m = press(t, m, char('l'))
	if m.Day() != 2 {
		t.Fatalf("day = %d, want 2", m.Day())
	}
	if !m.failed || !strings.Contains(m.Status(), "could not load day 3") {
		t.Fatalf("status = %q", m.Status())
	}
	if m.Title() != "Title 2" {
		t.Fatalf("title = %q", m.Title())
	}
}

func TestCatalogFailureShowsFallback(t *testing.T) {
	m, _ := newModel(t, memorySource{}, "")
	if m.Title() != app.FallbackTitle {
		t.Fatalf("title = %q", m.Title())
	}
	if !m.failed || !strings.HasPrefix(m.Status(), "catalog unavailable") {
		t.Fatalf("status = %q", m.Status())
	}

	// Navigation keys are ignored without a catalog.
	next, cmd := m.Update(char('l'))
	if cmd != nil {
		if msgs := run(cmd); len(msgs) != 0 {
			t.Fatalf("unexpected messages %v", msgs)
		}
	}
	if next.(Model).Day() != 0 {
		t.Fatalf("day should stay unset")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, threeDays(), "")
	_, cmd := m.Update(char('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestRendererKeepsLatest(t *testing.T) {
	r := NewRenderer()
	for i := 0; i < 20; i++ {
		r.Render(fmt.Sprintf("t%d", i), "")
	}
	var last renderedMsg
	for len(r.ch) > 0 {
		last = <-r.ch
	}
	if last.title != "t19" {
		t.Fatalf("last render = %q, want t19", last.title)
	}
}
