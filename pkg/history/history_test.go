package history

import (
	"testing"

	"tableflip.dev/thought/pkg/nav"
)

func TestRoundTrip(t *testing.T) {
	for _, base := range []string{"", "thought://view", "https://example.com/thoughts/?theme=dark"} {
		loc := Format(base, 7)
		got, ok := Parse(loc)
		if !ok || got != 7 {
			t.Fatalf("Parse(Format(%q, 7)) = (%d, %v) from %q", base, got, ok, loc)
		}
	}
	if got := Format("", 7); got != "?day=7" {
		t.Fatalf("Format = %q, want ?day=7", got)
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want int
		ok   bool
	}{
		"bare query":    {in: "?day=12", want: 12, ok: true},
		"no question":   {in: "day=12", want: 12, ok: true},
		"number":        {in: " 42 ", want: 42, ok: true},
		"full url":      {in: "https://x.test/?a=b&day=3", want: 3, ok: true},
		"empty":         {in: ""},
		"missing param": {in: "?other=1"},
		"not a number":  {in: "?day=abc"},
		"zero":          {in: "?day=0"},
		"negative":      {in: "-3"},
		"garbage":       {in: "hello"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Parse(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Parse(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestStackBackForward(t *testing.T) {
	s := NewStack("?day=1")
	s.Push("?day=2")
	s.Push("?day=3")

	if loc, ok := s.Back(); !ok || loc != "?day=2" {
		t.Fatalf("Back = (%q, %v)", loc, ok)
	}
	if loc, ok := s.Back(); !ok || loc != "?day=1" {
		t.Fatalf("Back = (%q, %v)", loc, ok)
	}
	if _, ok := s.Back(); ok {
		t.Fatalf("Back past start should fail")
	}
	if loc, ok := s.Forward(); !ok || loc != "?day=2" {
		t.Fatalf("Forward = (%q, %v)", loc, ok)
	}

	// Pushing drops the forward entries.
	s.Push("?day=9")
	if _, ok := s.Forward(); ok {
		t.Fatalf("Forward after push should fail")
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if s.Location() != "?day=9" {
		t.Fatalf("Location = %q", s.Location())
	}
}

func TestSync(t *testing.T) {
	stack := NewStack("")
	hs := Sync{Browser: stack}

	hs.Canonicalize(4)
	if stack.Len() != 1 || stack.Location() != "?day=4" {
		t.Fatalf("Canonicalize should replace, got len %d loc %q", stack.Len(), stack.Location())
	}
	hs.Record(5)
	if stack.Len() != 2 || stack.Location() != "?day=5" {
		t.Fatalf("Record should push, got len %d loc %q", stack.Len(), stack.Location())
	}

	got := hs.Translate("?day=4", 1)
	want := nav.ExternalHistoryChange{ID: 4, Valid: true, Fallback: 1}
	if got != want {
		t.Fatalf("Translate = %+v, want %+v", got, want)
	}
	if got := hs.Translate("?day=x", 1); got.Valid || got.Fallback != 1 {
		t.Fatalf("Translate invalid = %+v", got)
	}
}
