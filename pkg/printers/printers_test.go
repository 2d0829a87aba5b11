package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/thought/pkg/entry"
)

func init() {
	color.NoColor = true
}

func TestTextFlattensParagraphs(t *testing.T) {
	in := `<h2>Grace</h2>
<p>First   line
   continues.</p>
<p>Second<br>line two</p>
<ul><li>one</li><li>two</li></ul>
<script>alert(1)</script>`
	want := "Grace\n\nFirst line continues.\n\nSecond\nline two\n\n• one\n\n• two"
	if got := Text(in); got != want {
		t.Fatalf("Text() =\n%q\nwant\n%q", got, want)
	}
}

func TestTextPlain(t *testing.T) {
	if got := Text("  just words  "); got != "just words" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("aaa bbb ccc", 7)
	if got != "aaa bbb\nccc" {
		t.Fatalf("Wrap() = %q", got)
	}
	if Wrap("aaa bbb", 0) != "aaa bbb" {
		t.Fatalf("Wrap with no width should not change input")
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Link: "?day=4"}
	pp.Render("Day Four", "<p>Hello</p>")

	out := buf.String()
	for _, want := range []string{"Day Four\n", "?day=4\n", "Hello\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestCatalogMarksCurrent(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Catalog([]entry.IndexRecord{
		{Day: 1, Title: "Alpha", Complete: true},
		{Day: 2, Title: "Beta", Missing: []string{"prayer"}},
	}, 2)

	lines := strings.Split(buf.String(), "\n")
	var beta string
	for _, l := range lines {
		if strings.Contains(l, "Beta") {
			beta = l
		}
	}
	if !strings.Contains(beta, "➜") || !strings.Contains(beta, "missing prayer") {
		t.Fatalf("current row = %q", beta)
	}
	if !strings.Contains(buf.String(), "2 days") {
		t.Fatalf("missing footer: %q", buf.String())
	}
}

func TestStructured(t *testing.T) {
	e := &entry.Entry{Day: 3, Title: "Three", Body: "<p>x</p>"}

	var js bytes.Buffer
	if err := Structured(&js, FormatJSON, e); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"html": "<p>x</p>"`) {
		t.Fatalf("json output %q", js.String())
	}

	var ym bytes.Buffer
	if err := Structured(&ym, FormatYAML, e); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "title: Three") || !strings.Contains(ym.String(), "day: 3") {
		t.Fatalf("yaml output %q", ym.String())
	}

	if err := Structured(&ym, "xml", e); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestMonthHelpers(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Year(2024, func(d int) bool { return d <= 31 }, 60)
	out := buf.String()
	if !strings.Contains(out, "January") || !strings.Contains(out, "December") {
		t.Fatalf("year output missing months")
	}
	if strings.Count(out, "29") < 1 {
		t.Fatalf("leap day missing")
	}
}
