package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/thought/pkg/entry"
)

// DefaultWidth is the wrap width when none is configured.
const DefaultWidth = 80

// PrettyPrint writes entries to a terminal.
type PrettyPrint struct {
	Out   io.Writer
	Width int
	// Link, when set, is printed under the title.
	Link string
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

// Render prints a title and an HTML body. It satisfies app.Renderer.
func (pp *PrettyPrint) Render(title, body string) {
	w := pp.out()
	t := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = t.Fprintln(w, title)
	if pp.Link != "" {
		_, _ = f.Fprintln(w, pp.Link)
	}
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, Wrap(Text(body), pp.width()))
	_, _ = fmt.Fprintln(w, "")
}

// Meta prints the scripture reference and reading plan of e, if any.
func (pp *PrettyPrint) Meta(e *entry.Entry) {
	w := pp.out()
	y := color.New(color.FgHiYellow, color.Italic)
	f := color.New(color.Faint)
	if e.ScriptureRef != "" {
		_, _ = y.Fprintln(w, e.ScriptureRef)
	}
	if e.BibleReading != "" {
		_, _ = f.Fprintf(w, "Reading: %s\n", strings.TrimSpace(e.BibleReading))
	}
}

// Error prints a scoped failure without tearing down the output.
func (pp *PrettyPrint) Error(err error) {
	r := color.New(color.FgRed)
	_, _ = r.Fprintf(pp.out(), "error: %v\n", err)
}
