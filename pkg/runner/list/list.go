// Package list prints the catalog of available days.
package list

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/printers"
	"tableflip.dev/thought/pkg/timeutil"
)

type List struct {
	Options app.Options
	Out     io.Writer
	Width   int
	// Output is text, json or yaml.
	Output string
	// Calendar prints a year grid instead of a table.
	Calendar bool
}

func (l *List) Do(ctx context.Context) error {
	if l.Options.Source == nil {
		return errors.New("can not list, no content source")
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}

	opts := l.Options
	opts.Renderer = app.RendererFunc(func(string, string) {})
	sess := app.New(opts)
	defer sess.Wait()

	// Today's entry failing to load does not stop the listing.
	err := sess.Init(ctx, "")
	cat := sess.Catalog()
	if cat == nil {
		return err
	}

	switch l.Output {
	case printers.FormatJSON, printers.FormatYAML:
		return printers.Structured(out, l.Output, cat.Records())
	}

	pp := &printers.PrettyPrint{Out: out, Width: l.Width}
	current, _ := sess.Current()
	if !l.Calendar {
		pp.Catalog(cat.Records(), current)
		return nil
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := opts.Clock
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	now := clock.Now().In(loc)
	pp.Year(now.Year(), cat.Contains, timeutil.DayOfYear(now, loc))
	return nil
}
