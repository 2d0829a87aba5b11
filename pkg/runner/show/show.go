// Package show prints one thought to the terminal or as structured data.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/entry"
	"tableflip.dev/thought/pkg/history"
	"tableflip.dev/thought/pkg/printers"
	"tableflip.dev/thought/pkg/timeutil"
)

// Show prints the thought for today, for a calendar date or for a day number.
type Show struct {
	Options app.Options
	// Day, when positive, is opened like a deep link.
	Day int
	// Link is a raw deep link; Day takes precedence.
	Link string
	// Date is YYYY-MM-DD in the reference zone.
	Date   string
	Output string
	Out    io.Writer
	Width  int
}

// Document is the structured form of a shown thought.
type Document struct {
	entry.Entry `yaml:",inline"`

	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

func (s *Show) Do(ctx context.Context) error {
	if s.Options.Source == nil {
		return errors.New("can not show, no content source")
	}
	format := strings.ToLower(strings.TrimSpace(s.Output))
	if format == "" {
		format = printers.FormatText
	}
	switch format {
	case printers.FormatText, printers.FormatJSON, printers.FormatYAML:
	default:
		return fmt.Errorf("unknown output %q, expected text, json or yaml", s.Output)
	}

	opts := s.Options
	if s.Date != "" {
		loc := opts.Location
		if loc == nil {
			loc = time.UTC
		}
		at, err := timeutil.ParseDate(s.Date, loc)
		if err != nil {
			return err
		}
		opts.Clock = timeutil.FixedClock(at)
	}

	out := s.Out
	if out == nil {
		out = color.Output
	}
	pp := &printers.PrettyPrint{Out: out, Width: s.Width}

	var sess *app.Session
	if format == printers.FormatText {
		opts.Renderer = app.RendererFunc(func(title, body string) {
			pp.Link = sess.Location()
			pp.Render(title, body)
		})
	} else {
		opts.Renderer = app.RendererFunc(func(string, string) {})
	}
	sess = app.New(opts)
	defer sess.Wait()

	link := s.Link
	if s.Day > 0 {
		link = history.Format("", s.Day)
	}
	if err := app.Start(ctx, sess, link); err != nil {
		return err
	}

	day, _ := sess.Current()
	e, err := sess.Lookup(ctx, day)
	if err != nil {
		return err
	}
	if format == printers.FormatText {
		pp.Meta(e)
		return nil
	}
	return printers.Structured(out, format, Document{
		Entry: *e,
		Text:  printers.Text(e.Body),
		Link:  sess.Location(),
	})
}
