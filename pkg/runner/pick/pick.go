// Package pick lets the user choose a day from the catalog interactively.
package pick

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/entry"
	"tableflip.dev/thought/pkg/nav"
	"tableflip.dev/thought/pkg/printers"
)

type Pick struct {
	Options app.Options
	In      io.Reader
	Out     io.Writer
	Width   int
	// Size is the number of rows shown by the prompt.
	Size int
}

func (p *Pick) Do(ctx context.Context) error {
	if p.Options.Source == nil {
		return errors.New("can not pick, no content source")
	}
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = color.Output
	}

	pp := &printers.PrettyPrint{Out: out, Width: p.Width}
	var (
		sess  *app.Session
		armed bool
	)
	opts := p.Options
	opts.Renderer = app.RendererFunc(func(title, body string) {
		if !armed {
			return
		}
		pp.Link = sess.Location()
		pp.Render(title, body)
	})
	sess = app.New(opts)
	defer sess.Wait()

	if err := sess.Init(ctx, ""); err != nil && sess.Catalog() == nil {
		return err
	}
	records := sess.Catalog().Records()
	today, _ := sess.Current()

	i, err := p.prompt(records, today, in, out)
	if err != nil {
		return err
	}
	picked := records[i]

	armed = true
	t, err := sess.Dispatch(ctx, nav.JumpTo{ID: picked.Day})
	if err != nil {
		return err
	}
	e, err := sess.Lookup(ctx, picked.Day)
	if err != nil {
		return err
	}
	// Picking the day already shown renders nothing on its own.
	if !t.Moved {
		pp.Link = sess.Location()
		pp.Render(e.DisplayTitle(picked.Title), e.Body)
	}
	pp.Meta(e)
	return nil
}

func (p *Pick) prompt(records []entry.IndexRecord, today int, in io.Reader, out io.Writer) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Day | cyan }} {{ .Title }}",
		Inactive: "   {{ .Day | faint }} {{ .Title }}",
		Selected: "➜  Day {{ .Day }}: {{ .Title | cyan }}",
		Details: `
--------- Details ----------
{{ if .Complete }}complete{{ else }}missing: {{ range .Missing }}{{ . }} {{ end }}{{ end }}
`,
	}

	size := p.Size
	if size <= 0 {
		size = 10
	}
	cursor := startAt(records, today)

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Which day",
		Items:     records,
		Templates: templates,
		Size:      size,
		CursorPos: cursor,
		Searcher:  searcher(records),
		Stdin:     ioutil.NopCloser(in),
		Stdout:    nopCloser{out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}
	return i, nil
}

// searcher matches a day number exactly or a title ignoring case and spaces.
func searcher(records []entry.IndexRecord) func(string, int) bool {
	return func(input string, index int) bool {
		r := records[index]
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		if strconv.Itoa(r.Day) == input {
			return true
		}
		name := strings.Replace(strings.ToLower(r.Title), " ", "", -1)
		return strings.Contains(name, input)
	}
}

func startAt(records []entry.IndexRecord, day int) int {
	for i, r := range records {
		if r.Day == day {
			return i
		}
	}
	return 0
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
