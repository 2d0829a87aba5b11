package reader

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/thought/pkg/app"
)

// Renderer hands session renders to the Bubble Tea loop. It implements
// app.Renderer.
type Renderer struct {
	ch chan renderedMsg
}

// NewRenderer returns a renderer with a small buffer.
func NewRenderer() *Renderer {
	return &Renderer{ch: make(chan renderedMsg, 8)}
}

// Render queues a render. When the UI falls behind, the oldest pending
// render is dropped; only the latest one matters.
func (r *Renderer) Render(title, body string) {
	msg := renderedMsg{title: title, body: body}
	for {
		select {
		case r.ch <- msg:
			return
		default:
		}
		select {
		case <-r.ch:
		default:
		}
	}
}

// Run launches the reader in the alternate screen. opts.Renderer is
// replaced with the reader's own.
func Run(ctx context.Context, opts app.Options, link string) error {
	r := NewRenderer()
	opts.Renderer = r
	sess := app.New(opts)

	p := tea.NewProgram(New(ctx, sess, r, link), tea.WithAltScreen())
	_, err := p.Run()
	sess.Wait()
	return err
}
