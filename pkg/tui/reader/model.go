// Package reader is the Bubble Tea front end: it renders the session's
// current entry and turns key presses into navigation commands.
package reader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/thought/pkg/app"
	"tableflip.dev/thought/pkg/cache"
	"tableflip.dev/thought/pkg/catalog"
	"tableflip.dev/thought/pkg/nav"
	"tableflip.dev/thought/pkg/printers"
	"tableflip.dev/thought/pkg/tui/components/calendar"
	"tableflip.dev/thought/pkg/tui/components/help"
	"tableflip.dev/thought/pkg/tui/components/panel"
	"tableflip.dev/thought/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeJump
	modeHelp
	modeCalendar
)

const (
	helpHint     = "h/l prev/next · t today · g jump · c calendar · b/f back/forward · ? help · q quit"
	calendarHint = "arrows move · </> month · t today · enter open · esc cancel"
)

// messages
type startedMsg struct{ err error }
type navigatedMsg struct {
	t       nav.Transition
	err     error
	history bool
}
type renderedMsg struct{ title, body string }
type rendererClosedMsg struct{}

// Model holds the reader UI state. The session and the channel renderer are
// shared between copies of the model.
type Model struct {
	sess     *app.Session
	renderer *Renderer
	ctx      context.Context
	link     string

	mode   mode
	theme  theme.Theme
	body   viewport.Model
	input  textinput.Model
	helpUI *help.Model
	cal    calendar.Model
	frame  panel.Model

	cat    *catalog.Catalog
	day    int
	title  string
	markup string
	status string
	failed bool
	ready  bool

	termWidth  int
	termHeight int
}

// New creates the reader. renderer must be the Renderer the session was
// built with; link is the deep link to open.
func New(ctx context.Context, sess *app.Session, renderer *Renderer, link string) Model {
	ti := textinput.New()
	ti.Placeholder = "day number"
	ti.CharLimit = 4
	ti.Prompt = ""

	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(20))

	th := theme.Default()
	frame := panel.New(th)
	frame.SetHint(calendarHint)

	return Model{
		sess:     sess,
		renderer: renderer,
		ctx:      ctx,
		link:     link,
		theme:    th,
		body:     vp,
		input:    ti,
		frame:    frame,
		status:   "loading…",
	}
}

// Init starts the session and begins listening for renders.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.waitForRender())
}

func (m Model) start() tea.Cmd {
	sess, ctx, link := m.sess, m.ctx, m.link
	return func() tea.Msg {
		return startedMsg{err: app.Start(ctx, sess, link)}
	}
}

func (m Model) waitForRender() tea.Cmd {
	if m.renderer == nil {
		return nil
	}
	ch := m.renderer.ch
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return rendererClosedMsg{}
		}
		return r
	}
}

func (m Model) dispatch(cmd nav.Command) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		t, err := sess.Dispatch(ctx, cmd)
		return navigatedMsg{t: t, err: err}
	}
}

func (m Model) today() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		cmd, err := sess.Today()
		if err != nil {
			return navigatedMsg{err: err}
		}
		t, err := sess.Dispatch(ctx, cmd)
		return navigatedMsg{t: t, err: err}
	}
}

func (m Model) openDate(at time.Time) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		id, err := sess.DefaultIDAt(at)
		if err != nil {
			return navigatedMsg{err: err}
		}
		t, err := sess.Dispatch(ctx, nav.JumpTo{ID: id})
		return navigatedMsg{t: t, err: err}
	}
}

func (m Model) step(back bool) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		var (
			t   nav.Transition
			err error
		)
		if back {
			t, err = sess.Back(ctx)
		} else {
			t, err = sess.Forward(ctx)
		}
		return navigatedMsg{t: t, err: err, history: true}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()

	case startedMsg:
		m.cat = m.sess.Catalog()
		m.day, _ = m.sess.Current()
		// After an entry failure the cursor is still placed, so keep going.
		m.ready = m.cat != nil
		var le *catalog.LoadError
		switch {
		case errors.As(msg.err, &le):
			m.setError("catalog unavailable: " + le.Err.Error())
		case msg.err != nil:
			m.setError(describe(msg.err))
		default:
			m.setStatus("")
		}

	case renderedMsg:
		m.title = msg.title
		m.markup = msg.body
		m.refreshBody()
		cmds = append(cmds, m.waitForRender())

	case navigatedMsg:
		switch {
		case msg.err != nil:
			m.setError(describe(msg.err))
		case !msg.t.Moved && msg.history:
			m.setStatus("no more history")
		case !msg.t.Moved:
			m.setStatus(m.boundaryNote())
		default:
			m.day = msg.t.To
			m.setStatus("")
		}

	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			switch msg.String() {
			case "q", "esc", "?":
				m.mode = modeNormal
			default:
				var cmd tea.Cmd
				m.helpUI, cmd = m.helpUI.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeCalendar:
			switch msg.String() {
			case "esc", "q", "c":
				m.mode = modeNormal
			default:
				if m.cal.Update(msg) {
					m.mode = modeNormal
					cmds = append(cmds, m.openDate(m.cal.Selected()))
				}
			}
		case modeJump:
			switch msg.String() {
			case "enter":
				input := strings.TrimSpace(m.input.Value())
				m.leaveJump()
				if id, err := strconv.Atoi(input); err == nil {
					cmds = append(cmds, m.dispatch(nav.JumpTo{ID: id}))
				} else if input != "" {
					m.setError(fmt.Sprintf("not a day number: %q", input))
				}
			case "esc":
				m.leaveJump()
				m.setStatus("jump cancelled")
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "?":
				m.mode = modeHelp
				if m.helpUI == nil {
					m.helpUI = help.New(m.helpSize())
				}
			}
			if !m.ready {
				break
			}
			switch msg.String() {
			case "h", "left":
				cmds = append(cmds, m.dispatch(nav.Previous{}))
			case "l", "right":
				cmds = append(cmds, m.dispatch(nav.Next{}))
			case "t":
				cmds = append(cmds, m.today())
			case "b", "[":
				cmds = append(cmds, m.step(true))
			case "f", "]":
				cmds = append(cmds, m.step(false))
			case "c":
				now := m.sess.Now()
				m.cal = calendar.New(now, now, m.cat.Contains, calendar.OptionsFrom(m.theme.Calendar))
				m.mode = modeCalendar
			case "g":
				m.mode = modeJump
				m.input.Reset()
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.body, cmd = m.body.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case rendererClosedMsg:
		// nothing more will be rendered
	}

	return m, tea.Batch(cmds...)
}

// View renders the header, the entry body and the status bar.
func (m Model) View() string {
	header := m.theme.Header.Title.Render(m.title)
	if m.day > 0 {
		header += "  " + m.theme.Header.Day.Render(fmt.Sprintf("day %d", m.day))
	}

	var main string
	switch m.mode {
	case modeHelp:
		main = m.helpUI.View()
	case modeCalendar:
		frame := m.frame
		frame.SetContent(m.cal.Title(), m.cal.View())
		main = frame.View()
	default:
		main = m.theme.Panel.Frame.Render(m.body.View())
	}

	var footer string
	switch {
	case m.mode == modeJump:
		footer = m.theme.Modal.Title.Render("Jump to day: ") + m.input.View()
	case m.failed:
		footer = m.theme.Footer.Error.Render(m.status)
	case m.status != "":
		footer = m.theme.Footer.Status.Render(m.status)
	}
	links := m.theme.Footer.Link.Render(m.sess.Location())
	hint := m.theme.Footer.Help.Render(helpHint)

	return lipgloss.JoinVertical(lipgloss.Left, header, main, footer, links+"  "+hint)
}

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Title returns the rendered entry title.
func (m Model) Title() string { return m.title }

// Day returns the displayed day, 0 before the first successful load.
func (m Model) Day() int { return m.day }

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.failed = true
}

func (m *Model) leaveJump() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
}

func (m Model) boundaryNote() string {
	i, ok := m.cat.IndexOf(m.day)
	switch {
	case !ok:
		return ""
	case i == 0:
		return "this is the first day"
	case i == m.cat.Len()-1:
		return "this is the last day"
	default:
		return ""
	}
}

func describe(err error) string {
	var le *cache.EntryLoadError
	if errors.As(err, &le) {
		return fmt.Sprintf("could not load day %d: %v", le.Day, le.Err)
	}
	return err.Error()
}

func (m *Model) bodyWidth() int {
	w := m.termWidth - m.theme.Panel.Frame.GetHorizontalFrameSize()
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) helpSize() (int, int) {
	return max(m.termWidth, 32), max(m.termHeight-4, 8)
}

// applySizes recalculates the viewport based on the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	// Leave room for header, frame and two footer lines.
	height := m.termHeight - 3 - m.theme.Panel.Frame.GetVerticalFrameSize()
	if height < 3 {
		height = 3
	}
	m.body.SetWidth(m.bodyWidth())
	m.body.SetHeight(height)
	if m.helpUI != nil {
		m.helpUI.SetSize(m.helpSize())
	}
	m.refreshBody()
}

func (m *Model) refreshBody() {
	m.body.SetContent(printers.Wrap(printers.Text(m.markup), m.bodyWidth()))
	m.body.SetYOffset(0)
}
