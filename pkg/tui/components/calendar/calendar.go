// Package calendar is a month-grid date picker for the reader.
package calendar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/thought/pkg/timeutil"
	"tableflip.dev/thought/pkg/tui/theme"
)

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	HasEntry   bool
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

// OptionsFrom builds Options from the reader theme.
func OptionsFrom(th theme.CalendarTheme) Options {
	return Options{
		HeaderStyle:   th.Header,
		EmptyStyle:    th.Empty,
		EntryStyle:    th.Entry,
		TodayStyle:    th.Today,
		SelectedStyle: th.Selected,
		ShowHeader:    true,
	}
}

// Model picks a calendar date. Dates with content of their own, as reported
// by has (keyed by day-of-year), are highlighted.
type Model struct {
	selected time.Time
	today    time.Time
	has      func(doy int) bool
	opts     Options
}

// New opens the picker on selected.
func New(selected, today time.Time, has func(doy int) bool, opts Options) Model {
	return Model{
		selected: noon(selected),
		today:    noon(today),
		has:      has,
		opts:     opts,
	}
}

// Selected returns the highlighted date at noon in its zone.
func (m Model) Selected() time.Time { return m.selected }

// Update moves the selection. It reports true when the user confirms a date.
func (m *Model) Update(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "left", "h":
		m.selected = m.selected.AddDate(0, 0, -1)
	case "right", "l":
		m.selected = m.selected.AddDate(0, 0, 1)
	case "up", "k":
		m.selected = m.selected.AddDate(0, 0, -7)
	case "down", "j":
		m.selected = m.selected.AddDate(0, 0, 7)
	case "pgup", "<":
		m.selected = addMonths(m.selected, -1)
	case "pgdown", ">":
		m.selected = addMonths(m.selected, 1)
	case "t":
		m.selected = m.today
	case "enter":
		return true
	}
	return false
}

// Title is the month being shown, e.g. "March 2024".
func (m Model) Title() string {
	return m.selected.Format("January 2006")
}

// View renders the month grid.
func (m Model) View() string {
	first := time.Date(m.selected.Year(), m.selected.Month(), 1, 12, 0, 0, 0, m.selected.Location())
	firstDOY := timeutil.DayOfYear(first, first.Location())

	days := make([]Day, 0, DaysIn(first))
	for d := 1; d <= DaysIn(first); d++ {
		days = append(days, Day{
			Day:        d,
			HasEntry:   m.has != nil && m.has(firstDOY+d-1),
			IsToday:    sameDay(m.today, first.AddDate(0, 0, d-1)),
			IsSelected: d == m.selected.Day(),
		})
	}
	return Render(first, days, m.opts)
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := DaysIn(month)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	offset := int(first.Weekday())
	rows := (offset + daysInMonth + 6) / 7
	for row := 0; row < rows; row++ {
		cells := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	if info.HasEntry {
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// addMonths moves by whole months, clamping to the last day so that
// January 31 plus one month is the end of February.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 12, 0, 0, 0, t.Location())
	day := t.Day()
	if last := DaysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func noon(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 12, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
