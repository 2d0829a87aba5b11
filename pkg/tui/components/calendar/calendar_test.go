package calendar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestUpdateMovesSelection(t *testing.T) {
	m := New(date(2024, time.January, 31), date(2024, time.January, 2), nil, Options{})

	m.Update(key(tea.KeyRight))
	if got := m.Selected(); !got.Equal(date(2024, time.February, 1)) {
		t.Fatalf("right: %v", got)
	}
	m.Update(key(tea.KeyUp))
	if got := m.Selected(); !got.Equal(date(2024, time.January, 25)) {
		t.Fatalf("up: %v", got)
	}
	m.Update(tea.KeyPressMsg{Text: "t", Code: 't'})
	if got := m.Selected(); !got.Equal(date(2024, time.January, 2)) {
		t.Fatalf("today: %v", got)
	}
	if m.Update(key(tea.KeyEnter)) != true {
		t.Fatalf("enter should confirm")
	}
}

func TestAddMonthsClamps(t *testing.T) {
	if got := addMonths(date(2024, time.January, 31), 1); !got.Equal(date(2024, time.February, 29)) {
		t.Fatalf("addMonths = %v", got)
	}
	if got := addMonths(date(2024, time.March, 15), -3); !got.Equal(date(2023, time.December, 15)) {
		t.Fatalf("addMonths = %v", got)
	}
}

func TestViewLaysOutMonth(t *testing.T) {
	var asked []int
	has := func(doy int) bool {
		asked = append(asked, doy)
		return doy <= 40
	}
	m := New(date(2024, time.February, 10), date(2024, time.February, 10), has, Options{ShowHeader: true})

	if m.Title() != "February 2024" {
		t.Fatalf("title = %q", m.Title())
	}
	lines := strings.Split(m.View(), "\n")
	if lines[0] != "Su Mo Tu We Th Fr Sa" {
		t.Fatalf("header = %q", lines[0])
	}
	// February 1 2024 was a Thursday.
	if !strings.HasPrefix(lines[1], strings.Repeat(" ", 13)+"1 ") {
		t.Fatalf("first week = %q", lines[1])
	}
	if len(asked) != 29 || asked[0] != 32 || asked[28] != 60 {
		t.Fatalf("day-of-year lookups = %v", asked)
	}
}
