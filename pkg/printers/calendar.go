package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/thought/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Year prints a month grid for year, highlighting days that have content
// of their own (rather than a wrapped one) and underlining today.
func (pp *PrettyPrint) Year(year int, has func(day int) bool, today int) {
	then := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		pp.Month(then, has, today)
		then = NextMonth(then)
	}
}

// Month prints one month. Days are identified by day-of-year.
func (pp *PrettyPrint) Month(then time.Time, has func(day int) bool, today int) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)
	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	now := color.New(color.Bold, color.Underline, color.FgHiYellow)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	d := StartDay(then)
	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	first := timeutil.DayOfYear(time.Date(then.Year(), then.Month(), 1, 12, 0, 0, 0, time.UTC), time.UTC)
	for i := 0; i < DaysIn(then); i++ {
		doy := first + i
		printer := l1
		switch {
		case doy == today:
			printer = now
		case has != nil && has(doy):
			printer = l2
		}
		_, _ = printer.Fprintf(w, "%2d", i+1)
		_, _ = fmt.Fprint(w, " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// NextMonth returns the first of the month after then.
func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 12, 0, 0, 0, then.Location())
}

// DaysIn returns the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
