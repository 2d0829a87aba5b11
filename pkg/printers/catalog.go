package printers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/thought/pkg/entry"
)

// Catalog prints the available days as a table, marking current.
func (pp *PrettyPrint) Catalog(records []entry.IndexRecord, current int) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	mark := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width())
	tbl.AddRow("", bold.Sprint("Day"), bold.Sprint("Title"), bold.Sprint("Status"))
	for _, r := range records {
		cursor := ""
		if r.Day == current {
			cursor = mark.Sprint("➜")
		}
		status := "complete"
		if !r.Complete {
			status = faint.Sprint(incomplete(r))
		}
		tbl.AddRow(cursor, strconv.Itoa(r.Day), r.Title, status)
	}
	tbl.RightAlign(1)

	w := pp.out()
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = faint.Fprintf(w, "%d days\n", len(records))
}

func incomplete(r entry.IndexRecord) string {
	if len(r.Missing) == 0 {
		return "incomplete"
	}
	return "missing " + strings.Join(r.Missing, ", ")
}
