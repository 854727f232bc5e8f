package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/kiosk/pkg/order"
	"tableflip.dev/kiosk/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Tasks prints one row per task in the given order. Position is the
// 1-based index in tasks, which is what `tasks move` takes.
func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	badge := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	for i, t := range tasks {
		mark, title := "○", t.Title
		if t.CompletedToday {
			mark, title = "✓", done.Sprint(t.Title)
		}
		row := []interface{}{fmt.Sprintf("%d.", i+1), mark, title, badge.Sprint(t.Badge())}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Task prints every field of one task.
func (pp *PrettyPrint) Task(t task.Task) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	key := color.New(color.Bold)
	tbl.AddRow(key.Sprint("id"), t.ID)
	tbl.AddRow(key.Sprint("title"), t.Title)
	if t.Description != "" {
		tbl.AddRow(key.Sprint("description"), t.Description)
	}
	tbl.AddRow(key.Sprint("repeats"), t.Badge())
	if t.StartDate != "" || t.EndDate != "" {
		tbl.AddRow(key.Sprint("dates"), fmt.Sprintf("%s..%s", t.StartDate, t.EndDate))
	}
	tbl.AddRow(key.Sprint("done today"), t.CompletedToday)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Record prints a stored order and whether it still applies on today.
func (pp *PrettyPrint) Record(r order.Record, ok bool, today string) {
	if !ok {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "no local order recorded")
		return
	}

	state := color.New(color.FgGreen).Sprint("current")
	if !r.ValidFor(today) {
		state = color.New(color.FgRed).Sprint("stale")
	}

	ids := make([]string, len(r.IDs))
	for i, id := range r.IDs {
		ids[i] = string(id)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	key := color.New(color.Bold)
	tbl.AddRow(key.Sprint("date"), r.Date, state)
	tbl.AddRow(key.Sprint("order"), strings.Join(ids, " "))
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
