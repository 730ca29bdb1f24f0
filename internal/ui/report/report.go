// Package report renders command results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"classsign/internal/modules/attendance/dto"
	"classsign/internal/platform/format"
	"classsign/internal/ui/theme"
)

var weekdays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Write renders v as json or yaml, or calls text for plain output.
func Write(w io.Writer, f format.Format, v any, text func(io.Writer)) error {
	if f == format.Text {
		text(w)
		return nil
	}
	return format.Encode(w, f, v)
}

func Summary(w io.Writer, s dto.RunSummary) {
	fmt.Fprintln(w, theme.Title.Render(fmt.Sprintf("%s run finished: %s", s.Policy, s.StopReason)))
	fmt.Fprintf(w, "dates visited: %d\n", s.DatesVisited)
	line := fmt.Sprintf("checked in: %d/%d", s.Succeeded, s.Attempted)
	switch {
	case s.Attempted == 0:
		fmt.Fprintln(w, theme.Muted.Render(line))
	case s.Failed == 0:
		fmt.Fprintln(w, theme.Success.Render(line))
	default:
		fmt.Fprintln(w, theme.Warning.Render(fmt.Sprintf("%s (%d failed)", line, s.Failed)))
	}
}

func Schedule(w io.Writer, day dto.DayScheduleOutput) {
	date := day.Date.Format("2006-01-02")
	if len(day.Entries) == 0 {
		fmt.Fprintln(w, theme.Muted.Render("no courses on "+date))
		return
	}
	t := newTable("#", "Course", "Time", "Room", "Teacher")
	for _, e := range day.Entries {
		t.Row(fmt.Sprint(e.Index), e.CourseName, e.Window, e.Location, e.Instructor)
	}
	fmt.Fprintln(w, theme.Title.Render(date))
	fmt.Fprintln(w, t.Render())
}

// Week prints one row per course across the week, with a placeholder row for
// days that have no courses or failed to load.
func Week(w io.Writer, week dto.WeekOutput) {
	t := newTable("Day", "Date", "Course", "Time", "Room")
	for i, day := range week.Days {
		name := ""
		if i < len(weekdays) {
			name = weekdays[i]
		}
		date := day.Date.Format("01-02")
		switch {
		case day.Error != "":
			t.Row(name, date, "unavailable: "+day.Error, "", "")
		case len(day.Entries) == 0:
			t.Row(name, date, "-", "", "")
		default:
			for _, e := range day.Entries {
				t.Row(name, date, e.CourseName, e.Window, e.Location)
			}
		}
	}
	fmt.Fprintln(w, theme.Title.Render(fmt.Sprintf("Week %d", week.Week)))
	fmt.Fprintln(w, t.Render())
}

func History(w io.Writer, entries []dto.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no check-ins recorded")
		return
	}
	t := newTable("When", "Class date", "Course", "Time", "Result")
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = strings.TrimSpace("failed " + e.Detail)
		}
		t.Row(e.RecordedAt.Local().Format("2006-01-02 15:04"), e.Date, e.CourseName, e.Window, result)
	}
	fmt.Fprintln(w, t.Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
