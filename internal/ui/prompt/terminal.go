// Package prompt is the line-oriented terminal front end: it renders run
// progress and reads the user's decisions from standard input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"classsign/internal/modules/attendance/dto"
	"classsign/internal/ui/theme"
)

const rule = "============================================================"

// Terminal implements the attendance presenter over a reader and a writer.
// EOF on the reader answers every question with "no".
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) ReportProgress(p dto.Progress) {
	style := theme.Muted
	switch p.Level {
	case dto.LevelWarning:
		style = theme.Warning
	case dto.LevelError:
		style = theme.Failure
	}
	fmt.Fprintln(t.out, style.Render(p.Text))
}

func (t *Terminal) ReportResult(r dto.CheckinResultOutput) {
	line := fmt.Sprintf("%s  %s  %s", r.Date, r.CourseName, r.Window)
	if r.Success {
		fmt.Fprintln(t.out, theme.Success.Render("✓ checked in: "+line))
		return
	}
	if r.Detail != "" {
		line += " (" + r.Detail + ")"
	}
	fmt.Fprintln(t.out, theme.Failure.Render("✗ check-in failed: "+line))
}

func (t *Terminal) AskContinue(q dto.ContinueQuestion) bool {
	switch q.Reason {
	case dto.ContinueEmptyStreak:
		fmt.Fprintln(t.out, theme.Warning.Render(fmt.Sprintf("%d days in a row without courses.", q.EmptyDays)))
		fmt.Fprintf(t.out, "Keep scanning from %s? [Y/n] ", q.NextDate.Format("2006-01-02"))
		answer, ok := t.readLine()
		if !ok {
			return false
		}
		answer = strings.ToLower(answer)
		return answer != "n" && answer != "no"
	default:
		fmt.Fprintf(t.out, "Continue with %s? [y/N] ", q.NextDate.Format("2006-01-02"))
	}
	answer, ok := t.readLine()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// AskSelection lists the day's courses and reads a, a course number, or q.
// Unrecognised input is asked again.
func (t *Terminal) AskSelection(day dto.DayScheduleOutput) dto.Selection {
	t.Schedule(day)
	fmt.Fprintln(t.out, "  "+theme.Success.Render("a")+"    check in every course")
	fmt.Fprintf(t.out, "  %s  check in one course\n", theme.Hot.Render(fmt.Sprintf("1-%d", len(day.Entries))))
	fmt.Fprintln(t.out, "  "+theme.Failure.Render("q")+"    skip this day")
	for {
		fmt.Fprint(t.out, "Choice: ")
		line, ok := t.readLine()
		if !ok {
			return dto.Selection{Kind: dto.SelectNone}
		}
		if sel, ok := parseSelection(line); ok {
			return sel
		}
		fmt.Fprintln(t.out, theme.Failure.Render("invalid choice"))
	}
}

func parseSelection(line string) (dto.Selection, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "a", "all":
		return dto.Selection{Kind: dto.SelectAll}, true
	case "q", "n", "none":
		return dto.Selection{Kind: dto.SelectNone}, true
	}
	index, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return dto.Selection{}, false
	}
	// Range is checked by the engine so a bad index is reported, not re-read.
	return dto.Selection{Kind: dto.SelectOne, Index: index}, true
}

// Schedule prints a day's courses in the numbered form selection refers to.
func (t *Terminal) Schedule(day dto.DayScheduleOutput) {
	date := day.Date.Format("2006-01-02")
	if len(day.Entries) == 0 {
		fmt.Fprintln(t.out, theme.Warning.Render("No courses on "+date))
		return
	}
	fmt.Fprintln(t.out, theme.Success.Render(fmt.Sprintf("%d courses on %s:", len(day.Entries), date)))
	fmt.Fprintln(t.out)
	for _, e := range day.Entries {
		fmt.Fprintln(t.out, theme.Title.Render(fmt.Sprintf("%d. %s", e.Index, e.CourseName)))
		fmt.Fprintf(t.out, "   time: %s\n", e.Window)
		if e.Location != "" {
			fmt.Fprintf(t.out, "   room: %s\n", e.Location)
		}
		if e.Instructor != "" {
			fmt.Fprintf(t.out, "   teacher: %s\n", e.Instructor)
		}
	}
	fmt.Fprintln(t.out)
}

// Header prints a boxed title line.
func (t *Terminal) Header(title string) {
	fmt.Fprintln(t.out, theme.Title.Render(rule))
	fmt.Fprintln(t.out, theme.Title.Render(lipgloss.PlaceHorizontal(len(rule), lipgloss.Center, title)))
	fmt.Fprintln(t.out, theme.Title.Render(rule))
	fmt.Fprintln(t.out)
}

// Menu prints numbered options and returns the 1-based choice. ok is false
// on q or end of input.
func (t *Terminal) Menu(options []string) (choice int, ok bool) {
	for i, option := range options {
		fmt.Fprintf(t.out, "  %s %s\n", theme.Hot.Render(strconv.Itoa(i+1)+"."), option)
	}
	fmt.Fprintln(t.out)
	for {
		fmt.Fprintf(t.out, "Choose an action (1-%d, q to quit): ", len(options))
		line, ok := t.readLine()
		if !ok || strings.EqualFold(line, "q") {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n, true
		}
		fmt.Fprintln(t.out, theme.Failure.Render(fmt.Sprintf("enter a number between 1 and %d", len(options))))
	}
}

// Ask prints label and returns the trimmed answer. ok is false on q or end
// of input.
func (t *Terminal) Ask(label string) (string, bool) {
	fmt.Fprintf(t.out, "%s: ", label)
	line, ok := t.readLine()
	if !ok || strings.EqualFold(line, "q") {
		return "", false
	}
	return line, true
}

// Pause waits for enter.
func (t *Terminal) Pause() {
	fmt.Fprint(t.out, theme.Muted.Render("Press enter to continue..."))
	_, _ = t.readLine()
}

func (t *Terminal) Error(err error) {
	fmt.Fprintln(t.out, theme.Failure.Render(err.Error()))
}

func (t *Terminal) readLine() (string, bool) {
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}
