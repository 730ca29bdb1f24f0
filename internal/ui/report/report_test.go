package report_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"classsign/internal/modules/attendance/dto"
	"classsign/internal/platform/format"
	"classsign/internal/ui/report"
)

func TestSummaryText(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	report.Summary(&out, dto.RunSummary{Policy: "range", DatesVisited: 3, Attempted: 4, Succeeded: 3, Failed: 1, StopReason: "all dates visited"})
	text := out.String()
	for _, want := range []string{"range run finished: all dates visited", "dates visited: 3", "checked in: 3/4 (1 failed)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in %q", want, text)
		}
	}
}

func TestWriteStructured(t *testing.T) {
	t.Parallel()
	summary := dto.RunSummary{Policy: "scan", Attempted: 1, Succeeded: 1, StopReason: "term break reached", Results: []dto.CheckinResultOutput{}}
	text := func(io.Writer) { t.Fatalf("text renderer used for structured output") }

	var out bytes.Buffer
	if err := report.Write(&out, format.JSON, summary, text); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(out.String(), `"stop_reason": "term break reached"`) {
		t.Fatalf("unexpected json %q", out.String())
	}

	out.Reset()
	if err := report.Write(&out, format.YAML, summary, text); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(out.String(), "stop_reason: term break reached") {
		t.Fatalf("unexpected yaml %q", out.String())
	}
}

func TestWeekMarksUnavailableDays(t *testing.T) {
	t.Parallel()
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	week := dto.WeekOutput{Week: 1, Days: []dto.DayScheduleOutput{
		{Date: monday, Entries: []dto.EntryOutput{{Index: 1, CourseName: "Algorithms", Window: "08:00-09:40"}}},
		{Date: monday.AddDate(0, 0, 1), Error: "schedule: busy"},
		{Date: monday.AddDate(0, 0, 2)},
	}}
	var out bytes.Buffer
	report.Week(&out, week)
	text := out.String()
	for _, want := range []string{"Week 1", "Algorithms", "08:00-09:40", "unavailable: schedule: busy", "Wed"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in %q", want, text)
		}
	}
}
