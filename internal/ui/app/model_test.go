package app

import (
	"context"
	"strings"
	"testing"

	"classsign/internal/modules/attendance/dto"
	attendancein "classsign/internal/modules/attendance/port/in"
	sessiondto "classsign/internal/modules/session/dto"
)

type fakeAttendance struct {
	signedWeeks []int
}

func (f *fakeAttendance) Week(_ context.Context, week int) (dto.WeekOutput, error) {
	return dto.WeekOutput{Week: week}, nil
}

func (f *fakeAttendance) CurrentWeek(context.Context) int { return 4 }

func (f *fakeAttendance) Day(context.Context, string, *dto.Selection, attendancein.Presenter) (dto.RunSummary, error) {
	return dto.RunSummary{}, nil
}

func (f *fakeAttendance) SignWeek(_ context.Context, week int, p attendancein.Presenter) (dto.RunSummary, error) {
	f.signedWeeks = append(f.signedWeeks, week)
	p.ReportProgress(dto.Progress{Level: dto.LevelInfo, Text: "Fetching schedule"})
	p.ReportResult(dto.CheckinResultOutput{Date: "2024-09-09", CourseName: "Algorithms", Window: "08:00-09:40", Success: true})
	return dto.RunSummary{Attempted: 1, Succeeded: 1}, nil
}

type fakeSession struct{}

func (fakeSession) Current(context.Context) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{StudentID: "20231234"}, nil
}

func TestLoadWeekBounds(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeAttendance{}, fakeSession{}, 18)

	next, cmd := m.Update(switchWeekMsg{week: 19})
	if cmd != nil || next.(Model).status != "week must be 1-18" {
		t.Fatalf("out-of-range week accepted: %q", next.(Model).status)
	}

	next, cmd = m.Update(switchWeekMsg{week: 3})
	got := next.(Model)
	if cmd == nil || got.weekView.Week() != 3 || !got.weekView.Loading() {
		t.Fatalf("week 3 not loading: week=%d", got.weekView.Week())
	}
}

func TestPaletteWeekCommand(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeAttendance{}, fakeSession{}, 18)
	next, _ := m.executePalette("week 7")
	if got := next.(Model).weekView.Week(); got != 7 {
		t.Fatalf("week = %d, want 7", got)
	}
	next, _ = m.executePalette("launch")
	if !strings.Contains(next.(Model).status, "unknown command") {
		t.Fatalf("unexpected status %q", next.(Model).status)
	}
}

func TestSignWeekRunsOnceAndReports(t *testing.T) {
	t.Parallel()
	fake := &fakeAttendance{}
	m := NewModel(fake, fakeSession{}, 18)

	started, cmd := m.signWeek(2)
	if cmd == nil || !started.(Model).running {
		t.Fatalf("run not started")
	}
	again, again2 := started.(Model).signWeek(2)
	if again2 != nil || again.(Model).status != "a run is already in progress" {
		t.Fatalf("second run must be refused, status %q", again.(Model).status)
	}

	done, ok := cmd().(runDoneMsg)
	if !ok {
		t.Fatalf("expected runDoneMsg")
	}
	if len(fake.signedWeeks) != 1 || fake.signedWeeks[0] != 2 || len(done.lines) != 2 {
		t.Fatalf("unexpected run %v lines=%v", fake.signedWeeks, done.lines)
	}

	final, _ := started.(Model).Update(done)
	if got := final.(Model); got.running || got.status != "week 2: 1/1 checked in" {
		t.Fatalf("unexpected final state running=%v status=%q", got.running, got.status)
	}
}

func TestSignSelectedNeedsCourse(t *testing.T) {
	t.Parallel()
	m := NewModel(&fakeAttendance{}, fakeSession{}, 18)
	next, cmd := m.signSelected()
	if cmd != nil || next.(Model).status != "no course selected" {
		t.Fatalf("unexpected status %q", next.(Model).status)
	}
}
