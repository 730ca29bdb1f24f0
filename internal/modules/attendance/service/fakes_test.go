package service_test

import (
	"context"
	"sync"
	"time"

	"classsign/internal/modules/attendance/domain"
	"classsign/internal/modules/attendance/dto"
	attendanceout "classsign/internal/modules/attendance/port/out"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(id, name string, on time.Time, startH, startM, endH, endM int) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		SessionID:  id,
		CourseName: name,
		Start:      on.Add(time.Duration(startH)*time.Hour + time.Duration(startM)*time.Minute),
		End:        on.Add(time.Duration(endH)*time.Hour + time.Duration(endM)*time.Minute),
	}
}

// fakeSchedules answers from a per-date table; unknown dates are empty.
type fakeSchedules struct {
	days     map[string][]domain.ScheduleEntry
	errs     map[string]error
	fallback error
	fetched  []string
}

func (f *fakeSchedules) FetchDay(_ context.Context, _ attendanceout.Credentials, on time.Time) (domain.DaySchedule, error) {
	key := domain.FormatDate(on)
	f.fetched = append(f.fetched, key)
	if err, ok := f.errs[key]; ok {
		return domain.DaySchedule{}, err
	}
	if entries, ok := f.days[key]; ok {
		return domain.NewDaySchedule(on, entries)
	}
	if f.fallback != nil {
		return domain.DaySchedule{}, f.fallback
	}
	return domain.NewDaySchedule(on, nil)
}

type fakeCheckins struct {
	failures map[string]string
	calls    []string
}

func (f *fakeCheckins) Checkin(_ context.Context, creds attendanceout.Credentials, sessionID string) (domain.Outcome, string) {
	f.calls = append(f.calls, creds.UserID+"/"+sessionID)
	if detail, ok := f.failures[sessionID]; ok {
		return domain.Failure, detail
	}
	return domain.Success, "ok"
}

type fakePresenter struct {
	answers   []bool
	selection dto.Selection
	progress  []dto.Progress
	results   []dto.CheckinResultOutput
	questions []dto.ContinueQuestion
	shown     []dto.DayScheduleOutput
}

func (f *fakePresenter) ReportProgress(p dto.Progress) { f.progress = append(f.progress, p) }

func (f *fakePresenter) ReportResult(r dto.CheckinResultOutput) { f.results = append(f.results, r) }

// AskContinue pops the next scripted answer and says yes once they run out.
func (f *fakePresenter) AskContinue(q dto.ContinueQuestion) bool {
	f.questions = append(f.questions, q)
	if len(f.answers) == 0 {
		return true
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer
}

func (f *fakePresenter) AskSelection(day dto.DayScheduleOutput) dto.Selection {
	f.shown = append(f.shown, day)
	return f.selection
}

type fakeLedger struct {
	mu   sync.Mutex
	rows []attendanceout.LedgerRow
}

func (f *fakeLedger) Record(_ context.Context, runID string, at time.Time, result domain.CheckinResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, attendanceout.LedgerRow{RunID: runID, RecordedAt: at, Result: result})
	return nil
}

func (f *fakeLedger) Recent(_ context.Context, limit int) ([]attendanceout.LedgerRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := append([]attendanceout.LedgerRow(nil), f.rows...)
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return rows, nil
}
