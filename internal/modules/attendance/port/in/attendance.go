package in

import (
	"context"

	"classsign/internal/modules/attendance/dto"
)

// Presenter is supplied by the front end driving a run. The engine reports
// through it and asks it for decisions; it never writes to the console
// itself.
type Presenter interface {
	ReportProgress(p dto.Progress)
	ReportResult(r dto.CheckinResultOutput)
	AskContinue(q dto.ContinueQuestion) bool
	AskSelection(day dto.DayScheduleOutput) dto.Selection
}

type Usecase interface {
	Schedule(ctx context.Context, date string) (dto.DayScheduleOutput, error)
	RunDay(ctx context.Context, input dto.DayInput, presenter Presenter) (dto.RunSummary, error)
	RunRange(ctx context.Context, input dto.RangeInput, presenter Presenter) (dto.RunSummary, error)
	RunScan(ctx context.Context, input dto.ScanInput, presenter Presenter) (dto.RunSummary, error)
	RunWeek(ctx context.Context, input dto.WeekInput, presenter Presenter) (dto.RunSummary, error)
	Week(ctx context.Context, input dto.WeekInput) (dto.WeekOutput, error)
	CurrentWeek(ctx context.Context) int
	History(ctx context.Context, limit int) ([]dto.HistoryEntry, error)
}
