package in

import (
	"context"

	"classsign/internal/modules/attendance/dto"
	attendancein "classsign/internal/modules/attendance/port/in"
)

type CLIHandler struct {
	usecase attendancein.Usecase
}

func NewCLIHandler(usecase attendancein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Schedule(ctx context.Context, date string) (dto.DayScheduleOutput, error) {
	return h.usecase.Schedule(ctx, date)
}

func (h CLIHandler) Day(ctx context.Context, date string, selection *dto.Selection, presenter attendancein.Presenter) (dto.RunSummary, error) {
	return h.usecase.RunDay(ctx, dto.DayInput{Date: date, Selection: selection}, presenter)
}

func (h CLIHandler) Range(ctx context.Context, from, to string, selection *dto.Selection, presenter attendancein.Presenter) (dto.RunSummary, error) {
	return h.usecase.RunRange(ctx, dto.RangeInput{From: from, To: to, Selection: selection}, presenter)
}

func (h CLIHandler) Scan(ctx context.Context, from string, presenter attendancein.Presenter) (dto.RunSummary, error) {
	return h.usecase.RunScan(ctx, dto.ScanInput{From: from}, presenter)
}

func (h CLIHandler) SignWeek(ctx context.Context, week int, presenter attendancein.Presenter) (dto.RunSummary, error) {
	return h.usecase.RunWeek(ctx, dto.WeekInput{Week: week}, presenter)
}

func (h CLIHandler) Week(ctx context.Context, week int) (dto.WeekOutput, error) {
	return h.usecase.Week(ctx, dto.WeekInput{Week: week})
}

func (h CLIHandler) CurrentWeek(ctx context.Context) int {
	return h.usecase.CurrentWeek(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	return h.usecase.History(ctx, limit)
}
