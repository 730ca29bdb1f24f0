package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"classsign/internal/modules/attendance/domain"
	"classsign/internal/modules/attendance/dto"
	attendancein "classsign/internal/modules/attendance/port/in"
	attendanceout "classsign/internal/modules/attendance/port/out"
	"classsign/internal/modules/attendance/service"
	sessionin "classsign/internal/modules/session/port/in"
	"classsign/internal/platform/clock"
	apperrors "classsign/internal/platform/errors"
	"classsign/internal/platform/id"
)

// Deps wires the interactor. Ledger may be nil.
type Deps struct {
	Session      sessionin.Usecase
	Schedules    attendanceout.ScheduleGateway
	Checkins     attendanceout.CheckinGateway
	Ledger       attendanceout.Ledger
	CheckinPacer service.Pacer
	BatchPacer   service.Pacer
	Semester     domain.Semester
	Clock        clock.Clock
	IDGen        id.Generator
	Logger       zerolog.Logger
}

type Interactor struct {
	session   sessionin.Usecase
	schedules attendanceout.ScheduleGateway
	ledger    attendanceout.Ledger
	engine    *service.Engine
	checkin   service.Pacer
	batch     service.Pacer
	semester  domain.Semester
	clock     clock.Clock
	idGen     id.Generator
	log       zerolog.Logger
}

func NewInteractor(deps Deps) attendancein.Usecase {
	engine := service.NewEngine(deps.Schedules, service.NewOrchestrator(deps.Checkins), deps.Ledger, deps.Clock, deps.Logger)
	return &Interactor{
		session:   deps.Session,
		schedules: deps.Schedules,
		ledger:    deps.Ledger,
		engine:    engine,
		checkin:   deps.CheckinPacer,
		batch:     deps.BatchPacer,
		semester:  deps.Semester,
		clock:     deps.Clock,
		idGen:     deps.IDGen,
		log:       deps.Logger,
	}
}

func (i *Interactor) Schedule(ctx context.Context, date string) (dto.DayScheduleOutput, error) {
	creds, err := i.credentials(ctx)
	if err != nil {
		return dto.DayScheduleOutput{}, err
	}
	on, err := i.dateOrToday(date)
	if err != nil {
		return dto.DayScheduleOutput{}, err
	}
	day, err := i.schedules.FetchDay(ctx, creds, on)
	if err != nil {
		return dto.DayScheduleOutput{}, err
	}
	return service.ScheduleOutput(day), nil
}

func (i *Interactor) RunDay(ctx context.Context, input dto.DayInput, presenter attendancein.Presenter) (dto.RunSummary, error) {
	on, err := i.dateOrToday(input.Date)
	if err != nil {
		return dto.RunSummary{}, err
	}
	return i.run(ctx, domain.NewSingleDay(on), input.Selection, i.checkin, presenter)
}

func (i *Interactor) RunRange(ctx context.Context, input dto.RangeInput, presenter attendancein.Presenter) (dto.RunSummary, error) {
	from, err := domain.ParseDate(input.From)
	if err != nil {
		return dto.RunSummary{}, err
	}
	to, err := domain.ParseDate(input.To)
	if err != nil {
		return dto.RunSummary{}, err
	}
	return i.run(ctx, domain.NewRange(from, to), input.Selection, i.checkin, presenter)
}

// RunScan checks in every course from the start date onward until a term
// break or the scan cap.
func (i *Interactor) RunScan(ctx context.Context, input dto.ScanInput, presenter attendancein.Presenter) (dto.RunSummary, error) {
	from, err := i.dateOrToday(input.From)
	if err != nil {
		return dto.RunSummary{}, err
	}
	all := dto.Selection{Kind: dto.SelectAll}
	return i.run(ctx, domain.NewContinuousScan(from), &all, i.checkin, presenter)
}

// RunWeek checks in every course of a teaching week without asking, using
// the shorter batch spacing.
func (i *Interactor) RunWeek(ctx context.Context, input dto.WeekInput, presenter attendancein.Presenter) (dto.RunSummary, error) {
	dates, week, err := i.weekDates(input.Week)
	if err != nil {
		return dto.RunSummary{}, err
	}
	all := dto.Selection{Kind: dto.SelectAll}
	summary, err := i.run(ctx, domain.NewBatchRange(dates[0], dates[len(dates)-1]), &all, i.batch, presenter)
	if err != nil {
		return summary, err
	}
	presenter.ReportProgress(dto.Progress{
		Level: dto.LevelInfo,
		Text:  fmt.Sprintf("Week %d: %d/%d checked in", week, summary.Succeeded, summary.Attempted),
	})
	return summary, nil
}

// Week loads every day of a teaching week. A day that fails to load carries
// its error text instead of failing the whole week.
func (i *Interactor) Week(ctx context.Context, input dto.WeekInput) (dto.WeekOutput, error) {
	creds, err := i.credentials(ctx)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	dates, week, err := i.weekDates(input.Week)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	out := dto.WeekOutput{Week: week, Days: make([]dto.DayScheduleOutput, 0, len(dates))}
	for _, on := range dates {
		day, err := i.schedules.FetchDay(ctx, creds, on)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			i.log.Debug().Err(err).Str("date", domain.FormatDate(on)).Msg("week day unavailable")
			out.Days = append(out.Days, dto.DayScheduleOutput{Date: on, Entries: []dto.EntryOutput{}, Error: err.Error()})
			continue
		}
		out.Days = append(out.Days, service.ScheduleOutput(day))
	}
	return out, nil
}

func (i *Interactor) CurrentWeek(_ context.Context) int {
	return i.semester.CurrentWeek(i.clock.Now())
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	if i.ledger == nil {
		return nil, fmt.Errorf("check-in ledger is not enabled: %w", apperrors.ErrNotFound)
	}
	rows, err := i.ledger.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.HistoryEntry{
			RunID:               row.RunID,
			RecordedAt:          row.RecordedAt,
			CheckinResultOutput: service.ResultOutput(row.Result),
		})
	}
	return out, nil
}

func (i *Interactor) run(ctx context.Context, policy domain.Policy, selection *dto.Selection, pacer service.Pacer, presenter attendancein.Presenter) (dto.RunSummary, error) {
	creds, err := i.credentials(ctx)
	if err != nil {
		return dto.RunSummary{}, err
	}
	plan := service.Plan{RunID: i.idGen.New(), Pacer: pacer}
	if selection != nil {
		picked := service.SelectionFromOutput(*selection)
		plan.Selection = &picked
	}
	i.log.Debug().Str("run", plan.RunID).Str("policy", policy.Name()).Msg("run started")
	report, err := i.engine.Run(ctx, creds, policy, plan, presenter)
	return toSummary(report), err
}

func (i *Interactor) credentials(ctx context.Context) (attendanceout.Credentials, error) {
	current, err := i.session.Current(ctx)
	if err != nil {
		return attendanceout.Credentials{}, err
	}
	return attendanceout.Credentials{UserID: current.UserID, Token: current.Token}, nil
}

func (i *Interactor) dateOrToday(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return domain.DateOf(i.clock.Now()), nil
	}
	return domain.ParseDate(value)
}

func (i *Interactor) weekDates(week int) ([]time.Time, int, error) {
	if week == 0 {
		week = i.semester.CurrentWeek(i.clock.Now())
	}
	dates, err := i.semester.WeekDates(week)
	if err != nil {
		return nil, 0, err
	}
	return dates, week, nil
}

func toSummary(report service.Report) dto.RunSummary {
	summary := dto.RunSummary{
		RunID:        report.RunID,
		Policy:       report.Policy,
		DatesVisited: report.DatesVisited,
		Attempted:    len(report.Results),
		Succeeded:    report.Succeeded(),
		StopReason:   report.Stop.String(),
		Results:      make([]dto.CheckinResultOutput, 0, len(report.Results)),
	}
	summary.Failed = summary.Attempted - summary.Succeeded
	for _, result := range report.Results {
		summary.Results = append(summary.Results, service.ResultOutput(result))
	}
	return summary
}
