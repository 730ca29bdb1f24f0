package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"classsign/internal/modules/attendance/domain"
	"classsign/internal/modules/attendance/dto"
	attendancein "classsign/internal/modules/attendance/port/in"
	attendanceout "classsign/internal/modules/attendance/port/out"
	"classsign/internal/platform/clock"
	apperrors "classsign/internal/platform/errors"
)

// Plan configures one engine run.
type Plan struct {
	RunID string
	// Selection is applied to every non-empty date. When nil the presenter
	// is asked for each date.
	Selection *domain.Selection
	Pacer     Pacer
}

// Report is what a run produced.
type Report struct {
	RunID        string
	Policy       string
	DatesVisited int
	Results      []domain.CheckinResult
	Stop         domain.StopReason
}

func (r Report) Succeeded() int {
	n := 0
	for _, result := range r.Results {
		if result.Outcome == domain.Success {
			n++
		}
	}
	return n
}

type Engine struct {
	schedules    attendanceout.ScheduleGateway
	orchestrator *Orchestrator
	ledger       attendanceout.Ledger
	clock        clock.Clock
	log          zerolog.Logger
}

// NewEngine builds an engine. ledger may be nil.
func NewEngine(schedules attendanceout.ScheduleGateway, orchestrator *Orchestrator, ledger attendanceout.Ledger, clk clock.Clock, log zerolog.Logger) *Engine {
	return &Engine{schedules: schedules, orchestrator: orchestrator, ledger: ledger, clock: clk, log: log}
}

// Run drives policy until it stops, the presenter declines to go on, or ctx
// is canceled. Only an authentication failure ends a run with an error;
// every other failure is reported and the run moves on.
func (e *Engine) Run(ctx context.Context, creds attendanceout.Credentials, policy domain.Policy, plan Plan, presenter attendancein.Presenter) (Report, error) {
	report := Report{RunID: plan.RunID, Policy: policy.Name()}
	var last *domain.Visit
	for {
		if ctx.Err() != nil {
			report.Stop = domain.StopCanceled
			break
		}
		step := policy.Next(last)
		if step.Done() {
			report.Stop = step.Stop
			break
		}
		if step.Ask != domain.AskNone && !presenter.AskContinue(question(policy, step)) {
			report.Stop = domain.StopDeclined
			break
		}
		visit, err := e.visit(ctx, creds, step.Date, plan, presenter)
		report.DatesVisited++
		report.Results = append(report.Results, visit.Results...)
		if err != nil {
			return report, err
		}
		last = &visit
	}
	e.log.Info().
		Str("run", report.RunID).
		Str("policy", report.Policy).
		Int("dates", report.DatesVisited).
		Int("attempted", len(report.Results)).
		Str("stop", report.Stop.String()).
		Msg("run finished")
	if report.Stop != domain.StopCanceled {
		presenter.ReportProgress(dto.Progress{Level: dto.LevelInfo, Text: fmt.Sprintf("Finished: %s", report.Stop)})
	}
	return report, nil
}

func (e *Engine) visit(ctx context.Context, creds attendanceout.Credentials, date time.Time, plan Plan, presenter attendancein.Presenter) (domain.Visit, error) {
	visit := domain.Visit{Date: date}
	label := domain.DisplayDate(date)
	presenter.ReportProgress(dto.Progress{Level: dto.LevelInfo, Text: fmt.Sprintf("Fetching schedule for %s", label)})

	day, err := e.schedules.FetchDay(ctx, creds, date)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrAuth):
		presenter.ReportProgress(dto.Progress{Level: dto.LevelError, Text: err.Error()})
		return visit, err
	case errors.Is(err, apperrors.ErrRemote):
		presenter.ReportProgress(dto.Progress{Level: dto.LevelWarning, Text: fmt.Sprintf("No schedule for %s: %v", label, err)})
		visit.Kind = domain.VisitRejected
		return visit, nil
	default:
		event := e.log.Warn()
		if apperrors.Recoverable(err) {
			event = e.log.Debug()
		}
		event.Err(err).Str("date", domain.FormatDate(date)).Msg("schedule unavailable")
		presenter.ReportProgress(dto.Progress{Level: dto.LevelWarning, Text: fmt.Sprintf("Skipping %s: %v", label, err)})
		visit.Kind = domain.VisitUnavailable
		return visit, nil
	}

	if day.Empty() {
		presenter.ReportProgress(dto.Progress{Level: dto.LevelInfo, Text: fmt.Sprintf("No courses on %s", label)})
		visit.Kind = domain.VisitEmpty
		return visit, nil
	}
	visit.Kind = domain.VisitCourses

	var selection domain.Selection
	if plan.Selection != nil {
		selection = *plan.Selection
	} else {
		selection = SelectionFromOutput(presenter.AskSelection(ScheduleOutput(day)))
	}

	results, err := e.orchestrator.Execute(ctx, creds, day, selection, plan.Pacer, func(result domain.CheckinResult) {
		presenter.ReportResult(ResultOutput(result))
		e.record(ctx, plan.RunID, result)
	})
	visit.Results = results
	switch {
	case errors.Is(err, apperrors.ErrSelection):
		presenter.ReportProgress(dto.Progress{Level: dto.LevelError, Text: err.Error()})
	case err != nil:
		// Only a canceled pacer wait lands here; the loop sees ctx next.
		e.log.Debug().Err(err).Msg("check-in interrupted")
	case len(results) > 0:
		succeeded := 0
		for _, result := range results {
			if result.Outcome == domain.Success {
				succeeded++
			}
		}
		presenter.ReportProgress(dto.Progress{Level: dto.LevelInfo, Text: fmt.Sprintf("%s: %d/%d checked in", label, succeeded, len(results))})
	}
	return visit, nil
}

func (e *Engine) record(ctx context.Context, runID string, result domain.CheckinResult) {
	if e.ledger == nil {
		return
	}
	if err := e.ledger.Record(ctx, runID, e.clock.Now(), result); err != nil {
		e.log.Warn().Err(err).Str("session", result.SessionID).Msg("ledger write failed")
	}
}

func question(policy domain.Policy, step domain.Step) dto.ContinueQuestion {
	q := dto.ContinueQuestion{Reason: dto.ContinueNextDate, NextDate: step.Date}
	if step.Ask == domain.AskEmptyStreak {
		q.Reason = dto.ContinueEmptyStreak
		if scan, ok := policy.(interface{ State() domain.ScanState }); ok {
			q.EmptyDays = scan.State().ConsecutiveEmptyDays
		}
	}
	return q
}
