package service

import (
	"context"

	"classsign/internal/modules/attendance/domain"
	attendanceout "classsign/internal/modules/attendance/port/out"
)

// Pacer spaces consecutive remote calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

type Orchestrator struct {
	gateway attendanceout.CheckinGateway
}

func NewOrchestrator(gateway attendanceout.CheckinGateway) *Orchestrator {
	return &Orchestrator{gateway: gateway}
}

// Execute checks in the selected entries of day one after another, waiting
// on pacer before each call. A failed check-in is recorded and the next
// entry is still attempted. An invalid selection returns before any remote
// call is made.
func (o *Orchestrator) Execute(
	ctx context.Context,
	creds attendanceout.Credentials,
	day domain.DaySchedule,
	selection domain.Selection,
	pacer Pacer,
	onResult func(domain.CheckinResult),
) ([]domain.CheckinResult, error) {
	entries, err := selection.Pick(day)
	if err != nil {
		return nil, err
	}
	results := make([]domain.CheckinResult, 0, len(entries))
	for _, entry := range entries {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return results, err
			}
		}
		outcome, detail := o.gateway.Checkin(ctx, creds, entry.SessionID)
		result := domain.NewCheckinResult(day.Date, entry, outcome, detail)
		results = append(results, result)
		if onResult != nil {
			onResult(result)
		}
	}
	return results, nil
}
