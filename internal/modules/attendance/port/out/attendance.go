package out

import (
	"context"
	"time"

	"classsign/internal/modules/attendance/domain"
)

// Credentials is what the remote calls need from the session.
type Credentials struct {
	UserID string
	Token  string
}

type ScheduleGateway interface {
	FetchDay(ctx context.Context, creds Credentials, date time.Time) (domain.DaySchedule, error)
}

// CheckinGateway submits one check-in. Failures are outcomes, not errors.
type CheckinGateway interface {
	Checkin(ctx context.Context, creds Credentials, sessionID string) (domain.Outcome, string)
}

// Ledger records check-in outcomes. Nothing else is persisted.
type Ledger interface {
	Record(ctx context.Context, runID string, at time.Time, result domain.CheckinResult) error
	Recent(ctx context.Context, limit int) ([]LedgerRow, error)
}

type LedgerRow struct {
	RunID      string
	RecordedAt time.Time
	Result     domain.CheckinResult
}
