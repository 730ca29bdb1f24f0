package domain

import "time"

type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// CheckinResult is the record of one check-in attempt.
type CheckinResult struct {
	SessionID  string
	CourseName string
	Date       time.Time
	Window     string
	Outcome    Outcome
	Detail     string
}

func NewCheckinResult(date time.Time, entry ScheduleEntry, outcome Outcome, detail string) CheckinResult {
	return CheckinResult{
		SessionID:  entry.SessionID,
		CourseName: entry.CourseName,
		Date:       DateOf(date),
		Window:     entry.Window(),
		Outcome:    outcome,
		Detail:     detail,
	}
}
