package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "classsign/internal/platform/errors"
)

// ScheduleEntry is one course occurrence. SessionID is the only field the
// check-in call needs.
type ScheduleEntry struct {
	SessionID  string
	CourseName string
	Start      time.Time
	End        time.Time
	Location   string
	Instructor string
}

// Window renders the entry's time range as HH:MM-HH:MM.
func (e ScheduleEntry) Window() string {
	return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
}

type DaySchedule struct {
	Date    time.Time
	Entries []ScheduleEntry
}

// NewDaySchedule validates a day's entries: every entry needs a session id
// that is unique within the day, and must not end before it starts.
func NewDaySchedule(date time.Time, entries []ScheduleEntry) (DaySchedule, error) {
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		id := strings.TrimSpace(entry.SessionID)
		if id == "" {
			return DaySchedule{}, fmt.Errorf("entry %d has no session id: %w", i+1, apperrors.ErrParse)
		}
		if _, dup := seen[id]; dup {
			return DaySchedule{}, fmt.Errorf("duplicate session id %s: %w", id, apperrors.ErrParse)
		}
		seen[id] = struct{}{}
		if entry.End.Before(entry.Start) {
			return DaySchedule{}, fmt.Errorf("entry %s ends before it starts: %w", id, apperrors.ErrParse)
		}
	}
	return DaySchedule{Date: DateOf(date), Entries: append([]ScheduleEntry(nil), entries...)}, nil
}

func (d DaySchedule) Empty() bool { return len(d.Entries) == 0 }

func (d DaySchedule) Len() int { return len(d.Entries) }
