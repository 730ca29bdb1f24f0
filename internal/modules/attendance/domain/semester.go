package domain

import (
	"fmt"
	"time"

	apperrors "classsign/internal/platform/errors"
)

// Semester maps teaching weeks to calendar dates. Start is the Monday of week 1.
type Semester struct {
	Start time.Time
	Weeks int
}

func NewSemester(start time.Time, weeks int) Semester {
	return Semester{Start: DateOf(start), Weeks: weeks}
}

// WeekDates returns Monday..Sunday of the given 1-based week.
func (s Semester) WeekDates(week int) ([]time.Time, error) {
	if week < 1 || week > s.Weeks {
		return nil, fmt.Errorf("week %d is not in 1-%d: %w", week, s.Weeks, apperrors.ErrInvalidInput)
	}
	monday := s.Start.AddDate(0, 0, 7*(week-1))
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates, nil
}

// CurrentWeek returns the week containing today, clamped to the semester.
func (s Semester) CurrentWeek(today time.Time) int {
	days := int(DateOf(today).Sub(s.Start).Hours() / 24)
	if days < 0 {
		return 1
	}
	week := days/7 + 1
	if week > s.Weeks {
		return s.Weeks
	}
	return week
}
