package domain_test

import (
	"errors"
	"testing"
	"time"

	"classsign/internal/modules/attendance/domain"
	apperrors "classsign/internal/platform/errors"
)

func TestSemesterWeekDates(t *testing.T) {
	t.Parallel()
	s := domain.NewSemester(time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC), 18)
	dates, err := s.WeekDates(3)
	if err != nil {
		t.Fatalf("week 3: %v", err)
	}
	if len(dates) != 7 || domain.FormatDate(dates[0]) != "20240916" || domain.FormatDate(dates[6]) != "20240922" {
		t.Fatalf("unexpected week %v", dates)
	}
	if dates[0].Weekday() != time.Monday {
		t.Fatalf("week must start on Monday, got %s", dates[0].Weekday())
	}
	for _, w := range []int{0, 19} {
		if _, err := s.WeekDates(w); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("week %d: expected invalid input, got %v", w, err)
		}
	}
}

func TestSemesterCurrentWeekClamps(t *testing.T) {
	t.Parallel()
	s := domain.NewSemester(time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC), 18)
	cases := []struct {
		today time.Time
		want  int
	}{
		{today: time.Date(2024, 8, 20, 9, 0, 0, 0, time.UTC), want: 1},
		{today: time.Date(2024, 9, 2, 23, 0, 0, 0, time.UTC), want: 1},
		{today: time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC), want: 1},
		{today: time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC), want: 2},
		{today: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), want: 18},
	}
	for _, tc := range cases {
		if got := s.CurrentWeek(tc.today); got != tc.want {
			t.Fatalf("CurrentWeek(%s) = %d, want %d", tc.today.Format(time.DateOnly), got, tc.want)
		}
	}
}
