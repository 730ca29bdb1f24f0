package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "classsign/internal/platform/errors"
)

const (
	DateLayout    = "20060102"
	displayLayout = "2006-01-02"
)

var classTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a YYYYMMDD calendar date into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYYMMDD: %w", value, apperrors.ErrInvalidInput)
	}
	return t, nil
}

// DateOf drops the time of day, keeping the wall-clock calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func DisplayDate(t time.Time) string {
	return t.Format(displayLayout)
}

// ParseClassTime parses the service's class begin/end timestamps. The wall
// clock is kept as-is in UTC; no zone conversion is applied.
func ParseClassTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range classTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("class time %q: %w", value, apperrors.ErrParse)
}
