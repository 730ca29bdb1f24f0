package domain

import (
	"fmt"

	apperrors "classsign/internal/platform/errors"
)

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectAll
	SelectOne
)

// Selection tells the orchestrator which entries of a day to check in.
// Index is 1-based and only meaningful for SelectOne.
type Selection struct {
	Kind  SelectionKind
	Index int
}

func SelectAllEntries() Selection { return Selection{Kind: SelectAll} }

func SelectNoEntries() Selection { return Selection{Kind: SelectNone} }

func SelectEntry(index int) Selection { return Selection{Kind: SelectOne, Index: index} }

// Pick returns the selected entries in schedule order.
func (s Selection) Pick(day DaySchedule) ([]ScheduleEntry, error) {
	switch s.Kind {
	case SelectAll:
		return append([]ScheduleEntry(nil), day.Entries...), nil
	case SelectOne:
		if s.Index < 1 || s.Index > day.Len() {
			return nil, fmt.Errorf("course %d is not in 1-%d: %w", s.Index, day.Len(), apperrors.ErrSelection)
		}
		return []ScheduleEntry{day.Entries[s.Index-1]}, nil
	default:
		return nil, nil
	}
}
