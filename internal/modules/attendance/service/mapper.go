package service

import (
	"classsign/internal/modules/attendance/domain"
	"classsign/internal/modules/attendance/dto"
)

func ScheduleOutput(day domain.DaySchedule) dto.DayScheduleOutput {
	out := dto.DayScheduleOutput{Date: day.Date, Entries: make([]dto.EntryOutput, 0, day.Len())}
	for i, entry := range day.Entries {
		out.Entries = append(out.Entries, dto.EntryOutput{
			Index:      i + 1,
			SessionID:  entry.SessionID,
			CourseName: entry.CourseName,
			Date:       domain.DisplayDate(day.Date),
			Window:     entry.Window(),
			Location:   entry.Location,
			Instructor: entry.Instructor,
		})
	}
	return out
}

func ResultOutput(result domain.CheckinResult) dto.CheckinResultOutput {
	return dto.CheckinResultOutput{
		SessionID:  result.SessionID,
		CourseName: result.CourseName,
		Date:       domain.DisplayDate(result.Date),
		Window:     result.Window,
		Success:    result.Outcome == domain.Success,
		Detail:     result.Detail,
	}
}

func SelectionFromOutput(sel dto.Selection) domain.Selection {
	switch sel.Kind {
	case dto.SelectAll:
		return domain.SelectAllEntries()
	case dto.SelectOne:
		return domain.SelectEntry(sel.Index)
	default:
		return domain.SelectNoEntries()
	}
}
