package out

import (
	"context"
	"fmt"
	"time"

	"classsign/internal/modules/attendance/domain"
	attendanceout "classsign/internal/modules/attendance/port/out"
	"classsign/internal/platform/iclass"
)

// IClassGateway serves both schedule and check-in ports from one client.
type IClassGateway struct {
	client *iclass.Client
}

func NewIClassGateway(client *iclass.Client) *IClassGateway {
	return &IClassGateway{client: client}
}

var (
	_ attendanceout.ScheduleGateway = (*IClassGateway)(nil)
	_ attendanceout.CheckinGateway  = (*IClassGateway)(nil)
)

func (g *IClassGateway) FetchDay(ctx context.Context, creds attendanceout.Credentials, date time.Time) (domain.DaySchedule, error) {
	courses, err := g.client.DaySchedule(ctx, creds.UserID, creds.Token, date)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	entries := make([]domain.ScheduleEntry, 0, len(courses))
	for _, course := range courses {
		entry, err := toEntry(course)
		if err != nil {
			return domain.DaySchedule{}, err
		}
		entries = append(entries, entry)
	}
	return domain.NewDaySchedule(date, entries)
}

func (g *IClassGateway) Checkin(ctx context.Context, creds attendanceout.Credentials, sessionID string) (domain.Outcome, string) {
	ok, detail := g.client.Sign(ctx, creds.UserID, sessionID)
	if ok {
		return domain.Success, detail
	}
	return domain.Failure, detail
}

func toEntry(course iclass.Course) (domain.ScheduleEntry, error) {
	start, err := domain.ParseClassTime(course.ClassBeginTime)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("course %s: %w", course.ID, err)
	}
	end, err := domain.ParseClassTime(course.ClassEndTime)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("course %s: %w", course.ID, err)
	}
	return domain.ScheduleEntry{
		SessionID:  course.ID,
		CourseName: course.CourseName,
		Start:      start,
		End:        end,
		Location:   course.ClassroomName,
		Instructor: course.TeacherName,
	}, nil
}
