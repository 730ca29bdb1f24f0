package out_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	attendanceadapter "classsign/internal/modules/attendance/adapter/out"
	"classsign/internal/modules/attendance/domain"
	attendanceout "classsign/internal/modules/attendance/port/out"
	"classsign/internal/platform/clock"
	apperrors "classsign/internal/platform/errors"
	"classsign/internal/platform/iclass"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *attendanceadapter.IClassGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := iclass.New(iclass.Options{
		AuthBaseURL:    srv.URL,
		CheckinBaseURL: srv.URL,
		Timeout:        2 * time.Second,
		Clock:          clock.NewManual(time.Date(2025, 9, 24, 8, 0, 0, 0, time.UTC)),
		Logger:         zerolog.Nop(),
	})
	return attendanceadapter.NewIClassGateway(client)
}

var creds = attendanceout.Credentials{UserID: "u-1", Token: "tok-1"}

func TestFetchDayMapsCourses(t *testing.T) {
	t.Parallel()
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("sessionId") != "tok-1" || r.URL.Query().Get("dateStr") != "20250924" {
			t.Errorf("unexpected request %s %v", r.URL.RawQuery, r.Header)
		}
		_, _ = w.Write([]byte(`{"STATUS":"0","result":[
{"id":"s-1","courseName":"Algorithms","classBeginTime":"2025-09-24 08:00:00","classEndTime":"2025-09-24 09:40:00","classroomName":"J3-101","teacherName":"Li"},
{"id":"s-2","courseName":"Networks","classBeginTime":"2025-09-24 10:00:00","classEndTime":"2025-09-24 11:40:00"}]}`))
	})

	day, err := gateway.FetchDay(context.Background(), creds, time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if day.Len() != 2 {
		t.Fatalf("expected two entries, got %+v", day.Entries)
	}
	first := day.Entries[0]
	if first.SessionID != "s-1" || first.Window() != "08:00-09:40" || first.Location != "J3-101" || first.Instructor != "Li" {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if day.Entries[1].CourseName != "Networks" || day.Entries[1].Window() != "10:00-11:40" {
		t.Fatalf("unexpected second entry %+v", day.Entries[1])
	}
}

func TestFetchDayRejectsBadTimes(t *testing.T) {
	t.Parallel()
	gateway := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"STATUS":"0","result":[{"id":"s-1","courseName":"X","classBeginTime":"soon","classEndTime":"later"}]}`))
	})
	_, err := gateway.FetchDay(context.Background(), creds, time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, apperrors.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCheckinMapsOutcome(t *testing.T) {
	t.Parallel()
	gateway := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("courseSchedId") == "dup" {
			_, _ = w.Write([]byte(`{"STATUS":"1","ERRORMSG":"already signed"}`))
			return
		}
		_, _ = w.Write([]byte(`{"STATUS":"0"}`))
	})
	if outcome, _ := gateway.Checkin(context.Background(), creds, "s-1"); outcome != domain.Success {
		t.Fatalf("expected success, got %v", outcome)
	}
	if outcome, _ := gateway.Checkin(context.Background(), creds, "dup"); outcome != domain.Failure {
		t.Fatalf("expected failure, got %v", outcome)
	}
}
