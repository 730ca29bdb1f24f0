package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	attendanceadapter "classsign/internal/modules/attendance/adapter/out"
	"classsign/internal/modules/attendance/domain"
)

func TestSQLiteLedgerRecordsNewestFirst(t *testing.T) {
	t.Parallel()
	ledger, err := attendanceadapter.NewSQLiteLedger(filepath.Join(t.TempDir(), "state", "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = ledger.Close() })

	ctx := context.Background()
	on := time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC)
	at := time.Date(2025, 9, 24, 8, 1, 0, 0, time.UTC)
	results := []domain.CheckinResult{
		{SessionID: "s-1", CourseName: "Algorithms", Date: on, Window: "08:00-09:40", Outcome: domain.Success, Detail: "ok"},
		{SessionID: "s-2", CourseName: "Networks", Date: on, Window: "10:00-11:40", Outcome: domain.Failure},
	}
	for i, result := range results {
		if err := ledger.Record(ctx, "run-1", at.Add(time.Duration(i)*time.Second), result); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	rows, err := ledger.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
	if rows[0].Result.SessionID != "s-2" || rows[0].Result.Outcome != domain.Failure {
		t.Fatalf("unexpected newest row %+v", rows[0])
	}
	if rows[1].RunID != "run-1" || !rows[1].RecordedAt.Equal(at) || !rows[1].Result.Date.Equal(on) || rows[1].Result.Detail != "ok" {
		t.Fatalf("unexpected oldest row %+v", rows[1])
	}

	limited, err := ledger.Recent(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].Result.SessionID != "s-2" {
		t.Fatalf("limit not applied: %v %+v", err, limited)
	}
}
