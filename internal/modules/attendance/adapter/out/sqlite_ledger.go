package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"classsign/internal/modules/attendance/domain"
	attendanceout "classsign/internal/modules/attendance/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLiteLedger appends check-in outcomes to a local database. It never
// stores tokens or full schedules.
type SQLiteLedger struct {
	db *sql.DB
}

var _ attendanceout.Ledger = (*SQLiteLedger)(nil)

func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	ledger := &SQLiteLedger{db: db}
	if err := ledger.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ledger, nil
}

func (l *SQLiteLedger) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS checkins (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL,
  recorded_at TEXT NOT NULL,
  session_id TEXT NOT NULL,
  course_name TEXT NOT NULL,
  class_date TEXT NOT NULL,
  time_window TEXT NOT NULL,
  outcome TEXT NOT NULL,
  detail TEXT
);
`
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create checkins table: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_checkins_session ON checkins(session_id)`); err != nil {
		return fmt.Errorf("create checkins index: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) Record(ctx context.Context, runID string, at time.Time, result domain.CheckinResult) error {
	const stmt = `
INSERT INTO checkins (run_id, recorded_at, session_id, course_name, class_date, time_window, outcome, detail)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := l.db.ExecContext(ctx, stmt,
		runID,
		at.UTC().Format(timeLayout),
		result.SessionID,
		result.CourseName,
		domain.FormatDate(result.Date),
		result.Window,
		result.Outcome.String(),
		result.Detail,
	)
	if err != nil {
		return fmt.Errorf("record check-in: %w", err)
	}
	return nil
}

// Recent returns up to limit rows, newest first. A non-positive limit
// returns everything.
func (l *SQLiteLedger) Recent(ctx context.Context, limit int) ([]attendanceout.LedgerRow, error) {
	if limit <= 0 {
		limit = -1
	}
	const query = `
SELECT run_id, recorded_at, session_id, course_name, class_date, time_window, outcome, detail
FROM checkins
ORDER BY seq DESC
LIMIT ?;
`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	out := []attendanceout.LedgerRow{}
	for rows.Next() {
		var (
			row              attendanceout.LedgerRow
			recordedAt, date string
			outcome          string
			detail           sql.NullString
		)
		if err := rows.Scan(&row.RunID, &recordedAt, &row.Result.SessionID, &row.Result.CourseName, &date, &row.Result.Window, &outcome, &detail); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		if row.RecordedAt, err = time.Parse(timeLayout, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		if row.Result.Date, err = domain.ParseDate(date); err != nil {
			return nil, err
		}
		if outcome == domain.Success.String() {
			row.Result.Outcome = domain.Success
		}
		row.Result.Detail = detail.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check-ins: %w", err)
	}
	return out, nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
