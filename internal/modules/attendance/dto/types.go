package dto

import "time"

type EntryOutput struct {
	Index      int    `json:"index" yaml:"index"`
	SessionID  string `json:"session_id" yaml:"session_id"`
	CourseName string `json:"course_name" yaml:"course_name"`
	Date       string `json:"date" yaml:"date"`
	Window     string `json:"window" yaml:"window"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty"`
	Instructor string `json:"instructor,omitempty" yaml:"instructor,omitempty"`
}

type DayScheduleOutput struct {
	Date    time.Time     `json:"date" yaml:"date"`
	Entries []EntryOutput `json:"entries" yaml:"entries"`
	// Error is set when the day could not be loaded.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type CheckinResultOutput struct {
	SessionID  string `json:"session_id" yaml:"session_id"`
	CourseName string `json:"course_name" yaml:"course_name"`
	Date       string `json:"date" yaml:"date"`
	Window     string `json:"window" yaml:"window"`
	Success    bool   `json:"success" yaml:"success"`
	Detail     string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

type SelectionKind string

const (
	SelectAll  SelectionKind = "all"
	SelectOne  SelectionKind = "one"
	SelectNone SelectionKind = "none"
)

type Selection struct {
	Kind  SelectionKind
	Index int
}

type ContinueReason string

const (
	ContinueNextDate    ContinueReason = "next-date"
	ContinueEmptyStreak ContinueReason = "empty-streak"
)

type ContinueQuestion struct {
	Reason    ContinueReason
	NextDate  time.Time
	EmptyDays int
}

type ProgressLevel string

const (
	LevelInfo    ProgressLevel = "info"
	LevelWarning ProgressLevel = "warning"
	LevelError   ProgressLevel = "error"
)

type Progress struct {
	Level ProgressLevel
	Text  string
}

type DayInput struct {
	Date string
	// Selection, when set, is used instead of asking.
	Selection *Selection
}

type RangeInput struct {
	From string
	To   string
	// Selection, when set, applies to every date instead of asking.
	Selection *Selection
}

type ScanInput struct {
	From string
}

type WeekInput struct {
	// Week is 1-based; 0 means the current teaching week.
	Week int
}

type RunSummary struct {
	RunID        string                `json:"run_id" yaml:"run_id"`
	Policy       string                `json:"policy" yaml:"policy"`
	DatesVisited int                   `json:"dates_visited" yaml:"dates_visited"`
	Attempted    int                   `json:"attempted" yaml:"attempted"`
	Succeeded    int                   `json:"succeeded" yaml:"succeeded"`
	Failed       int                   `json:"failed" yaml:"failed"`
	StopReason   string                `json:"stop_reason" yaml:"stop_reason"`
	Results      []CheckinResultOutput `json:"results" yaml:"results"`
}

type WeekOutput struct {
	Week int                 `json:"week" yaml:"week"`
	Days []DayScheduleOutput `json:"days" yaml:"days"`
}

type HistoryEntry struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
	CheckinResultOutput `yaml:",inline"`
}
