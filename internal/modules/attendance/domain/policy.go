package domain

import "time"

const (
	// TermBreakDays consecutive days without courses end a continuous scan.
	TermBreakDays = 7
	// MaxScanDays caps how many dates a continuous scan visits.
	MaxScanDays = 120
	// EmptyPauseEvery asks for confirmation after this many empty days in a row.
	EmptyPauseEvery = 5
)

// VisitKind classifies what happened on one visited date.
type VisitKind int

const (
	// VisitUnavailable: the schedule could not be fetched (transport or payload failure).
	VisitUnavailable VisitKind = iota
	// VisitRejected: the service answered with a non-zero status and a message.
	VisitRejected
	VisitEmpty
	VisitCourses
)

// Visit is the outcome of one date, fed back into the policy.
type Visit struct {
	Date    time.Time
	Kind    VisitKind
	Results []CheckinResult
}

type AskKind int

const (
	AskNone AskKind = iota
	AskNextDate
	AskEmptyStreak
)

type StopReason int

const (
	StopNone StopReason = iota
	StopExhausted
	StopTermBreak
	StopLimit
	StopDeclined
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopExhausted:
		return "all dates visited"
	case StopTermBreak:
		return "term break reached"
	case StopLimit:
		return "day limit reached"
	case StopDeclined:
		return "stopped by user"
	case StopCanceled:
		return "canceled"
	default:
		return ""
	}
}

// Step is a policy decision: visit Date, optionally after asking whether to
// go on, or stop.
type Step struct {
	Date time.Time
	Ask  AskKind
	Stop StopReason
}

func (s Step) Done() bool { return s.Stop != StopNone }

func stop(reason StopReason) Step { return Step{Stop: reason} }

// Policy decides the next date to visit given the outcome of the previous
// visit. The first call receives nil.
type Policy interface {
	Name() string
	Next(last *Visit) Step
}

// SingleDay visits exactly one date.
type SingleDay struct {
	date    time.Time
	started bool
}

func NewSingleDay(date time.Time) *SingleDay {
	return &SingleDay{date: DateOf(date)}
}

func (p *SingleDay) Name() string { return "day" }

func (p *SingleDay) Next(_ *Visit) Step {
	if p.started {
		return stop(StopExhausted)
	}
	p.started = true
	return Step{Date: p.date}
}

// Range visits start..end inclusive, one day at a time. When confirm is set
// the user is asked before every date after the first.
type Range struct {
	start   time.Time
	end     time.Time
	cursor  time.Time
	confirm bool
	started bool
}

func NewRange(start, end time.Time) *Range {
	return &Range{start: DateOf(start), end: DateOf(end), confirm: true}
}

// NewBatchRange walks the same dates as NewRange without asking.
func NewBatchRange(start, end time.Time) *Range {
	r := NewRange(start, end)
	r.confirm = false
	return r
}

func (p *Range) Name() string {
	if p.confirm {
		return "range"
	}
	return "batch"
}

func (p *Range) Next(_ *Visit) Step {
	if !p.started {
		p.started = true
		if p.start.After(p.end) {
			return stop(StopExhausted)
		}
		p.cursor = p.start
		return Step{Date: p.cursor}
	}
	if !p.cursor.Before(p.end) {
		return stop(StopExhausted)
	}
	p.cursor = p.cursor.AddDate(0, 0, 1)
	ask := AskNone
	if p.confirm {
		ask = AskNextDate
	}
	return Step{Date: p.cursor, Ask: ask}
}

// ScanState is the continuous scan's progress.
type ScanState struct {
	CurrentDate          time.Time
	ConsecutiveEmptyDays int
	Visited              int
}

// ContinuousScan walks forward from start until TermBreakDays empty days in
// a row, MaxScanDays visits, or the user stops it. Unavailable dates are
// skipped without touching the empty-day streak; rejected dates count as
// empty but never trigger the pause.
type ContinuousScan struct {
	state   ScanState
	started bool
}

func NewContinuousScan(start time.Time) *ContinuousScan {
	return &ContinuousScan{state: ScanState{CurrentDate: DateOf(start)}}
}

func (p *ContinuousScan) Name() string { return "scan" }

func (p *ContinuousScan) State() ScanState { return p.state }

func (p *ContinuousScan) Next(last *Visit) Step {
	if !p.started {
		p.started = true
		return Step{Date: p.state.CurrentDate}
	}

	p.state.Visited++
	ask := AskNone
	if last != nil {
		switch last.Kind {
		case VisitEmpty, VisitRejected:
			p.state.ConsecutiveEmptyDays++
			if p.state.ConsecutiveEmptyDays >= TermBreakDays {
				return stop(StopTermBreak)
			}
			if last.Kind == VisitEmpty && p.state.ConsecutiveEmptyDays%EmptyPauseEvery == 0 {
				ask = AskEmptyStreak
			}
		case VisitCourses:
			p.state.ConsecutiveEmptyDays = 0
			ask = AskNextDate
		}
	}
	if p.state.Visited >= MaxScanDays {
		return stop(StopLimit)
	}
	p.state.CurrentDate = p.state.CurrentDate.AddDate(0, 0, 1)
	return Step{Date: p.state.CurrentDate, Ask: ask}
}
