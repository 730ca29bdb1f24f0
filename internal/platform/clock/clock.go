package clock

import (
	"context"
	"time"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for a duration or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Manual is a clock that only moves when slept on or advanced.
type Manual struct {
	now   time.Time
	slept []time.Duration
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		m.now = m.now.Add(d)
	}
	m.slept = append(m.slept, d)
	return nil
}

func (m *Manual) Advance(d time.Duration) { m.now = m.now.Add(d) }

// Slept returns every duration passed to Sleep, in call order.
func (m *Manual) Slept() []time.Duration {
	return append([]time.Duration(nil), m.slept...)
}
