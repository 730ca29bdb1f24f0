// Package pacing spaces out calls to the remote service.
package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"classsign/internal/platform/clock"
)

// Pacer admits one call per interval. The first call is admitted at once.
type Pacer struct {
	limiter *rate.Limiter
	clock   clock.Clock
	sleeper clock.Sleeper
}

// New returns a Pacer for interval. A zero interval never waits.
func New(interval time.Duration, clk clock.Clock, sleeper clock.Sleeper) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1), clock: clk, sleeper: sleeper}
}

// Wait blocks until the next call may proceed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	now := p.clock.Now()
	r := p.limiter.ReserveN(now, 1)
	if !r.OK() {
		return fmt.Errorf("pacer: reservation refused")
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	if err := p.sleeper.Sleep(ctx, delay); err != nil {
		r.CancelAt(p.clock.Now())
		return err
	}
	return nil
}

// Interval reports the spacing this pacer enforces.
func (p *Pacer) Interval() time.Duration {
	if p == nil || p.limiter.Limit() == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(p.limiter.Limit()))
}
