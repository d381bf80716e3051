package app

import (
	"context"
	"sync/atomic"
	"time"
)

// Pacer spaces tick starts by a fixed period. After each tick's work it
// sleeps the remainder of the period; when the work overran, the next tick
// starts immediately and subsequent deadlines are rebased on the late
// start. Missed ticks are never queued and never caught up.
type Pacer struct {
	period   time.Duration
	next     time.Time
	nowFn    func() time.Time
	overruns atomic.Uint64
}

// NewPacer creates a pacer with the given period.
func NewPacer(period time.Duration) *Pacer {
	return &Pacer{period: period, nowFn: time.Now}
}

// Begin marks the start of a tick and returns its start time.
func (p *Pacer) Begin() time.Time {
	start := p.nowFn()
	if p.next.IsZero() {
		p.next = start
	}
	return start
}

// Wait sleeps until the next tick deadline, or returns immediately on
// overrun. It returns the context error when cancelled mid-sleep.
func (p *Pacer) Wait(ctx context.Context) error {
	now := p.nowFn()
	deadline := p.next.Add(p.period)

	if !deadline.After(now) {
		// Overrun: rebase on now so one slow tick does not shorten
		// every following period.
		p.overruns.Add(1)
		p.next = now
		return ctx.Err()
	}
	p.next = deadline

	t := time.NewTimer(deadline.Sub(now))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Overruns returns the number of ticks whose work exceeded the period.
// Safe to call while another goroutine is in Wait.
func (p *Pacer) Overruns() uint64 { return p.overruns.Load() }
