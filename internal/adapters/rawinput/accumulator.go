// Package rawinput samples hardware input between loop ticks: raw mouse
// deltas and wheel ticks into a shared accumulator, and held key/button
// state for ground-truth recording.
//
// The accumulator is the only mutable state shared between the sampling
// thread and the loop. Drain performs a lock-protected swap, so the
// exactly-once property is structural: a delta is observed by precisely one
// tick, and deltas arriving after a drain belong wholly to the next one.
package rawinput

import "sync"

// Accumulator collects mouse deltas and wheel ticks from a concurrent
// producer until the loop drains it.
type Accumulator struct {
	mu    sync.Mutex
	dx    int
	dy    int
	wheel int
}

// Add folds one observation into the accumulator. Safe for concurrent use
// with Drain.
func (a *Accumulator) Add(dx, dy, wheel int) {
	a.mu.Lock()
	a.dx += dx
	a.dy += dy
	a.wheel += wheel
	a.mu.Unlock()
}

// Drain atomically returns the accumulated sums and resets them to zero.
func (a *Accumulator) Drain() (dx, dy, wheel int) {
	a.mu.Lock()
	dx, dy, wheel = a.dx, a.dy, a.wheel
	a.dx, a.dy, a.wheel = 0, 0, 0
	a.mu.Unlock()
	return dx, dy, wheel
}
