package rawinput

import (
	"sync"
	"testing"
)

func TestAccumulatorDrainResets(t *testing.T) {
	var a Accumulator

	a.Add(3, -2, 120)
	a.Add(1, 1, 0)

	dx, dy, wheel := a.Drain()
	if dx != 4 || dy != -1 || wheel != 120 {
		t.Errorf("Drain() = (%d, %d, %d), want (4, -1, 120)", dx, dy, wheel)
	}

	dx, dy, wheel = a.Drain()
	if dx != 0 || dy != 0 || wheel != 0 {
		t.Errorf("second Drain() = (%d, %d, %d), want zeros", dx, dy, wheel)
	}
}

func TestAccumulatorDeltasAfterDrainBelongToNextTick(t *testing.T) {
	var a Accumulator

	a.Add(5, 0, 0)
	a.Drain()
	a.Add(7, 0, 0)

	dx, _, _ := a.Drain()
	if dx != 7 {
		t.Errorf("next Drain() dx = %d, want 7", dx)
	}
}

// TestAccumulatorExactlyOnce checks delta conservation under a concurrent
// producer: everything produced is observed by exactly one drain, nothing
// is lost or double-counted.
func TestAccumulatorExactlyOnce(t *testing.T) {
	var a Accumulator

	const producers = 4
	const perProducer = 10000

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				a.Add(1, -1, 2)
			}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	var totalDX, totalDY, totalWheel int
	drained := false
	for !drained {
		select {
		case <-done:
			drained = true
		default:
		}
		dx, dy, wheel := a.Drain()
		totalDX += dx
		totalDY += dy
		totalWheel += wheel
	}
	// Final drain after all producers finished.
	dx, dy, wheel := a.Drain()
	totalDX += dx
	totalDY += dy
	totalWheel += wheel

	wantDX := producers * perProducer
	if totalDX != wantDX || totalDY != -wantDX || totalWheel != 2*wantDX {
		t.Errorf("totals = (%d, %d, %d), want (%d, %d, %d)",
			totalDX, totalDY, totalWheel, wantDX, -wantDX, 2*wantDX)
	}
}
