package ports

// RawSampler accumulates raw mouse deltas and wheel ticks between loop
// iterations. The producer runs independently of the tick cadence; each
// tick atomically drains and resets the accumulated sums, so deltas are
// never lost or double-counted across tick boundaries. Deltas arriving
// after a drain are attributed entirely to the next tick.
type RawSampler interface {
	Start() error
	Stop() error

	// Drain atomically returns the accumulated deltas and resets them.
	Drain() (dx, dy, wheel int)

	// WheelSupported reports whether wheel ticks are observed. When the
	// platform offers no wheel hook, wheel is always reported as zero;
	// zero then means "untracked", not "no motion occurred".
	WheelSupported() bool
}

// KeyStateSampler samples the currently held tracked keys and mouse buttons
// from hardware state. Used in ground-truth recording mode, bypassing
// inference entirely.
type KeyStateSampler interface {
	Sample() (keys, mouseButtons []string)
}
