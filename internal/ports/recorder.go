package ports

import (
	"context"

	"github.com/notyesbut/NitroGen/internal/domain"
)

// Recorder persists frame/action pairs for a run, in strict tick order.
//
// Begin creates the run, persists its configuration once and prepares
// storage; Append is the only mutating operation afterwards. Storage is an
// arena of immutable records keyed by monotonic index, never updated in
// place, so crash recovery only ever needs to trust a prefix of the log.
type Recorder interface {
	// Begin creates a new run with a unique id. An unwritable run
	// directory is startup-fatal.
	Begin(ctx context.Context, cfg domain.RunConfig) (domain.Run, error)

	// Append persists one frame/action pair. It returns a wrapped
	// domain.ErrWriteFailure when durable storage cannot accept the
	// entry, domain.ErrOutOfOrder when the frame id does not advance,
	// and domain.ErrRunComplete once a configured max-frame or
	// max-duration bound is reached (the pair is persisted; the loop
	// should stop).
	Append(frame domain.Frame, action domain.TargetAction) error

	// Close stops accepting writes and finalizes run metadata.
	Close() error
}

// StopSignal is a cooperative termination source, polled once per tick
// boundary. There is no mid-tick pre-emption.
type StopSignal interface {
	Triggered() bool
	Close() error
}

// SpeedController is the opaque, opt-in process speed capability. Failures
// are surfaced to the caller and never retried automatically.
type SpeedController interface {
	Apply(factor float64) error
	Restore() error
}
