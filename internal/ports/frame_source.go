package ports

import (
	"context"

	"github.com/notyesbut/NitroGen/internal/domain"
)

// FrameSource produces timestamped frames on demand. It has no internal
// timing logic of its own; the loop decides when to grab.
type FrameSource interface {
	// Grab captures one frame. The returned frame is owned by the caller
	// and is never mutated by the source afterwards. Grab blocks with
	// respect to the tick; a failure degrades the current tick only.
	Grab(ctx context.Context) (domain.Frame, error)

	// Close releases capture resources.
	Close() error
}
