package ports

import "github.com/notyesbut/NitroGen/internal/domain"

// Injector applies a target action to the OS. Given the previous tick's
// action it emits the minimal set of input events representing the
// transition: newly-held keys pressed, newly-released keys released, the
// mouse moved by the action's delta, the wheel scrolled.
//
// In dry-run mode the same edge computation occurs but zero OS events are
// emitted; implementations expose an event counter so the zero-side-effect
// contract is assertable, not best-effort.
type Injector interface {
	Apply(prev, next domain.TargetAction) error

	// Emitted returns the total number of OS input events sent so far.
	// Always zero in dry-run mode.
	Emitted() uint64
}

// PadInjector applies a gamepad-shaped action to a virtual gamepad device.
// Used with the passthrough adapter variant; the virtual gamepad driver
// itself is an external collaborator.
type PadInjector interface {
	Apply(prev, next domain.SourceAction) error
}
