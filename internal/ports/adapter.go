package ports

import "github.com/notyesbut/NitroGen/internal/domain"

// ControllerAdapter maps a gamepad-shaped source action to a keyboard/mouse
// target action under the run configuration. Implementations must be pure
// and total: every valid source action produces exactly one target action,
// with no error path. The variant is selected once at run start, not
// re-evaluated per tick.
type ControllerAdapter interface {
	Map(a domain.SourceAction) domain.TargetAction
}
