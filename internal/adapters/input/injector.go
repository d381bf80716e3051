// Package input implements the keyboard/mouse injector: it turns target
// action transitions into OS input events, or into nothing at all in
// dry-run mode.
package input

import (
	"fmt"
	"sync/atomic"

	"github.com/notyesbut/NitroGen/internal/domain"
)

// backend sends a single event to the OS. Platform implementations live in
// send_windows.go and send_stub.go; tests substitute a counting fake.
type backend interface {
	send(ev event) error
}

// Injector applies target action transitions. The transition computation
// always runs; in dry-run mode no backend call is made, so the emitted
// event count stays at exactly zero.
type Injector struct {
	backend backend
	dryRun  bool
	emitted atomic.Uint64
}

// New creates an injector for the current platform. With dryRun set, Apply
// has zero OS side effects.
func New(dryRun bool) *Injector {
	return &Injector{backend: newBackend(), dryRun: dryRun}
}

// Apply emits the minimal event set for the prev→next transition. On a
// backend failure the remaining events of this tick are abandoned; the
// caller treats the tick's input as dropped and continues.
func (i *Injector) Apply(prev, next domain.TargetAction) error {
	evs := transition(prev, next)
	if i.dryRun {
		return nil
	}
	for _, ev := range evs {
		if err := i.backend.send(ev); err != nil {
			return fmt.Errorf("inject %s: %w", evName(ev), err)
		}
		i.emitted.Add(1)
	}
	return nil
}

// Emitted returns the total number of OS input events sent. Always zero in
// dry-run mode.
func (i *Injector) Emitted() uint64 {
	return i.emitted.Load()
}

func evName(ev event) string {
	switch ev.kind {
	case evKey:
		return "key " + ev.name
	case evButton:
		return "button " + ev.name
	case evMove:
		return "move"
	default:
		return "wheel"
	}
}
