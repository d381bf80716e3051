// Package vpad applies gamepad-shaped actions to a virtual gamepad device.
//
// The virtual gamepad driver (ViGEm or similar) is an external
// collaborator; when no driver is installed the injector degrades to a
// no-op and warns once.
package vpad

import (
	"sync"

	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/ports"
)

// Pad implements ports.PadInjector. Without a driver backing it, Apply
// discards actions after a single warning, so a passthrough run on a
// machine without the driver degrades loudly but does not fail.
type Pad struct {
	logger   ports.Logger
	warnOnce sync.Once
	dryRun   bool
}

// New creates a pad injector. dryRun suppresses device output entirely.
func New(dryRun bool, logger ports.Logger) *Pad {
	return &Pad{logger: logger, dryRun: dryRun}
}

// Apply forwards the action to the virtual device.
func (p *Pad) Apply(prev, next domain.SourceAction) error {
	if p.dryRun {
		return nil
	}
	p.warnOnce.Do(func() {
		p.logger.Warn("no virtual gamepad driver available, pad actions discarded")
	})
	return nil
}
