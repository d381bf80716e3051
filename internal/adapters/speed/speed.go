// Package speed wraps the opt-in process speed capability. The capability
// itself is an external collaborator consumed strictly at its interface; a
// Hook supplies the actual mechanism, and without one the controller
// reports the capability as unsupported.
package speed

import (
	"fmt"

	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/ports"
)

// Hook is the external speed mechanism. Set reapplies the factor; Reset
// restores normal speed.
type Hook interface {
	Set(factor float64) error
	Reset() error
}

// Controller implements ports.SpeedController. Apply errors are surfaced
// to the caller and never retried here; retrying an explicitly opt-in
// risky capability behind the caller's back would defeat the opt-in.
type Controller struct {
	enabled bool
	hook    Hook
	applied bool
	logger  ports.Logger
}

// New creates a controller. hook may be nil when no mechanism is present.
func New(enabled bool, hook Hook, logger ports.Logger) *Controller {
	return &Controller{enabled: enabled, hook: hook, logger: logger}
}

// Apply sets the speed factor.
func (c *Controller) Apply(factor float64) error {
	if !c.enabled {
		return fmt.Errorf("%w: unsafe speed capability not enabled", domain.ErrUnsupported)
	}
	if factor <= 0 {
		return fmt.Errorf("%w: speed factor must be positive, got %v",
			domain.ErrInvalidConfig, factor)
	}
	if c.hook == nil {
		return fmt.Errorf("%w: no speed mechanism available", domain.ErrUnsupported)
	}
	if err := c.hook.Set(factor); err != nil {
		return fmt.Errorf("apply speed factor %v: %w", factor, err)
	}
	c.applied = true
	c.logger.Warn("unsafe speed factor applied", ports.Float64("factor", factor))
	return nil
}

// Restore resets the process to normal speed. A no-op when nothing was
// applied.
func (c *Controller) Restore() error {
	if !c.applied || c.hook == nil {
		return nil
	}
	c.applied = false
	if err := c.hook.Reset(); err != nil {
		return fmt.Errorf("restore speed: %w", err)
	}
	c.logger.Info("speed restored")
	return nil
}
