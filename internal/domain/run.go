package domain

import (
	"fmt"
	"time"
)

// RunConfig is the immutable snapshot of adapter and capture parameters for
// one run. It is validated once at startup and fixed for the run's lifetime.
type RunConfig struct {
	// Adapter parameters.
	Deadzone         float64 `json:"deadzone"`
	MouseSensitivity float64 `json:"mouse_sensitivity"`
	MouseDeltaMax    int     `json:"mouse_delta_max"`
	TriggerThreshold float64 `json:"trigger_threshold"`

	// Capture parameters.
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`

	// Tracked input surface.
	TrackedKeys         []string `json:"tracked_keys"`
	TrackedMouseButtons []string `json:"tracked_mouse_buttons"`

	// Capabilities.
	DisableInput      bool `json:"disable_input"`
	EnableUnsafeSpeed bool `json:"enable_unsafe_speed"`
}

// Period returns the tick period T = 1/FPS.
func (c RunConfig) Period() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// Validate checks the configuration. A failure here is startup-fatal.
func (c RunConfig) Validate() error {
	if c.Deadzone < 0 || c.Deadzone >= 1 {
		return fmt.Errorf("%w: deadzone must be in [0, 1), got %v", ErrInvalidConfig, c.Deadzone)
	}
	if c.MouseSensitivity < 0 {
		return fmt.Errorf("%w: mouse sensitivity must be non-negative, got %v", ErrInvalidConfig, c.MouseSensitivity)
	}
	if c.MouseDeltaMax < 0 {
		return fmt.Errorf("%w: mouse delta max must be non-negative, got %d", ErrInvalidConfig, c.MouseDeltaMax)
	}
	if c.TriggerThreshold < 0 || c.TriggerThreshold > 1 {
		return fmt.Errorf("%w: trigger threshold must be in [0, 1], got %v", ErrInvalidConfig, c.TriggerThreshold)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: capture size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

// Run identifies one recording run. Created by the recorder at Begin and
// immutable thereafter; it owns the storage location for all of its frames
// and entries.
type Run struct {
	ID        string    `json:"run_id"`
	StartTime time.Time `json:"start_time"`
	Config    RunConfig `json:"config"`
}

// RecordEntry is one persisted frame/action pair. Entries are append-only
// and strictly ordered by FrameID within a run.
type RecordEntry struct {
	FrameID   uint64       `json:"frame_id"`
	Action    TargetAction `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
}
