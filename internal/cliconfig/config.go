// Package cliconfig holds the CLI configuration surface: defaults, TOML
// file loading, NITROGEN_* environment variables and flag precedence.
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/keymap"
)

// DefaultServiceURL is the default policy inference endpoint.
const DefaultServiceURL = "http://127.0.0.1:5000"

// Adapter names accepted by the --adapter flag.
const (
	AdapterKM  = "km"
	AdapterPad = "pad"
)

// Config holds CLI configuration for nitrogen.
type Config struct {
	Process string
	Width   int
	Height  int
	FPS     int

	ServiceURL  string
	HTTPTimeout time.Duration

	Adapter          string
	Deadzone         float64
	MouseSensitivity float64
	MouseDeltaMax    int
	TriggerThreshold float64

	TrackedKeys         string
	TrackedMouseButtons string

	DisableInput      bool
	EnableUnsafeSpeed bool
	SpeedFactor       float64

	OutDir      string
	StopFile    string
	MaxFrames   int
	MaxDuration time.Duration

	RetentionHighMB int
	RetentionLowMB  int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Width:            640,
		Height:           360,
		FPS:              30,
		ServiceURL:       DefaultServiceURL,
		HTTPTimeout:      500 * time.Millisecond,
		Adapter:          AdapterKM,
		Deadzone:         0.15,
		MouseSensitivity: 320,
		MouseDeltaMax:    200,
		TriggerThreshold: 0.5,
		SpeedFactor:      1.0,
		OutDir:           "runs",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: capture size must be positive, got %dx%d",
			domain.ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", domain.ErrInvalidConfig, c.FPS)
	}
	if c.Adapter != AdapterKM && c.Adapter != AdapterPad {
		return fmt.Errorf("%w: adapter must be %q or %q, got %q",
			domain.ErrInvalidConfig, AdapterKM, AdapterPad, c.Adapter)
	}
	if c.Deadzone < 0 || c.Deadzone >= 1 {
		return fmt.Errorf("%w: deadzone must be in [0,1), got %v", domain.ErrInvalidConfig, c.Deadzone)
	}
	if c.MouseSensitivity < 0 {
		return fmt.Errorf("%w: mouse sensitivity must be non-negative", domain.ErrInvalidConfig)
	}
	if c.MouseDeltaMax < 0 {
		return fmt.Errorf("%w: mouse delta max must be non-negative", domain.ErrInvalidConfig)
	}
	if c.TriggerThreshold < 0 || c.TriggerThreshold > 1 {
		return fmt.Errorf("%w: trigger threshold must be in [0,1], got %v",
			domain.ErrInvalidConfig, c.TriggerThreshold)
	}
	if c.EnableUnsafeSpeed && c.SpeedFactor <= 0 {
		return fmt.Errorf("%w: speed factor must be positive, got %v",
			domain.ErrInvalidConfig, c.SpeedFactor)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("%w: max frames must be non-negative", domain.ErrInvalidConfig)
	}
	if c.RetentionHighMB < 0 || c.RetentionLowMB < 0 || c.RetentionLowMB > c.RetentionHighMB {
		return fmt.Errorf("%w: retention watermarks must satisfy 0 <= low <= high",
			domain.ErrInvalidConfig)
	}

	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	c.ServiceURL = strings.TrimSuffix(c.ServiceURL, "/")
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 500 * time.Millisecond
	}

	return nil
}

// RunConfig converts the CLI surface into the immutable per-run snapshot.
// Unknown key or button names in the tracked lists are dropped; empty lists
// fall back to the defaults.
func (c *Config) RunConfig() domain.RunConfig {
	return domain.RunConfig{
		Deadzone:            c.Deadzone,
		MouseSensitivity:    c.MouseSensitivity,
		MouseDeltaMax:       c.MouseDeltaMax,
		TriggerThreshold:    c.TriggerThreshold,
		Width:               c.Width,
		Height:              c.Height,
		FPS:                 c.FPS,
		TrackedKeys:         keymap.ParseKeyList(c.TrackedKeys, keymap.DefaultKeys),
		TrackedMouseButtons: keymap.ParseMouseButtonList(c.TrackedMouseButtons, keymap.DefaultMouseButtons),
		DisableInput:        c.DisableInput,
		EnableUnsafeSpeed:   c.EnableUnsafeSpeed,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if present and flag not changed. Zero is
// meaningful for fields like deadzone and trigger threshold, so presence is
// signalled by the pointer, not the value.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	// A set variable is authoritative even at zero; out-of-range values
	// are rejected by Validate.
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
