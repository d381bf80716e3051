// Package gamepad implements the controller adapter that translates the
// policy's gamepad-shaped actions into the keyboard/mouse injection target.
//
// The adapter choice is made once at run start from configuration. The "km"
// choice uses [KM]; the "pad" choice needs no mapping here, the loop clamps
// the source action and hands it to the pad injector in gamepad shape.
package gamepad

import (
	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/keymap"
)

// DefaultButtonMap maps source gamepad button ids to target key or
// mouse-button ids. Unmapped buttons are ignored by the adapter.
var DefaultButtonMap = map[string][]string{
	"a":          {"space"},
	"b":          {"ctrl"},
	"x":          {"r"},
	"y":          {"f"},
	"lb":         {"q"},
	"rb":         {"e"},
	"ls":         {"shift"},
	"rs":         {"v"},
	"back":       {"tab"},
	"start":      {"esc"},
	"dpad_up":    {"up"},
	"dpad_down":  {"down"},
	"dpad_left":  {"left"},
	"dpad_right": {"right"},
}

// KM is the gamepad-to-keyboard/mouse adapter. The mapping is deterministic:
//
//   - left stick drives the movement keys, independently per axis, so
//     diagonals hold two keys at once
//   - right stick drives the mouse delta, linear in sensitivity and clamped
//     component-wise
//   - triggers threshold into mouse buttons, with no hysteresis
//   - buttons go through the lookup table
type KM struct {
	deadzone    float64
	sensitivity float64
	deltaMax    int
	threshold   float64
	buttons     map[string][]string
}

// NewKM builds the adapter from the run's immutable configuration and the
// default button table.
func NewKM(cfg domain.RunConfig) *KM {
	return &KM{
		deadzone:    cfg.Deadzone,
		sensitivity: cfg.MouseSensitivity,
		deltaMax:    cfg.MouseDeltaMax,
		threshold:   cfg.TriggerThreshold,
		buttons:     DefaultButtonMap,
	}
}

// Map translates one source action. Pure and total: every valid source
// action produces exactly one target action, with no error path.
func (m *KM) Map(a domain.SourceAction) domain.TargetAction {
	a = a.Clamped()
	var t domain.TargetAction

	// Left stick: per-axis threshold against the deadzone. |v| < deadzone
	// releases the direction key, |v| >= deadzone holds it.
	if a.LeftStick.Y >= m.deadzone {
		t.Keys = append(t.Keys, "w")
	} else if a.LeftStick.Y <= -m.deadzone {
		t.Keys = append(t.Keys, "s")
	}
	if a.LeftStick.X >= m.deadzone {
		t.Keys = append(t.Keys, "d")
	} else if a.LeftStick.X <= -m.deadzone {
		t.Keys = append(t.Keys, "a")
	}

	// Right stick: look axis. Stick up looks up; screen y grows down.
	t.MouseDX = domain.ScaleStick(a.RightStick.X, m.deadzone, m.sensitivity, m.deltaMax)
	t.MouseDY = domain.ScaleStick(-a.RightStick.Y, m.deadzone, m.sensitivity, m.deltaMax)

	// Triggers: simple threshold. Right trigger fires, left trigger aims.
	if a.RightTrigger >= m.threshold {
		t.MouseButtons = append(t.MouseButtons, "left")
	}
	if a.LeftTrigger >= m.threshold {
		t.MouseButtons = append(t.MouseButtons, "right")
	}

	for _, b := range a.Buttons {
		for _, target := range m.buttons[b] {
			if _, ok := keymap.MouseButtonVK[target]; ok {
				t.MouseButtons = append(t.MouseButtons, target)
				continue
			}
			if _, ok := keymap.VKCode[target]; ok {
				t.Keys = append(t.Keys, target)
			}
		}
	}

	return t.Normalized()
}
