package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Stick is a 2D analog stick position with both axes in [-1, 1].
// It serializes as a two-element JSON array, matching the policy wire format.
type Stick struct {
	X float64
	Y float64
}

// MarshalJSON encodes the stick as [x, y].
func (s Stick) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.X, s.Y})
}

// UnmarshalJSON decodes a two-element array into the stick.
func (s *Stick) UnmarshalJSON(b []byte) error {
	var v []float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("stick: expected 2 elements, got %d", len(v))
	}
	s.X, s.Y = v[0], v[1]
	return nil
}

// SourceAction is the gamepad-shaped action vector produced by the policy
// service (or, in ground-truth recording, by hardware sampling upstream of
// the adapter).
type SourceAction struct {
	Buttons      []string `json:"buttons"`
	LeftStick    Stick    `json:"left_stick"`
	RightStick   Stick    `json:"right_stick"`
	LeftTrigger  float64  `json:"left_trigger"`
	RightTrigger float64  `json:"right_trigger"`
}

// NeutralSourceAction returns the all-neutral action: no buttons, centered
// sticks, released triggers. Used as the safe default when inference fails.
func NeutralSourceAction() SourceAction {
	return SourceAction{}
}

// Clamped returns a copy with sticks clamped to [-1,1] and triggers to [0,1].
func (a SourceAction) Clamped() SourceAction {
	a.LeftStick.X = clampUnit(a.LeftStick.X)
	a.LeftStick.Y = clampUnit(a.LeftStick.Y)
	a.RightStick.X = clampUnit(a.RightStick.X)
	a.RightStick.Y = clampUnit(a.RightStick.Y)
	a.LeftTrigger = clamp01(a.LeftTrigger)
	a.RightTrigger = clamp01(a.RightTrigger)
	return a
}

// TargetAction is the keyboard/mouse-shaped action vector applied to the OS.
// The JSON field names are the on-disk recording contract and must remain
// stable across implementations.
type TargetAction struct {
	Keys         []string `json:"keys"`
	MouseButtons []string `json:"mouse_buttons"`
	MouseDX      int      `json:"mouse_dx"`
	MouseDY      int      `json:"mouse_dy"`
	Wheel        int      `json:"mouse_wheel"`
}

// NeutralTargetAction returns the action that holds nothing and moves
// nothing. Injecting it after any prior action releases all held inputs.
func NeutralTargetAction() TargetAction {
	return TargetAction{}
}

// Neutral reports whether the action holds nothing and moves nothing.
func (a TargetAction) Neutral() bool {
	return len(a.Keys) == 0 && len(a.MouseButtons) == 0 &&
		a.MouseDX == 0 && a.MouseDY == 0 && a.Wheel == 0
}

// Normalized returns a copy with the key and button sets deduplicated and
// sorted, so two equivalent actions compare and serialize identically.
func (a TargetAction) Normalized() TargetAction {
	a.Keys = normalizeSet(a.Keys)
	a.MouseButtons = normalizeSet(a.MouseButtons)
	return a
}

func normalizeSet(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ScaleStick maps a stick axis to an integer mouse delta:
// round(v*sensitivity) clamped to [-max, max], with values inside the
// deadzone producing zero.
func ScaleStick(v, deadzone, sensitivity float64, deltaMax int) int {
	if math.Abs(v) < deadzone {
		return 0
	}
	d := int(math.Round(v * sensitivity))
	if deltaMax > 0 {
		if d > deltaMax {
			d = deltaMax
		} else if d < -deltaMax {
			d = -deltaMax
		}
	}
	return d
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
