package gamepad

import (
	"math"
	"reflect"
	"testing"

	"github.com/notyesbut/NitroGen/internal/domain"
)

func testConfig() domain.RunConfig {
	return domain.RunConfig{
		Deadzone:         0.2,
		MouseSensitivity: 100,
		MouseDeltaMax:    80,
		TriggerThreshold: 0.1,
		Width:            640,
		Height:           360,
		FPS:              30,
	}
}

func TestMapMovementKeys(t *testing.T) {
	m := NewKM(testConfig())

	tests := []struct {
		name  string
		stick domain.Stick
		keys  []string
	}{
		{"forward", domain.Stick{X: 0.0, Y: 0.5}, []string{"w"}},
		{"back", domain.Stick{X: 0.0, Y: -0.5}, []string{"s"}},
		{"right", domain.Stick{X: 0.5, Y: 0.0}, []string{"d"}},
		{"left", domain.Stick{X: -0.5, Y: 0.0}, []string{"a"}},
		{"diagonal", domain.Stick{X: 0.7, Y: 0.7}, []string{"d", "w"}},
		{"inside deadzone", domain.Stick{X: 0.19, Y: -0.19}, nil},
		{"exactly deadzone", domain.Stick{X: 0.2, Y: 0.0}, []string{"d"}},
		{"neutral", domain.Stick{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(domain.SourceAction{LeftStick: tt.stick})
			if !reflect.DeepEqual(got.Keys, tt.keys) {
				t.Errorf("Keys = %v, want %v", got.Keys, tt.keys)
			}
		})
	}
}

func TestMapMouseDeltaLinearAndClamped(t *testing.T) {
	cfg := testConfig()
	m := NewKM(cfg)

	for _, v := range []float64{-1, -0.9, -0.5, -0.2, 0, 0.2, 0.5, 0.9, 1} {
		got := m.Map(domain.SourceAction{RightStick: domain.Stick{X: v}})

		want := 0
		if math.Abs(v) >= cfg.Deadzone {
			want = int(math.Round(v * cfg.MouseSensitivity))
			if want > cfg.MouseDeltaMax {
				want = cfg.MouseDeltaMax
			}
			if want < -cfg.MouseDeltaMax {
				want = -cfg.MouseDeltaMax
			}
		}
		if got.MouseDX != want {
			t.Errorf("v=%v: MouseDX = %d, want %d", v, got.MouseDX, want)
		}
	}
}

func TestMapMouseDeltaVerticalInversion(t *testing.T) {
	m := NewKM(testConfig())

	// Stick up (positive Y) must look up (negative screen dy).
	got := m.Map(domain.SourceAction{RightStick: domain.Stick{Y: 0.5}})
	if got.MouseDY >= 0 {
		t.Errorf("MouseDY = %d, want negative for stick up", got.MouseDY)
	}
}

func TestMapTriggerThreshold(t *testing.T) {
	m := NewKM(testConfig())

	// Below threshold: released.
	got := m.Map(domain.SourceAction{RightTrigger: 0.05})
	if len(got.MouseButtons) != 0 {
		t.Errorf("MouseButtons = %v, want none below threshold", got.MouseButtons)
	}

	// At or above threshold: held.
	got = m.Map(domain.SourceAction{RightTrigger: 0.15})
	if !reflect.DeepEqual(got.MouseButtons, []string{"left"}) {
		t.Errorf("MouseButtons = %v, want [left]", got.MouseButtons)
	}

	got = m.Map(domain.SourceAction{LeftTrigger: 0.15})
	if !reflect.DeepEqual(got.MouseButtons, []string{"right"}) {
		t.Errorf("MouseButtons = %v, want [right]", got.MouseButtons)
	}
}

func TestMapButtonsLookup(t *testing.T) {
	m := NewKM(testConfig())

	got := m.Map(domain.SourceAction{Buttons: []string{"a", "start", "unknown"}})
	if !reflect.DeepEqual(got.Keys, []string{"esc", "space"}) {
		t.Errorf("Keys = %v, want [esc space]", got.Keys)
	}
}

func TestMapIsTotal(t *testing.T) {
	m := NewKM(testConfig())

	// Out-of-range inputs are clamped, never rejected.
	got := m.Map(domain.SourceAction{
		LeftStick:    domain.Stick{X: 5, Y: -5},
		RightStick:   domain.Stick{X: -3, Y: 3},
		LeftTrigger:  7,
		RightTrigger: -1,
	})
	if !reflect.DeepEqual(got.Keys, []string{"d", "s"}) {
		t.Errorf("Keys = %v, want [d s]", got.Keys)
	}
	if got.MouseDX != -80 {
		t.Errorf("MouseDX = %d, want clamped -80", got.MouseDX)
	}
	if !reflect.DeepEqual(got.MouseButtons, []string{"right"}) {
		t.Errorf("MouseButtons = %v, want [right]", got.MouseButtons)
	}
}
