package input

import (
	"reflect"
	"testing"

	"github.com/notyesbut/NitroGen/internal/domain"
)

type countingBackend struct {
	events []event
}

func (c *countingBackend) send(ev event) error {
	c.events = append(c.events, ev)
	return nil
}

func TestTransitionEdges(t *testing.T) {
	tests := []struct {
		name string
		prev domain.TargetAction
		next domain.TargetAction
		want []event
	}{
		{
			name: "press from neutral",
			next: domain.TargetAction{Keys: []string{"w"}},
			want: []event{{kind: evKey, name: "w", down: true}},
		},
		{
			name: "release to neutral",
			prev: domain.TargetAction{Keys: []string{"w"}},
			want: []event{{kind: evKey, name: "w"}},
		},
		{
			name: "held key produces no events",
			prev: domain.TargetAction{Keys: []string{"w"}},
			next: domain.TargetAction{Keys: []string{"w"}},
			want: nil,
		},
		{
			name: "swap keys releases before pressing",
			prev: domain.TargetAction{Keys: []string{"w"}},
			next: domain.TargetAction{Keys: []string{"s"}},
			want: []event{
				{kind: evKey, name: "w"},
				{kind: evKey, name: "s", down: true},
			},
		},
		{
			name: "buttons and motion",
			prev: domain.TargetAction{MouseButtons: []string{"left"}},
			next: domain.TargetAction{MouseButtons: []string{"right"}, MouseDX: 3, MouseDY: -2, Wheel: 120},
			want: []event{
				{kind: evButton, name: "left"},
				{kind: evButton, name: "right", down: true},
				{kind: evMove, dx: 3, dy: -2},
				{kind: evWheel, amount: 120},
			},
		},
		{
			name: "neutral to neutral",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transition(tt.prev, tt.next)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("transition() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyEmitsMinimalEvents(t *testing.T) {
	back := &countingBackend{}
	inj := &Injector{backend: back}

	held := domain.TargetAction{Keys: []string{"w", "d"}, MouseButtons: []string{"left"}}
	if err := inj.Apply(domain.TargetAction{}, held); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(back.events) != 3 {
		t.Fatalf("emitted %d events, want 3", len(back.events))
	}
	if inj.Emitted() != 3 {
		t.Errorf("Emitted() = %d, want 3", inj.Emitted())
	}

	// Re-applying the same action is edge-free.
	if err := inj.Apply(held, held); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if inj.Emitted() != 3 {
		t.Errorf("Emitted() = %d after no-op tick, want 3", inj.Emitted())
	}
}

func TestDryRunEmitsNothing(t *testing.T) {
	back := &countingBackend{}
	inj := &Injector{backend: back, dryRun: true}

	actions := []domain.TargetAction{
		{Keys: []string{"w"}},
		{Keys: []string{"w", "a"}, MouseDX: 50},
		{MouseButtons: []string{"left"}, Wheel: -120},
		{},
	}
	prev := domain.TargetAction{}
	for _, next := range actions {
		if err := inj.Apply(prev, next); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		prev = next
	}

	if got := inj.Emitted(); got != 0 {
		t.Errorf("Emitted() = %d in dry-run, want exactly 0", got)
	}
	if len(back.events) != 0 {
		t.Errorf("backend received %d events in dry-run, want 0", len(back.events))
	}
}
