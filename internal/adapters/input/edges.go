package input

import "github.com/notyesbut/NitroGen/internal/domain"

type eventKind int

const (
	evKey eventKind = iota
	evButton
	evMove
	evWheel
)

// event is one OS input event to emit.
type event struct {
	kind   eventKind
	name   string // key or button id
	down   bool
	dx, dy int
	amount int // wheel
}

// transition computes the minimal event set representing the change from
// prev to next: releases before presses, then relative motion, then wheel.
// Keys and buttons present in both actions produce no events.
func transition(prev, next domain.TargetAction) []event {
	var evs []event

	prevKeys := toSet(prev.Keys)
	nextKeys := toSet(next.Keys)
	for _, k := range prev.Keys {
		if _, held := nextKeys[k]; !held {
			evs = append(evs, event{kind: evKey, name: k})
		}
	}
	for _, k := range next.Keys {
		if _, held := prevKeys[k]; !held {
			evs = append(evs, event{kind: evKey, name: k, down: true})
		}
	}

	prevBtns := toSet(prev.MouseButtons)
	nextBtns := toSet(next.MouseButtons)
	for _, b := range prev.MouseButtons {
		if _, held := nextBtns[b]; !held {
			evs = append(evs, event{kind: evButton, name: b})
		}
	}
	for _, b := range next.MouseButtons {
		if _, held := prevBtns[b]; !held {
			evs = append(evs, event{kind: evButton, name: b, down: true})
		}
	}

	if next.MouseDX != 0 || next.MouseDY != 0 {
		evs = append(evs, event{kind: evMove, dx: next.MouseDX, dy: next.MouseDY})
	}
	if next.Wheel != 0 {
		evs = append(evs, event{kind: evWheel, amount: next.Wheel})
	}

	return evs
}

func toSet(in []string) map[string]struct{} {
	if len(in) == 0 {
		return nil
	}
	s := make(map[string]struct{}, len(in))
	for _, v := range in {
		s[v] = struct{}{}
	}
	return s
}
