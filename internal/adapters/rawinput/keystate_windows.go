//go:build windows

package rawinput

import (
	"github.com/notyesbut/NitroGen/internal/keymap"
)

var procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")

// KeyState samples the held state of the tracked keys and mouse buttons
// from hardware via GetAsyncKeyState.
type KeyState struct {
	keys    []string
	buttons []string
}

// NewKeyState builds a sampler over the tracked sets. Unknown names are
// dropped during tracked-set parsing upstream.
func NewKeyState(keys, mouseButtons []string) (*KeyState, error) {
	return &KeyState{keys: keys, buttons: mouseButtons}, nil
}

// Sample returns the currently held tracked keys and mouse buttons.
func (k *KeyState) Sample() (keys, mouseButtons []string) {
	for _, key := range k.keys {
		vk, ok := keymap.VKCode[key]
		if !ok {
			continue
		}
		if pressed(vk) {
			keys = append(keys, key)
		}
	}
	for _, b := range k.buttons {
		vk, ok := keymap.MouseButtonVK[b]
		if !ok {
			continue
		}
		if pressed(vk) {
			mouseButtons = append(mouseButtons, b)
		}
	}
	return keys, mouseButtons
}

func pressed(vk uint16) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return state&0x8000 != 0
}
