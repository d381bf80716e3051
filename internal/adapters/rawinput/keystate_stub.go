//go:build !windows

package rawinput

import "github.com/notyesbut/NitroGen/internal/domain"

// KeyState is unavailable without hardware key-state access.
type KeyState struct{}

// NewKeyState reports the platform gap; ground-truth recording on this
// platform requires an injected sampler.
func NewKeyState(keys, mouseButtons []string) (*KeyState, error) {
	return nil, domain.ErrUnsupported
}

// Sample returns empty sets.
func (k *KeyState) Sample() (keys, mouseButtons []string) { return nil, nil }
