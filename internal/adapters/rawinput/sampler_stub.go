//go:build !windows

package rawinput

import "github.com/notyesbut/NitroGen/internal/domain"

// Sampler is unavailable without a raw input hook; ground-truth recording
// on this platform requires an injected sampler (tests use fakes).
type Sampler struct {
	acc Accumulator
}

// NewSampler creates the stub sampler.
func NewSampler() *Sampler { return &Sampler{} }

// Start reports the platform gap.
func (s *Sampler) Start() error { return domain.ErrUnsupported }

// Stop is a no-op.
func (s *Sampler) Stop() error { return nil }

// Drain returns the (always empty) accumulated deltas.
func (s *Sampler) Drain() (dx, dy, wheel int) { return s.acc.Drain() }

// WheelSupported reports false: wheel is always zero here, meaning
// "untracked", not "no motion occurred".
func (s *Sampler) WheelSupported() bool { return false }
