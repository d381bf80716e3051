//go:build !windows

package input

import "github.com/notyesbut/NitroGen/internal/domain"

type stubBackend struct{}

func newBackend() backend { return stubBackend{} }

// send reports the platform gap; the loop treats it as a dropped tick's
// input. Dry-run mode never reaches the backend on any platform.
func (stubBackend) send(ev event) error {
	return domain.ErrUnsupported
}
