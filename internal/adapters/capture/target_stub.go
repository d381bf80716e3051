//go:build !windows

package capture

import (
	"fmt"
	"image"

	"github.com/notyesbut/NitroGen/internal/domain"
)

// ResolveProcessRegion reports the platform gap. Process-scoped capture
// needs window enumeration; callers on this platform inject their own
// frame source.
func ResolveProcessRegion(process string, w, h int) (image.Rectangle, error) {
	return image.Rectangle{}, fmt.Errorf("resolve process %q: %w", process, domain.ErrUnsupported)
}
