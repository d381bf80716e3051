// Package capture implements the screen frame source. Frames are grabbed
// from a fixed region resolved once at startup from the target process's
// window; the source has no timing logic of its own.
package capture

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/notyesbut/NitroGen/internal/domain"
)

// Source grabs frames from a fixed screen region.
type Source struct {
	region image.Rectangle
	nextID uint64
}

// NewSource creates a frame source over the given screen region.
// Use ResolveProcessRegion to derive the region from a process name.
func NewSource(region image.Rectangle) *Source {
	return &Source{region: region}
}

// Grab captures one frame. The frame id is monotonic across the source's
// lifetime; a failed grab does not consume an id.
func (s *Source) Grab(ctx context.Context) (domain.Frame, error) {
	if err := ctx.Err(); err != nil {
		return domain.Frame{}, err
	}

	img, err := screenshot.CaptureRect(s.region)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("capture %v: %w", s.region, err)
	}

	s.nextID++
	return domain.Frame{
		ID:        s.nextID,
		Timestamp: time.Now(),
		Width:     img.Rect.Dx(),
		Height:    img.Rect.Dy(),
		Image:     img,
	}, nil
}

// Close releases capture resources.
func (s *Source) Close() error { return nil }

// clampRegion anchors a w×h capture region at the window origin, shrinking
// it to fit inside the window when the window is smaller.
func clampRegion(window image.Rectangle, w, h int) image.Rectangle {
	region := image.Rect(window.Min.X, window.Min.Y, window.Min.X+w, window.Min.Y+h)
	return region.Intersect(window)
}
