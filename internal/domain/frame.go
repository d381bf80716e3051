package domain

import (
	"image"
	"time"
)

// Frame is a single captured frame. It is created by the tick that grabbed
// it and is never mutated afterwards; ownership passes to the policy client
// and recorder by value.
type Frame struct {
	// ID is a monotonically increasing counter assigned by the loop.
	ID uint64

	// Timestamp is the capture time from the high-resolution clock.
	Timestamp time.Time

	// Width and Height are the capture dimensions in pixels.
	Width  int
	Height int

	// Image holds the pixel data. May be nil in tests that only exercise
	// alignment and ordering.
	Image *image.RGBA
}
