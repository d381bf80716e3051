package capture

import (
	"image"
	"testing"
)

func TestClampRegion(t *testing.T) {
	tests := []struct {
		name   string
		window image.Rectangle
		w, h   int
		want   image.Rectangle
	}{
		{
			name:   "fits inside window",
			window: image.Rect(100, 50, 1380, 770),
			w:      640, h: 360,
			want: image.Rect(100, 50, 740, 410),
		},
		{
			name:   "shrinks to window",
			window: image.Rect(0, 0, 320, 200),
			w:      640, h: 360,
			want: image.Rect(0, 0, 320, 200),
		},
		{
			name:   "exact match",
			window: image.Rect(10, 10, 650, 370),
			w:      640, h: 360,
			want: image.Rect(10, 10, 650, 370),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampRegion(tt.window, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("clampRegion() = %v, want %v", got, tt.want)
			}
		})
	}
}
