package capture

import (
	"image"
	"testing"
)

func TestCenteredRegion(t *testing.T) {
	cases := []struct {
		name             string
		screenW, screenH int
		w, h             int
		want             image.Rectangle
	}{
		{"fits centered", 1920, 1080, 800, 480, image.Rect(560, 300, 1360, 780)},
		{"exact screen", 800, 480, 800, 480, image.Rect(0, 0, 800, 480)},
		{"wider than screen", 640, 480, 4096, 200, image.Rect(0, 140, 640, 340)},
		{"taller than screen", 640, 480, 200, 4096, image.Rect(220, 0, 420, 480)},
		{"degenerate request", 640, 480, 0, -5, image.Rect(319, 239, 320, 240)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CenteredRegion(tc.screenW, tc.screenH, tc.w, tc.h)
			if got != tc.want {
				t.Errorf("region = %v, want %v", got, tc.want)
			}
		})
	}
}
