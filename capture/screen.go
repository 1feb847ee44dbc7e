package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor. Used as the
// capture source on development machines without a camera attached.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture: screen grab: %w", err)
	}
	return img, nil
}

// GrabRegion captures the given portion of the screen.
func GrabRegion(area image.Rectangle) (*image.RGBA, error) {
	if area.Empty() {
		return nil, fmt.Errorf("capture: empty region")
	}
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, fmt.Errorf("capture: region grab: %w", err)
	}
	return img, nil
}

// Size reports the active screen dimensions.
func Size() (int, int, error) {
	rect, err := screenshot.ScreenRect()
	if err != nil {
		return 0, 0, err
	}
	return rect.Dx(), rect.Dy(), nil
}

// CenteredRegion returns a w x h rectangle centered on a screenW x screenH
// screen, shrunk to fit when the screen is smaller than the request.
func CenteredRegion(screenW, screenH, w, h int) image.Rectangle {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > screenW {
		w = screenW
	}
	if h > screenH {
		h = screenH
	}
	x0 := (screenW - w) / 2
	y0 := (screenH - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}
