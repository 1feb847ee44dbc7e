package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	src.Pix[0] = 0x7f
	data := EncodePNG(src)
	if len(data) == 0 {
		t.Fatal("empty png output")
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("decoded bounds %v", b)
	}
}

func TestEncodePNGNil(t *testing.T) {
	if got := EncodePNG(nil); got != nil {
		t.Fatalf("expected nil for nil image, got %d bytes", len(got))
	}
}

func TestScaleToFitShrinksPreservingAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	got := ScaleToFit(src, 200, 200)
	b := got.Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Fatalf("scaled to %dx%d, want 200x50", b.Dx(), b.Dy())
	}
}

func TestScaleToFitReturnsOriginalWhenSmall(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 40))
	if got := ScaleToFit(src, 100, 100); got != image.Image(src) {
		t.Fatal("expected original image back")
	}
}

func TestCropCenter(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Mark the center pixel.
	i := src.PixOffset(5, 5)
	src.Pix[i] = 0xff
	got, err := CropCenter(src, 4, 4)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 4 || b.Min.X != 0 {
		t.Fatalf("crop bounds %v", b)
	}
	// Center (5,5) of the source maps to (2,2) of the 4x4 crop at (3,3).
	if got.Pix[got.PixOffset(2, 2)] != 0xff {
		t.Fatal("crop not centered")
	}
}

func TestCropCenterClampsOversizedRequest(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 5))
	got, err := CropCenter(src, 100, 100)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
		t.Fatalf("crop bounds %v", b)
	}
}

func TestCropCenterNilFrame(t *testing.T) {
	if _, err := CropCenter(nil, 4, 4); err == nil {
		t.Fatal("expected error for nil frame")
	}
}
