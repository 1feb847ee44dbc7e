package camera

import (
	"bytes"
	"image"
	"image/jpeg"
	"log/slog"
	"testing"

	"github.com/soocke/pixel-sorter-go/config"
)

func testController(t *testing.T) *Controller {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PreviewWidth = 64
	cfg.PreviewHeight = 48
	return NewController(cfg, slog.Default())
}

func TestLatestFrameFallsBackToTestPattern(t *testing.T) {
	c := testController(t)
	snap := c.LatestFrame()
	if snap.Image == nil {
		t.Fatal("expected a fallback frame")
	}
	b := snap.Image.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("fallback frame is %dx%d, want 64x48", b.Dx(), b.Dy())
	}
	if snap.Sequence != 0 {
		t.Fatalf("fallback frame carries sequence %d", snap.Sequence)
	}
}

func TestCaptureStillFailsWithoutCamera(t *testing.T) {
	c := testController(t)
	if c.Available() {
		t.Skip("camera tooling present on this host")
	}
	if _, err := c.CaptureStill(); err == nil {
		t.Fatal("expected error when camera tooling is missing")
	}
}

func TestStartStopWithoutCameraAreNoOps(t *testing.T) {
	c := testController(t)
	if c.Available() {
		t.Skip("camera tooling present on this host")
	}
	c.Start()
	if c.Running() {
		t.Fatal("controller reports running without camera tooling")
	}
	c.Stop()
	c.Stop()
}

func TestPublishUpdatesLatestAndStats(t *testing.T) {
	c := testController(t)
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	c.publish(buf.Bytes())
	snap := c.LatestFrame()
	if snap.Sequence != 1 {
		t.Fatalf("sequence = %d, want 1", snap.Sequence)
	}
	if got := snap.Image.Bounds(); got.Dx() != 16 || got.Dy() != 16 {
		t.Fatalf("decoded frame is %dx%d", got.Dx(), got.Dy())
	}
	stats := c.Stats()
	if stats.Frames != 1 || stats.DecodeFails != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.LastFrame.IsZero() {
		t.Fatal("stats missing last frame timestamp")
	}
}

func TestPublishCountsDecodeFailures(t *testing.T) {
	c := testController(t)
	c.publish([]byte{0xff, 0xd8, 0x00, 0x01, 0xff, 0xd9})
	if got := c.Stats().DecodeFails; got != 1 {
		t.Fatalf("decode failures = %d, want 1", got)
	}
	if got := c.Stats().Frames; got != 0 {
		t.Fatalf("frames = %d, want 0", got)
	}
}

func TestLikelyCorrupted(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 5, 5))
	if !likelyCorrupted(small) {
		t.Error("undersized frame should count as corrupted")
	}

	solid := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range solid.Pix {
		solid.Pix[i] = 0x40
	}
	if !likelyCorrupted(solid) {
		t.Error("solid color frame should count as corrupted")
	}

	varied := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			i := varied.PixOffset(x, y)
			varied.Pix[i] = uint8(x)
			varied.Pix[i+1] = uint8(y)
			varied.Pix[i+3] = 0xff
		}
	}
	if likelyCorrupted(varied) {
		t.Error("varied frame flagged as corrupted")
	}
}

func TestDecodeJPEGConvertsToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 20, 12))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := decodeJPEG(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Min.X != 0 || b.Min.Y != 0 || b.Dx() != 20 || b.Dy() != 12 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine([]byte("error: no camera\ndetails follow")); got != "error: no camera" {
		t.Fatalf("firstLine = %q", got)
	}
	if got := firstLine([]byte("single")); got != "single" {
		t.Fatalf("firstLine = %q", got)
	}
}
