package imageio

import (
	"image"
	"path/filepath"
	"testing"
)

func TestSupportedExtensions(t *testing.T) {
	for _, path := range []string{"a.png", "b.JPG", "c.jpeg", "d.bmp", "e.gif", "f.tiff"} {
		if !Supported(path) {
			t.Errorf("Supported(%q) = false", path)
		}
	}
	for _, path := range []string{"a.webp", "b.txt", "noext", "c.raw"} {
		if Supported(path) {
			t.Errorf("Supported(%q) = true", path)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	src := Gradient(32, 24)
	if err := Save(src, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b := got.Bounds()
	if b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("loaded %dx%d, want 32x24", b.Dx(), b.Dy())
	}
	for i := range src.Pix {
		if src.Pix[i] != got.Pix[i] {
			t.Fatalf("pixel data differs at byte %d", i)
		}
	}
}

func TestLoadRejectsUnsupportedAndMissing(t *testing.T) {
	if _, err := Load("photo.webp"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRejectsTinyImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.png")
	if err := Save(Gradient(4, 4), path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for image below minimum size")
	}
}

func TestFitWithinPreservesAspect(t *testing.T) {
	src := Gradient(400, 200)
	got := FitWithin(src, 100, 100)
	b := got.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("fitted to %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestFitWithinNoOpWhenInsideBox(t *testing.T) {
	src := Gradient(50, 40)
	if got := FitWithin(src, 100, 100); got != src {
		t.Fatal("expected the same image back when it already fits")
	}
}

func TestSampleGeneratorsDimensions(t *testing.T) {
	for name, img := range map[string]*image.RGBA{
		"gradient": Gradient(33, 21),
		"noise":    Noise(33, 21, 7),
		"checker":  Checker(33, 21, 4),
		"bands":    Bands(33, 21),
	} {
		b := img.Bounds()
		if b.Dx() != 33 || b.Dy() != 21 {
			t.Errorf("%s: got %dx%d, want 33x21", name, b.Dx(), b.Dy())
		}
		if img.Pix[3] != 0xff {
			t.Errorf("%s: first pixel not opaque", name)
		}
	}
}

func TestNoiseIsDeterministicPerSeed(t *testing.T) {
	a := Noise(16, 16, 42)
	b := Noise(16, 16, 42)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("same seed produced different noise")
		}
	}
}

func TestWriteSamplesCreatesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := WriteSamples(dir, 64, 64); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	for _, name := range []string{"gradient.png", "noise.png", "checker.png", "bands.png"} {
		img, err := Load(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if img.Bounds().Dx() != 64 {
			t.Fatalf("%s has wrong width", name)
		}
	}
	// Second call must not fail on existing files.
	if err := WriteSamples(dir, 64, 64); err != nil {
		t.Fatalf("rewrite samples: %v", err)
	}
}
