package imageio

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/evilsocket/islazy/fs"
)

// Sample image generation. The kiosk ships a handful of synthetic images
// so the editing flow can be demonstrated without a camera or any photos
// on disk.

// Gradient renders a diagonal RGB gradient.
func Gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x * 255 / max(w-1, 1))
			img.Pix[i+1] = uint8(y * 255 / max(h-1, 1))
			img.Pix[i+2] = uint8((x + y) * 255 / max(w+h-2, 1))
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// Noise renders uniform random pixels from the given seed.
func Noise(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = 0xff
	}
	return img
}

// Checker renders an alternating two-tone checkerboard.
func Checker(w, h, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			v := uint8(40)
			if (x/cell+y/cell)%2 == 0 {
				v = 220
			}
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
		}
	}
	return img
}

// Bands renders horizontal bands of saturated colors.
func Bands(w, h int) *image.RGBA {
	palette := [][3]uint8{
		{230, 60, 60},
		{230, 160, 40},
		{230, 230, 60},
		{60, 200, 90},
		{60, 140, 230},
		{150, 70, 210},
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bandH := max(h/len(palette), 1)
	for y := 0; y < h; y++ {
		c := palette[min(y/bandH, len(palette)-1)]
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c[0], c[1], c[2], 0xff
		}
	}
	return img
}

// WriteSamples populates dir with the sample set, skipping files that
// already exist.
func WriteSamples(dir string, w, h int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("imageio: create sample dir: %w", err)
	}
	samples := map[string]*image.RGBA{
		"gradient.png": Gradient(w, h),
		"noise.png":    Noise(w, h, 1),
		"checker.png":  Checker(w, h, w/16),
		"bands.png":    Bands(w, h),
	}
	for name, img := range samples {
		path := filepath.Join(dir, name)
		if fs.Exists(path) {
			continue
		}
		if err := Save(img, path); err != nil {
			return err
		}
	}
	return nil
}
