package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Bounds accepted for images entering the sort pipeline. Anything smaller
// carries too little signal to sort; anything larger is downscaled first
// so interactive edits stay responsive.
const (
	MinDimension = 10
	MaxWidth     = 4096
	MaxHeight    = 4096
)

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
}

// Supported reports whether the file extension names a loadable format.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Load opens an image file, validates its dimensions, and returns it as
// RGBA, downscaled to the pipeline maximum when oversized.
func Load(path string) (*image.RGBA, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("imageio: unsupported format %q", filepath.Ext(path))
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() < MinDimension || b.Dy() < MinDimension {
		return nil, fmt.Errorf("imageio: image %dx%d below minimum %dx%d",
			b.Dx(), b.Dy(), MinDimension, MinDimension)
	}
	if b.Dx() > MaxWidth || b.Dy() > MaxHeight {
		img = imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	}
	return toRGBA(img), nil
}

// Save writes an image; the format follows the file extension.
func Save(img image.Image, path string) error {
	if !Supported(path) {
		return fmt.Errorf("imageio: unsupported format %q", filepath.Ext(path))
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	return nil
}

// FitWithin Lanczos-downscales img to fit inside maxW x maxH, preserving
// aspect ratio. Images already inside the box are returned unchanged.
func FitWithin(img *image.RGBA, maxW, maxH int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return toRGBA(imaging.Fit(img, maxW, maxH, imaging.Lanczos))
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
