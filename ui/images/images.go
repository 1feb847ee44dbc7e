package images

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src so the result fits within maxW x maxH preserving
// aspect ratio. If the source already fits, the original is returned.
// Bilinear is fast enough for display-rate preview updates on a Pi.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// CropCenter returns the centered w x h sub-region of frame, clamped to
// frame bounds and guaranteed at least 1x1. The result is always a fresh
// *image.RGBA with zero-based bounds.
func CropCenter(frame *image.RGBA, w, h int) (*image.RGBA, error) {
	if frame == nil {
		return nil, errors.New("nil frame")
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b := frame.Bounds()
	if w > b.Dx() {
		w = b.Dx()
	}
	if h > b.Dy() {
		h = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-w)/2
	y0 := b.Min.Y + (b.Dy()-h)/2
	roi := image.Rect(x0, y0, x0+w, y0+h)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Copy(out, image.Point{}, frame, roi, xdraw.Src, nil)
	return out, nil
}
