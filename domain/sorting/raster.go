package sorting

import (
	"fmt"
	"image"
)

// RGB is a single 8-bit-per-channel pixel value.
type RGB struct{ R, G, B uint8 }

// Raster is a tightly packed row-major RGB8 image buffer. It is the only
// pixel representation the sorting engine operates on; decoded frames are
// converted at the application boundary. Each transform stage owns its
// raster exclusively and produces a fresh one, so rasters are never shared
// mutably between stages.
type Raster struct {
	W, H int
	Pix  []uint8 // length 3*W*H, stride 3*W
}

// NewRaster allocates a zeroed raster. Dimensions must be positive; callers
// are responsible for rejecting degenerate images before they reach the
// engine.
func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sorting: invalid raster dimensions %dx%d", w, h)
	}
	return &Raster{W: w, H: h, Pix: make([]uint8, 3*w*h)}, nil
}

// FromImage converts any decoded image into a packed RGB raster,
// discarding alpha.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("sorting: nil image")
	}
	b := img.Bounds()
	r, err := NewRaster(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	// Fast path for the common RGBA case to avoid the color.Color boxing
	// cost on full camera frames.
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < r.H; y++ {
			src := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride:]
			dst := r.Pix[y*r.W*3:]
			for x := 0; x < r.W; x++ {
				si := (x + b.Min.X - rgba.Rect.Min.X) * 4
				di := x * 3
				dst[di], dst[di+1], dst[di+2] = src[si], src[si+1], src[si+2]
			}
		}
		return r, nil
	}
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			cr, cg, cb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			r.SetRGB(x, y, RGB{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)})
		}
	}
	return r, nil
}

// Clone returns a deep copy. Every engine entry point clones its input so
// the caller's raster is never mutated.
func (r *Raster) Clone() *Raster {
	out := &Raster{W: r.W, H: r.H, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// RGB returns the pixel at (x, y). Bounds are not checked; traversal code
// guarantees coordinates are inside the raster.
func (r *Raster) RGB(x, y int) RGB {
	i := (y*r.W + x) * 3
	return RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

// SetRGB writes the pixel at (x, y).
func (r *Raster) SetRGB(x, y int, c RGB) {
	i := (y*r.W + x) * 3
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

// Bounds reports the raster extent as an image.Rectangle anchored at the
// origin.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.W, r.H) }

// ToRGBA converts the raster into an opaque *image.RGBA for display or
// encoding.
func (r *Raster) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		si := y * r.W * 3
		di := y * out.Stride
		for x := 0; x < r.W; x++ {
			out.Pix[di] = r.Pix[si]
			out.Pix[di+1] = r.Pix[si+1]
			out.Pix[di+2] = r.Pix[si+2]
			out.Pix[di+3] = 0xff
			si += 3
			di += 4
		}
	}
	return out
}
