package sorting

import "math"

// Tint blend strength. Nominal strength is attenuated for near-black and
// near-white pixels so blacks and whites are not visibly recolored.
const (
	tintStrength      = 0.2
	tintAttenuation   = 0.3
	tintLumLowCutoff  = 0.1
	tintLumHighCutoff = 0.9
)

// ApplyHueShift rotates every pixel's hue by degrees, in place. Conversion
// goes RGB -> HSV -> RGB with the hue wrapped into [0, 360); results are
// rounded to the nearest 8-bit value and clamped.
func ApplyHueShift(r *Raster, degrees float64) {
	for i := 0; i < len(r.Pix); i += 3 {
		c := shiftHue(RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}, degrees)
		r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
	}
}

// shiftHue rotates a single pixel's hue using the hexcone HSV model.
func shiftHue(c RGB, degrees float64) RGB {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	s := 0.0
	if max > 0 {
		s = delta / max
	}
	v := max

	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return hsvToRGB(h, s, v)
}

// HueToRGB converts a hue in degrees to its fully saturated, full-value
// RGB color. Used to derive the fixed tint color for the post-sort blend.
func HueToRGB(degrees float64) RGB {
	return hsvToRGB(wrapDegrees(degrees), 1, 1)
}

func hsvToRGB(h, s, v float64) RGB {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{clamp8((r + m) * 255), clamp8((g + m) * 255), clamp8((b + m) * 255)}
}

// ApplyTint blends every pixel toward the tint color for the given hue, in
// place. The blend multiplies the tint's channel values against the
// original channels rather than interpolating linearly:
//
//	final = orig*(1-s) + orig*tint*s
//
// with channels normalized to [0,1]. Strength drops to 30% of nominal for
// pixels whose own luminance is below 0.1 or above 0.9, preserving
// near-black and near-white tones. Intended as a separate post-sort step
// so it can be toggled independently of the pre-sort hue shift.
func ApplyTint(r *Raster, degrees float64) {
	tint := HueToRGB(degrees)
	tr := float64(tint.R) / 255
	tg := float64(tint.G) / 255
	tb := float64(tint.B) / 255
	for i := 0; i < len(r.Pix); i += 3 {
		or := float64(r.Pix[i]) / 255
		og := float64(r.Pix[i+1]) / 255
		ob := float64(r.Pix[i+2]) / 255

		lum := 0.299*or + 0.587*og + 0.114*ob
		s := tintStrength
		if lum < tintLumLowCutoff || lum > tintLumHighCutoff {
			s *= tintAttenuation
		}

		r.Pix[i] = clamp8((or*(1-s) + or*tr*s) * 255)
		r.Pix[i+1] = clamp8((og*(1-s) + og*tg*s) * 255)
		r.Pix[i+2] = clamp8((ob*(1-s) + ob*tb*s) * 255)
	}
}

// clamp8 rounds to the nearest integer and clamps to the 8-bit range.
// Saturating here is a correctness requirement: HSV round trips can land
// a fraction outside [0,255] and must not wrap.
func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
