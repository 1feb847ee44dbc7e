package sorting

// Params is the per-invocation parameter set. Values are copied into each
// job; the engine never mutates them.
type Params struct {
	// Threshold is the brightness-delta gate for interval boundaries,
	// in [0, 255].
	Threshold float64
	// HueShift rotates every pixel's hue by this many degrees before
	// interval detection. Zero disables the effect.
	HueShift float64
	// ColorTint is the hue, in degrees, of the post-sort tint blend.
	// Zero is a valid hue (red), so the blend has its own enable flag.
	ColorTint float64
	// TintEnabled turns the post-sort tint blend on.
	TintEnabled bool
}

// DefaultParams returns the kiosk startup parameters.
func DefaultParams() Params {
	return Params{Threshold: 50}
}

// Clamp normalizes out-of-domain values: threshold into [0, 255], hue and
// tint wrapped into [0, 360).
func (p Params) Clamp() Params {
	if p.Threshold < 0 {
		p.Threshold = 0
	} else if p.Threshold > 255 {
		p.Threshold = 255
	}
	p.HueShift = wrapDegrees(p.HueShift)
	p.ColorTint = wrapDegrees(p.ColorTint)
	return p
}

func wrapDegrees(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}
