package sorting

// Algorithm selects the traversal strategy used to linearize the raster
// into 1-D pixel sequences. The set is closed; the kiosk cycles through it
// with a single button.
type Algorithm int

const (
	Horizontal Algorithm = iota
	Vertical
	Diagonal
	Radial
)

// All returns every algorithm in cycling order.
func All() []Algorithm { return []Algorithm{Horizontal, Vertical, Diagonal, Radial} }

// Name returns the display name shown on the kiosk button and used in
// auto-save filenames.
func (a Algorithm) Name() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Diagonal:
		return "Diagonal"
	case Radial:
		return "Radial"
	default:
		return "Unknown"
	}
}

func (a Algorithm) String() string { return a.Name() }

// Next returns the following algorithm, wrapping from the last back to the
// first.
func (a Algorithm) Next() Algorithm {
	all := All()
	for i, v := range all {
		if v == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
