package sorting

// Luminance returns the ITU-R BT.601 luma of a pixel. It is both the
// interval-boundary signal and the sort key, so the exact constants matter
// for reproducible output.
func Luminance(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// span is a half-open [start, end) index range into a 1-D pixel sequence.
type span struct{ start, end int }

// findIntervals walks a 1-D pixel sequence and emits the sortable runs: a
// new boundary starts wherever the luma delta between neighbours exceeds
// threshold, and only runs spanning more than one pixel are kept
// (singletons are not sortable). The trailing run is emitted under the
// same length rule. Sequences of length <= 1 yield no intervals.
func findIntervals(line []RGB, threshold float64) []span {
	if len(line) <= 1 {
		return nil
	}
	var out []span
	start := 0
	prev := Luminance(line[0])
	for i := 1; i < len(line); i++ {
		cur := Luminance(line[i])
		d := cur - prev
		if d < 0 {
			d = -d
		}
		if d > threshold {
			if i-start > 1 {
				out = append(out, span{start, i})
			}
			start = i
		}
		prev = cur
	}
	if len(line)-start > 1 {
		out = append(out, span{start, len(line)})
	}
	return out
}
