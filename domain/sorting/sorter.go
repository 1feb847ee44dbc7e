package sorting

import (
	"context"
	"image"
	"math"
	"runtime"
	"sort"
	"sync"
)

// Number of angularly spaced rays used by the radial traversal (10 degree
// increments).
const radialRays = 36

// Sorter applies the pixel-sorting transform. It holds no mutable state,
// so a single instance may be shared by any number of goroutines as long
// as each call owns its input raster.
type Sorter struct {
	workers int
}

// NewSorter returns a sorter that fans independent rows and columns out to
// one worker per CPU.
func NewSorter() *Sorter {
	return &Sorter{workers: runtime.NumCPU()}
}

// SortPixels returns a new raster with pixels reordered inside
// brightness-delimited runs along the selected traversal. The input is
// never mutated. When params carries a non-zero HueShift the whole buffer
// is hue-rotated before interval detection, which changes luminance and
// therefore the sort order. The post-sort tint blend is deliberately NOT
// applied here; callers chain ApplyTint separately.
func (s *Sorter) SortPixels(src *Raster, alg Algorithm, p Params) *Raster {
	out, _ := s.SortPixelsContext(context.Background(), src, alg, p)
	return out
}

// SortPixelsContext is SortPixels with cooperative cancellation: the
// traversal checks ctx between line passes and returns ctx.Err() when the
// job has been superseded. The partially sorted buffer is discarded.
func (s *Sorter) SortPixelsContext(ctx context.Context, src *Raster, alg Algorithm, p Params) (*Raster, error) {
	p = p.Clamp()
	out := src.Clone()
	if p.HueShift != 0 {
		ApplyHueShift(out, p.HueShift)
	}
	var err error
	switch alg {
	case Horizontal:
		err = s.sortHorizontal(ctx, out, p.Threshold)
	case Vertical:
		err = s.sortVertical(ctx, out, p.Threshold)
	case Diagonal:
		err = s.sortDiagonal(ctx, out, p.Threshold)
	case Radial:
		err = s.sortRadial(ctx, out, p.Threshold)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// sortLine sorts the detected intervals of a gathered 1-D sequence in
// place. Pixels outside any interval keep their positions.
func sortLine(line []RGB, threshold float64) {
	for _, sp := range findIntervals(line, threshold) {
		seg := line[sp.start:sp.end]
		sort.Slice(seg, func(a, b int) bool {
			return Luminance(seg[a]) < Luminance(seg[b])
		})
	}
}

// sortHorizontal sorts every row. Rows never share pixels, so they are
// distributed across the worker pool.
func (s *Sorter) sortHorizontal(ctx context.Context, r *Raster, threshold float64) error {
	return s.parallelLines(ctx, r.H, func(y int, line []RGB) {
		for x := 0; x < r.W; x++ {
			line[x] = r.RGB(x, y)
		}
		sortLine(line[:r.W], threshold)
		for x := 0; x < r.W; x++ {
			r.SetRGB(x, y, line[x])
		}
	}, r.W)
}

// sortVertical sorts every column, one worker per column batch.
func (s *Sorter) sortVertical(ctx context.Context, r *Raster, threshold float64) error {
	return s.parallelLines(ctx, r.W, func(x int, line []RGB) {
		for y := 0; y < r.H; y++ {
			line[y] = r.RGB(x, y)
		}
		sortLine(line[:r.H], threshold)
		for y := 0; y < r.H; y++ {
			r.SetRGB(x, y, line[y])
		}
	}, r.H)
}

// parallelLines runs fn for indices 0..n-1 on the worker pool. Each worker
// reuses a single gather buffer of lineLen pixels. Cancellation is checked
// when dequeuing, so at most one extra line per worker completes after the
// context fires.
func (s *Sorter) parallelLines(ctx context.Context, n int, fn func(i int, line []RGB), lineLen int) error {
	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	idxCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			line := make([]RGB, lineLen)
			for i := range idxCh {
				fn(i, line)
			}
		}()
	}
	var err error
feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case idxCh <- i:
		}
	}
	close(idxCh)
	wg.Wait()
	return err
}

// sortDiagonal sorts every top-left to bottom-right diagonal, covering
// offsets -(H-1)..(W-1). Diagonals are processed sequentially: unlike rows
// and columns, path-based traversals may revisit coordinates and the
// scatter step writes individual pixels.
func (s *Sorter) sortDiagonal(ctx context.Context, r *Raster, threshold float64) error {
	w, h := r.W, r.H
	coords := make([]image.Point, 0, min(w, h))
	for offset := -(h - 1); offset <= w-1; offset++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		coords = coords[:0]
		if offset >= 0 {
			for i := 0; i < h && i+offset < w; i++ {
				coords = append(coords, image.Pt(i+offset, i))
			}
		} else {
			for i := 0; i < w && i-offset < h; i++ {
				coords = append(coords, image.Pt(i, i-offset))
			}
		}
		s.sortPath(r, coords, threshold)
	}
	return nil
}

// sortRadial sorts along rays emanating from the image center, walked
// outward from radius 1 to min(cx, cy) with nearest-pixel sampling.
// Samples falling outside the raster are skipped; extreme corner pixels
// that no ray reaches are left unchanged, a known property of the fixed
// ray count rather than a defect.
func (s *Sorter) sortRadial(ctx context.Context, r *Raster, threshold float64) error {
	cx, cy := r.W/2, r.H/2
	maxRadius := min(cx, cy)
	coords := make([]image.Point, 0, maxRadius)
	for ray := 0; ray < radialRays; ray++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rad := float64(ray) * (360.0 / radialRays) * math.Pi / 180
		sin, cos := math.Sincos(rad)
		coords = coords[:0]
		for radius := 1; radius < maxRadius; radius++ {
			x := int(float64(cx) + float64(radius)*cos)
			y := int(float64(cy) + float64(radius)*sin)
			if x < 0 || x >= r.W || y < 0 || y >= r.H {
				continue
			}
			coords = append(coords, image.Pt(x, y))
		}
		s.sortPath(r, coords, threshold)
	}
	return nil
}

// sortPath gathers pixels along explicit coordinates, sorts the detected
// intervals and scatters them back.
func (s *Sorter) sortPath(r *Raster, coords []image.Point, threshold float64) {
	if len(coords) <= 1 {
		return
	}
	line := make([]RGB, len(coords))
	for i, pt := range coords {
		line[i] = r.RGB(pt.X, pt.Y)
	}
	sortLine(line, threshold)
	for i, pt := range coords {
		r.SetRGB(pt.X, pt.Y, line[i])
	}
}
