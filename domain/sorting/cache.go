package sorting

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PreviewCache memoizes sorted output per (source generation, algorithm,
// parameters) so cycling back to an algorithm on the same capture replays
// instantly instead of re-sorting. Entries hold full rasters, hence the
// small default capacity.
type PreviewCache struct {
	lru *lru.Cache[string, *Raster]
}

// NewPreviewCache returns a cache holding up to size rasters.
func NewPreviewCache(size int) (*PreviewCache, error) {
	if size < 1 {
		size = 8
	}
	c, err := lru.New[string, *Raster](size)
	if err != nil {
		return nil, fmt.Errorf("sorting: preview cache: %w", err)
	}
	return &PreviewCache{lru: c}, nil
}

// Key derives the cache key for a source generation and sort settings.
// sourceGen must change whenever the underlying image changes.
func Key(sourceGen uint64, alg Algorithm, p Params) string {
	p = p.Clamp()
	return fmt.Sprintf("%d|%s|%.3f|%.3f|%.3f|%t", sourceGen, alg.Name(), p.Threshold, p.HueShift, p.ColorTint, p.TintEnabled)
}

// Get returns the cached raster for key, if present.
func (c *PreviewCache) Get(key string) (*Raster, bool) {
	if c == nil || c.lru == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

// Add stores a sorted raster under key.
func (c *PreviewCache) Add(key string, r *Raster) {
	if c == nil || c.lru == nil || r == nil {
		return
	}
	c.lru.Add(key, r)
}

// Purge drops every entry, e.g. when a new session begins.
func (c *PreviewCache) Purge() {
	if c != nil && c.lru != nil {
		c.lru.Purge()
	}
}
