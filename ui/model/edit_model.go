package model

import (
	"github.com/soocke/pixel-sorter-go/domain/sorting"
)

// EditModel tracks the image being edited and the active sort settings.
// It is decoupled from the UI; presenters mutate it from UI callbacks and
// read it on ticks, all on the Tk event thread.
type EditModel struct {
	source    *sorting.Raster
	sourceGen uint64
	algorithm sorting.Algorithm
	params    sorting.Params
	result    *sorting.Raster
	dirty     bool
}

// NewEditModel returns a model with default sort settings.
func NewEditModel() *EditModel {
	return &EditModel{params: sorting.DefaultParams()}
}

// SetSource installs a new image to edit, bumps the source generation and
// clears any stale result.
func (m *EditModel) SetSource(r *sorting.Raster) {
	if m == nil {
		return
	}
	m.source = r
	m.sourceGen++
	m.result = nil
	m.dirty = r != nil
}

// Source returns the current source raster and its generation counter.
func (m *EditModel) Source() (*sorting.Raster, uint64) {
	if m == nil {
		return nil, 0
	}
	return m.source, m.sourceGen
}

// Algorithm returns the active traversal.
func (m *EditModel) Algorithm() sorting.Algorithm {
	if m == nil {
		return sorting.Horizontal
	}
	return m.algorithm
}

// CycleAlgorithm advances to the next traversal and marks the model dirty.
func (m *EditModel) CycleAlgorithm() sorting.Algorithm {
	if m == nil {
		return sorting.Horizontal
	}
	m.algorithm = m.algorithm.Next()
	m.dirty = m.source != nil
	return m.algorithm
}

// Params returns the active sort parameters.
func (m *EditModel) Params() sorting.Params {
	if m == nil {
		return sorting.DefaultParams()
	}
	return m.params
}

// SetParams stores new parameters, marking the model dirty when they
// actually changed.
func (m *EditModel) SetParams(p sorting.Params) {
	if m == nil {
		return
	}
	p = p.Clamp()
	if p == m.params {
		return
	}
	m.params = p
	m.dirty = m.source != nil
}

// Dirty reports whether settings changed since the last submitted sort.
func (m *EditModel) Dirty() bool { return m != nil && m.dirty }

// ClearDirty acknowledges that the current settings were submitted.
func (m *EditModel) ClearDirty() {
	if m != nil {
		m.dirty = false
	}
}

// SetResult stores the latest completed sort output.
func (m *EditModel) SetResult(r *sorting.Raster) {
	if m != nil {
		m.result = r
	}
}

// Result returns the latest completed sort output, nil when none yet.
func (m *EditModel) Result() *sorting.Raster {
	if m == nil {
		return nil
	}
	return m.result
}

// ChainResult promotes the latest result to the new source so further
// edits sort on top of it instead of the capture. The model is left
// clean: the sorted image stays on screen until the next adjustment.
// No-op when there is nothing to promote.
func (m *EditModel) ChainResult() bool {
	if m == nil || m.result == nil {
		return false
	}
	m.source = m.result
	m.sourceGen++
	m.result = nil
	m.dirty = false
	return true
}
