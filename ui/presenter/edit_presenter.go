package presenter

import (
	"time"

	"github.com/soocke/pixel-sorter-go/domain/sorting"
	"github.com/soocke/pixel-sorter-go/ui/model"
)

// SortService narrows what the presenter needs from the sorting layer.
type SortService interface {
	Submit(src *sorting.Raster, alg sorting.Algorithm, p sorting.Params) string
	Results() <-chan sorting.Result
}

// EditFSM exposes the kiosk events the edit flow raises.
type EditFSM interface {
	EventSortStarted()
	EventSortFinished()
	Touch()
}

// EditView displays sorted output and the active settings.
type EditView interface {
	UpdateEdit(r *sorting.Raster)
	SetAlgorithmLabel(string)
	SetBusy(bool)
}

// EditPresenter submits sort jobs when settings change and reflects
// completed results back to the view. Completed previews are cached so
// revisiting settings within a session is instant.
type EditPresenter struct {
	m       *model.EditModel
	service SortService
	fsm     EditFSM
	view    EditView
	cache   *sorting.PreviewCache

	// jobKeys maps in-flight job IDs to their cache keys.
	jobKeys    map[string]string
	currentKey string
	busy       bool
}

func NewEditPresenter(m *model.EditModel, service SortService, fsm EditFSM, view EditView, cache *sorting.PreviewCache) *EditPresenter {
	return &EditPresenter{m: m, service: service, fsm: fsm, view: view, cache: cache, jobKeys: make(map[string]string)}
}

// CycleAlgorithm advances the traversal from a UI callback.
func (p *EditPresenter) CycleAlgorithm() {
	if p == nil || p.m == nil {
		return
	}
	alg := p.m.CycleAlgorithm()
	if p.view != nil {
		p.view.SetAlgorithmLabel(alg.Name())
	}
	if p.fsm != nil {
		p.fsm.Touch()
	}
}

// SetThreshold updates the interval threshold from a UI callback.
func (p *EditPresenter) SetThreshold(v float64) { p.updateParams(func(q *sorting.Params) { q.Threshold = v }) }

// SetHueShift updates the pre-sort hue rotation from a UI callback.
func (p *EditPresenter) SetHueShift(v float64) { p.updateParams(func(q *sorting.Params) { q.HueShift = v }) }

// SetColorTint updates the post-sort tint hue from a UI callback.
func (p *EditPresenter) SetColorTint(v float64) { p.updateParams(func(q *sorting.Params) { q.ColorTint = v }) }

func (p *EditPresenter) updateParams(mut func(*sorting.Params)) {
	if p == nil || p.m == nil {
		return
	}
	q := p.m.Params()
	mut(&q)
	p.m.SetParams(q)
	if p.fsm != nil {
		p.fsm.Touch()
	}
}

// Tick submits a job when the model is dirty and drains any completed
// result, dropping those that no longer match the current settings.
func (p *EditPresenter) Tick(now time.Time) {
	if p == nil || p.m == nil || p.service == nil {
		return
	}
	p.drainResults()
	if !p.m.Dirty() {
		return
	}
	src, gen := p.m.Source()
	if src == nil {
		return
	}
	p.m.ClearDirty()
	key := sorting.Key(gen, p.m.Algorithm(), p.m.Params())
	p.currentKey = key
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			p.display(cached)
			return
		}
	}
	id := p.service.Submit(src, p.m.Algorithm(), p.m.Params())
	p.jobKeys[id] = key
	p.setBusy(true)
	if p.fsm != nil {
		p.fsm.EventSortStarted()
	}
}

func (p *EditPresenter) drainResults() {
	for {
		select {
		case res := <-p.service.Results():
			key, ok := p.jobKeys[res.Job.ID]
			if ok {
				delete(p.jobKeys, res.Job.ID)
			}
			if ok && p.cache != nil && res.Output != nil {
				p.cache.Add(key, res.Output)
			}
			p.setBusy(false)
			if p.fsm != nil {
				p.fsm.EventSortFinished()
			}
			if ok && key == p.currentKey {
				p.display(res.Output)
			}
		default:
			return
		}
	}
}

func (p *EditPresenter) display(r *sorting.Raster) {
	if r == nil {
		return
	}
	p.m.SetResult(r)
	p.setBusy(false)
	if p.view != nil {
		p.view.UpdateEdit(r)
	}
}

func (p *EditPresenter) setBusy(b bool) {
	if p.busy == b {
		return
	}
	p.busy = b
	if p.view != nil {
		p.view.SetBusy(b)
	}
}
