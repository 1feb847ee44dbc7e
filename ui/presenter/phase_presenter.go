package presenter

import (
	"sync"
	"time"

	"github.com/soocke/pixel-sorter-go/domain/kiosk"
)

// PhaseSource provides the kiosk FSM methods the presenter requires.
type PhaseSource interface {
	Current() kiosk.Phase
}

// PhaseView sets the phase label and swaps panel visibility.
type PhaseView interface {
	SetPhaseLabel(string)
	ShowPhase(kiosk.Phase)
}

// PhasePresenter receives kiosk phase changes and updates the view.
// Listener callbacks arrive on the FSM goroutine; they are queued here and
// flushed to the view on the next Tick, which runs on the Tk event thread.
type PhasePresenter struct {
	eng     PhaseSource
	view    PhaseView
	mu      sync.Mutex // guards pending; OnPhase runs on the FSM goroutine
	latest  kiosk.Phase
	started bool
	pending []kiosk.Phase
}

func NewPhasePresenter(eng PhaseSource, view PhaseView) *PhasePresenter {
	return &PhasePresenter{eng: eng, view: view}
}

// OnPhase queues a transitioned phase from the FSM listener.
//
// The latest queued phase will be reflected on the next Tick.
func (p *PhasePresenter) OnPhase(_, next kiosk.Phase) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, next)
	p.mu.Unlock()
}

// Tick processes queued phases and updates the view with the most recent.
// It clears the pending queue after processing.
func (p *PhasePresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	var last kiosk.Phase
	have := len(p.pending) > 0
	if have {
		last = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	p.mu.Unlock()
	if !have {
		return
	}
	if p.started && last == p.latest {
		return
	}
	p.latest = last
	p.started = true
	p.view.SetPhaseLabel(last.String())
	p.view.ShowPhase(last)
}
