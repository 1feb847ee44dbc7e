package presenter

import (
	"testing"
	"time"

	"github.com/soocke/pixel-sorter-go/domain/kiosk"
	"github.com/soocke/pixel-sorter-go/ui/model"
)

type fakePhaseSource struct{ phase kiosk.Phase }

func (f *fakePhaseSource) Current() kiosk.Phase { return f.phase }

type fakePhaseView struct {
	labels []string
	shown  []kiosk.Phase
}

func (f *fakePhaseView) SetPhaseLabel(s string)   { f.labels = append(f.labels, s) }
func (f *fakePhaseView) ShowPhase(ph kiosk.Phase) { f.shown = append(f.shown, ph) }

func TestPhasePresenterReflectsNewestQueuedPhase(t *testing.T) {
	src := &fakePhaseSource{}
	view := &fakePhaseView{}
	p := NewPhasePresenter(src, view)
	p.OnPhase(kiosk.PhaseIdle, kiosk.PhaseLivePreview)
	p.OnPhase(kiosk.PhaseLivePreview, kiosk.PhaseEditing)
	p.Tick(time.Now())
	if len(view.labels) != 1 || view.labels[0] != "editing" {
		t.Fatalf("labels = %v", view.labels)
	}
	if len(view.shown) != 1 || view.shown[0] != kiosk.PhaseEditing {
		t.Fatalf("shown = %v", view.shown)
	}
}

func TestPhasePresenterSkipsRepeatedPhase(t *testing.T) {
	p := NewPhasePresenter(&fakePhaseSource{}, &fakePhaseView{})
	view := &fakePhaseView{}
	p.view = view
	p.OnPhase(kiosk.PhaseIdle, kiosk.PhaseLivePreview)
	p.Tick(time.Now())
	p.OnPhase(kiosk.PhaseEditing, kiosk.PhaseLivePreview)
	p.Tick(time.Now())
	if len(view.labels) != 1 {
		t.Fatalf("labels = %v", view.labels)
	}
	// An empty queue ticks without touching the view.
	p.Tick(time.Now())
	if len(view.labels) != 1 {
		t.Fatal("tick with empty queue updated the view")
	}
}

type fakeSessionView struct {
	durations []time.Duration
	edits     []int
}

func (f *fakeSessionView) SetSession(d time.Duration, edits int) {
	f.durations = append(f.durations, d)
	f.edits = append(f.edits, edits)
}

func TestSessionPresenterTracksNonIdlePhases(t *testing.T) {
	src := &fakePhaseSource{phase: kiosk.PhaseEditing}
	view := &fakeSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), src, view)
	start := time.Now()
	p.Tick(start)
	p.EditSaved()
	p.Tick(start.Add(20 * time.Second))
	if got := view.durations[len(view.durations)-1]; got != 20*time.Second {
		t.Fatalf("duration = %v", got)
	}
	if got := view.edits[len(view.edits)-1]; got != 1 {
		t.Fatalf("edits = %d", got)
	}
	src.phase = kiosk.PhaseIdle
	p.Tick(start.Add(30 * time.Second))
	if got := view.durations[len(view.durations)-1]; got != 30*time.Second {
		t.Fatalf("closing duration = %v", got)
	}
}
