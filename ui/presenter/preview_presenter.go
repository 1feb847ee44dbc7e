package presenter

import (
	"image"
	"time"

	"github.com/soocke/pixel-sorter-go/camera"
)

// FrameSource narrows what the presenter needs from the camera layer.
type FrameSource interface {
	LatestFrame() camera.Snapshot
	Running() bool
}

// StreamingModel reports whether the live preview should be drawn.
type StreamingModel interface{ Streaming() bool }

// PreviewView displays live camera frames.
type PreviewView interface {
	UpdatePreview(img image.Image)
}

// PreviewPresenter pushes fresh camera frames to the view on each tick,
// skipping redraws when no new frame arrived since the last one.
type PreviewPresenter struct {
	source   FrameSource
	model    StreamingModel
	view     PreviewView
	lastSeq  uint64
	lastDraw time.Time
}

func NewPreviewPresenter(source FrameSource, model StreamingModel, view PreviewView) *PreviewPresenter {
	return &PreviewPresenter{source: source, model: model, view: view}
}

// Tick draws the newest frame when streaming is active. Sequence 0 frames
// are synthetic placeholders and are redrawn at most every 100ms to keep
// the test pattern animating without burning CPU.
func (p *PreviewPresenter) Tick(now time.Time) {
	if p == nil || p.source == nil || p.model == nil || p.view == nil {
		return
	}
	if !p.model.Streaming() {
		return
	}
	snap := p.source.LatestFrame()
	if snap.Image == nil {
		return
	}
	if snap.Sequence == 0 {
		if now.Sub(p.lastDraw) < 100*time.Millisecond {
			return
		}
	} else if snap.Sequence == p.lastSeq {
		return
	}
	p.lastSeq = snap.Sequence
	p.lastDraw = now
	p.view.UpdatePreview(snap.Image)
}
