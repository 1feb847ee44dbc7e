package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pixel-sorter-go/config"
	"github.com/soocke/pixel-sorter-go/domain/kiosk"
	"github.com/soocke/pixel-sorter-go/domain/sorting"
)

// RootView composes the top-level kiosk layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Image    ImagePanel
	Controls ControlsPanel
	Status   StatusBar
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetPhaseLabel(text string)
	ShowPhase(p kiosk.Phase)
	UpdatePreview(img image.Image)
	UpdateEdit(r *sorting.Raster)
	SetAlgorithmLabel(name string)
	SetBusy(bool)
	SetSession(duration time.Duration, edits int)
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout: image panel left spanning most of the
// window, control column right, status bar along the bottom.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	rv.Image = NewImagePanel(0, 0, 1)
	if rv.cfg != nil {
		rv.Image.SetTargetSize(rv.cfg.DisplayWidth-220, rv.cfg.DisplayHeight-80)
	}
	rv.Controls, _ = NewControlsPanel(1, 0, h)
	rv.Status = NewStatusBar(12, 2)
	rv.Controls.SetEditingEnabled(false)
}

// SetPhaseLabel updates the status bar phase text.
func (rv *RootView) SetPhaseLabel(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetPhase(text)
	}
}

// ShowPhase adjusts which controls are live for the given phase.
func (rv *RootView) ShowPhase(p kiosk.Phase) {
	if rv == nil || rv.Controls == nil {
		return
	}
	switch p {
	case kiosk.PhaseEditing, kiosk.PhaseProcessing:
		rv.Controls.SetEditingEnabled(true)
	case kiosk.PhaseIdle:
		rv.Controls.SetEditingEnabled(false)
		if rv.Image != nil {
			rv.Image.Reset()
		}
	default:
		rv.Controls.SetEditingEnabled(false)
	}
}

// UpdatePreview proxies live camera frames to the image panel.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Image != nil {
		rv.Image.Update(img)
	}
}

// UpdateEdit renders a completed sort result.
func (rv *RootView) UpdateEdit(r *sorting.Raster) {
	if rv == nil || rv.Image == nil || r == nil {
		return
	}
	rv.Image.Update(r.ToRGBA())
}

// SetAlgorithmLabel proxies to the controls panel.
func (rv *RootView) SetAlgorithmLabel(name string) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetAlgorithm(name)
	}
}

// SetBusy proxies the sorting indicator to the status bar.
func (rv *RootView) SetBusy(b bool) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetBusy(b)
	}
}

// SetSession updates the session stats display.
func (rv *RootView) SetSession(d time.Duration, edits int) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetSession(d, edits)
	}
}

// ShowParams reflects the current sort parameters on the stepper labels.
func (rv *RootView) ShowParams(p sorting.Params) {
	if rv == nil || rv.Controls == nil {
		return
	}
	rv.Controls.SetThreshold(p.Threshold)
	rv.Controls.SetHueShift(p.HueShift)
	rv.Controls.SetColorTint(p.ColorTint)
	rv.Controls.SetTintEnabled(p.TintEnabled)
}

// Ensure contract satisfaction
var _ UI = (*RootView)(nil)
