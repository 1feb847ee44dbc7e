package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-sorter-go/capture"
	"github.com/soocke/pixel-sorter-go/config"
	"github.com/soocke/pixel-sorter-go/domain/kiosk"
	"github.com/soocke/pixel-sorter-go/domain/session"
	"github.com/soocke/pixel-sorter-go/domain/sorting"
	"github.com/soocke/pixel-sorter-go/gpio"
	"github.com/soocke/pixel-sorter-go/imageio"
	"github.com/soocke/pixel-sorter-go/ui/images"
	"github.com/soocke/pixel-sorter-go/ui/presenter"
	"github.com/soocke/pixel-sorter-go/ui/theme"
	"github.com/soocke/pixel-sorter-go/ui/view"
)

const tick = 100 * time.Millisecond

type app struct {
	c       *AppContainer
	afterID string

	// capturedCh hands finished still captures from worker goroutines to
	// the Tk thread; capacity 1, newest wins.
	capturedCh chan *image.RGBA
	// actionCh bridges GPIO button presses onto the Tk thread.
	actionCh chan gpio.Action
	buttons  *gpio.Buttons
}

func NewApp(title string, cfg *config.Config, logger *slog.Logger) *app {
	a := &app{
		c:          BuildContainer(cfg, logger),
		capturedCh: make(chan *image.RGBA, 1),
		actionCh:   make(chan gpio.Action, 8),
	}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	if cfg.Fullscreen {
		// The kiosk display is a fixed panel; a borderless window at panel
		// size behaves like fullscreen without WM cooperation.
		WmGeometry(App, fmt.Sprintf("%dx%d+0+0", cfg.DisplayWidth, cfg.DisplayHeight))
	} else {
		WmGeometry(App, fmt.Sprintf("%dx%d+50+50", cfg.DisplayWidth, cfg.DisplayHeight))
	}
	return a
}

func (a *app) Start() {
	c := a.c
	theme.InitStyles()

	c.RootView.Build(view.Handlers{
		OnActivate:       a.activate,
		OnCapture:        a.takePhoto,
		OnCycleAlgorithm: c.EditPresenter.CycleAlgorithm,
		OnThresholdDelta: func(d float64) { a.adjust(func(p *sorting.Params) { p.Threshold += d }) },
		OnHueDelta:       func(d float64) { a.adjust(func(p *sorting.Params) { p.HueShift += d }) },
		OnTintDelta:      func(d float64) { a.adjust(func(p *sorting.Params) { p.ColorTint += d; p.TintEnabled = true }) },
		OnTintToggle:     func() { a.adjust(func(p *sorting.Params) { p.TintEnabled = !p.TintEnabled }) },
		OnCrop:           a.cropEdit,
		OnSave:           a.saveEdit,
		OnExport:         a.exportSession,
		OnReset:          a.endSession,
		OnExit:           a.exitHandler,
	})

	c.SortSvc.Start()
	a.buttons = gpio.NewButtons(c.Config, c.Logger, func(act gpio.Action) {
		select {
		case a.actionCh <- act:
		default:
		}
	})
	a.buttons.Start()

	if err := imageio.WriteSamples(c.Config.SampleDir, c.Config.MaxImageWidth/4, c.Config.MaxImageHeight/4); err != nil && c.Logger != nil {
		c.Logger.Warn("sample generation failed", "error", err)
	}

	c.Loop = presenter.NewLoop(
		c.PhasePresenter,
		c.PreviewPresenter,
		c.EditPresenter,
		c.SessionPresenter,
		a.scheduleUpdate,
	)
	a.resumeSession()
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) update() {
	// Drive the kiosk idle timeout.
	if fsm, ok := a.c.FSM.(*kiosk.KioskFSM); ok {
		fsm.Tick(time.Now())
	}

	// Finished still captures.
	select {
	case img := <-a.capturedCh:
		a.installCapture(img)
	default:
	}

	// Hardware button presses.
	for {
		select {
		case act := <-a.actionCh:
			a.dispatchAction(act)
		default:
			a.c.Loop.Tick()
			return
		}
	}
}

func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) dispatchAction(act gpio.Action) {
	switch act {
	case gpio.ActionCapture:
		if a.c.FSM.Current() == kiosk.PhaseIdle {
			a.activate()
		} else {
			a.takePhoto()
		}
	case gpio.ActionNextAlgorithm:
		a.c.EditPresenter.CycleAlgorithm()
	case gpio.ActionThresholdUp:
		a.adjust(func(p *sorting.Params) { p.Threshold += 5 })
	case gpio.ActionThresholdDown:
		a.adjust(func(p *sorting.Params) { p.Threshold -= 5 })
	case gpio.ActionSave:
		a.saveEdit()
	}
}

func (a *app) activate() {
	a.c.FSM.EventActivate()
}

// takePhoto grabs a full-quality frame off the Tk thread and hands the
// result back through capturedCh.
func (a *app) takePhoto() {
	c := a.c
	if c.FSM.Current() != kiosk.PhaseLivePreview {
		return
	}
	c.FSM.Touch()
	go func() {
		img, err := a.acquire()
		if err != nil {
			if c.Logger != nil {
				c.Logger.Error("capture failed", "error", err)
			}
			return
		}
		select {
		case a.capturedCh <- img:
		default:
		}
	}()
}

// acquire returns a photo from the best available source: camera, screen
// grab, or a bundled sample image. Screen grabs take a centered region at
// most the size the editor accepts, so ultrawide monitors do not get
// scaled down to a sliver.
func (a *app) acquire() (*image.RGBA, error) {
	c := a.c
	if c.Camera.Available() {
		return c.Camera.CaptureStill()
	}
	if c.Config.ScreenFallback {
		if w, h, err := capture.Size(); err == nil {
			area := capture.CenteredRegion(w, h, c.Config.MaxImageWidth, c.Config.MaxImageHeight)
			if img, err := capture.GrabRegion(area); err == nil {
				return img, nil
			}
		}
		if img, err := capture.Grab(); err == nil {
			return img, nil
		}
	}
	return imageio.Gradient(c.Config.MaxImageWidth/4, c.Config.MaxImageHeight/4), nil
}

// installCapture runs on the Tk thread: persist the original, seed the
// edit model and advance the kiosk flow.
func (a *app) installCapture(img *image.RGBA) {
	c := a.c
	img = imageio.FitWithin(img, c.Config.MaxImageWidth, c.Config.MaxImageHeight)
	if err := c.Store.Begin(img); err != nil && c.Logger != nil {
		c.Logger.Error("session start failed", "error", err)
	}
	raster, err := sorting.FromImage(img)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Error("capture conversion failed", "error", err)
		}
		return
	}
	if c.Cache != nil {
		c.Cache.Purge()
	}
	c.Edit.SetSource(raster)
	c.RootView.ShowParams(c.Edit.Params())
	c.FSM.EventCaptured()
}

func (a *app) adjust(mut func(*sorting.Params)) {
	c := a.c
	p := c.Edit.Params()
	mut(&p)
	p = p.Clamp()
	c.Edit.SetParams(p)
	c.FSM.Touch()
	c.RootView.ShowParams(c.Edit.Params())
}

func (a *app) saveEdit() {
	c := a.c
	result := c.Edit.Result()
	if result == nil {
		return
	}
	c.FSM.EventSaveStarted()
	path, err := c.Store.SaveEdit(result.ToRGBA(), c.Edit.Algorithm().Name())
	if err != nil {
		if c.Logger != nil {
			c.Logger.Error("save failed", "error", err)
		}
	} else {
		c.SessionPresenter.EditSaved()
		// Saved edits become the new source, so the visitor keeps
		// sorting on top of what they just kept.
		c.Edit.ChainResult()
		if c.Logger != nil {
			c.Logger.Info("edit saved", "path", path)
		}
	}
	c.FSM.EventSaveFinished()
}

// cropEdit trims the working image to its centered four fifths and makes
// the crop the new source. Repeated presses zoom further in until the
// image would drop below what the editor accepts.
func (a *app) cropEdit() {
	c := a.c
	src, _ := c.Edit.Source()
	if src == nil {
		return
	}
	b := src.Bounds()
	w, h := b.Dx()*4/5, b.Dy()*4/5
	if w < imageio.MinDimension || h < imageio.MinDimension {
		return
	}
	cropped, err := images.CropCenter(src.ToRGBA(), w, h)
	if err != nil {
		return
	}
	raster, err := sorting.FromImage(cropped)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Error("crop conversion failed", "error", err)
		}
		return
	}
	c.Edit.SetSource(raster)
	c.FSM.Touch()
}

// resumeSession reopens a session folder left behind by a power cycle so
// the visitor can pick their edits back up where the kiosk died.
func (a *app) resumeSession() {
	c := a.c
	ok, err := c.Store.Resume()
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("session resume failed", "error", err)
		}
		return
	}
	if !ok {
		return
	}
	img, err := c.Store.LoadLastEdit()
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("resumed session has no loadable image", "error", err)
		}
		c.Store.Close()
		return
	}
	raster, err := sorting.FromImage(img)
	if err != nil {
		c.Store.Close()
		return
	}
	c.Edit.SetSource(raster)
	c.RootView.ShowParams(c.Edit.Params())
	c.RootView.UpdatePreview(img)
	c.FSM.EventResumed()
}

func (a *app) exportSession() {
	c := a.c
	mount := session.FindUSBMount()
	if mount == "" {
		if c.Logger != nil {
			c.Logger.Warn("no usb stick found for export")
		}
		return
	}
	if _, err := c.Store.Export(mount); err != nil && c.Logger != nil {
		c.Logger.Error("export failed", "error", err)
	}
}

func (a *app) endSession() {
	c := a.c
	c.Store.Close()
	c.Edit.SetSource(nil)
	if c.Cache != nil {
		c.Cache.Purge()
	}
	c.FSM.EventReset()
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.buttons != nil {
		a.buttons.Stop()
	}
	a.c.SortSvc.Stop()
	a.c.Camera.Stop()
	a.c.FSM.Close()
	Destroy(App)
}
