package app

import (
	"log/slog"

	"github.com/soocke/pixel-sorter-go/camera"
	"github.com/soocke/pixel-sorter-go/config"
	"github.com/soocke/pixel-sorter-go/domain/kiosk"
	"github.com/soocke/pixel-sorter-go/domain/session"
	"github.com/soocke/pixel-sorter-go/domain/sorting"
	"github.com/soocke/pixel-sorter-go/ui/model"
	"github.com/soocke/pixel-sorter-go/ui/presenter"
	"github.com/soocke/pixel-sorter-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	// Models
	Capture *model.CaptureModel
	Session *model.SessionModel
	Edit    *model.EditModel

	// Services
	Camera  *camera.Controller
	SortSvc *sorting.Service
	Cache   *sorting.PreviewCache
	Store   *session.Store
	FSM     kiosk.KioskFSMContract

	// View
	RootView *view.RootView
	UI       view.UI

	// Presenters
	PhasePresenter   *presenter.PhasePresenter
	PreviewPresenter *presenter.PreviewPresenter
	EditPresenter    *presenter.EditPresenter
	SessionPresenter *presenter.SessionPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Side effects are limited to
// camera probing; nothing starts streaming or sorting yet.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Capture = &model.CaptureModel{}
	c.Session = model.NewSessionModel()
	c.Edit = model.NewEditModel()
	c.Edit.SetParams(sorting.Params{
		Threshold:   cfg.Threshold,
		HueShift:    cfg.HueShift,
		ColorTint:   cfg.ColorTint,
		TintEnabled: cfg.TintEnabled,
	})

	c.Camera = camera.NewController(cfg, logger)
	c.SortSvc = sorting.NewService(logger, sorting.NewSorter())
	if cache, err := sorting.NewPreviewCache(cfg.PreviewCache); err == nil {
		c.Cache = cache
	} else if logger != nil {
		logger.Warn("preview cache disabled", "error", err)
	}
	c.Store = session.NewStore(cfg.OutputDir, logger)

	c.FSM = kiosk.NewFSM(logger, 0, kiosk.ActionCallbacks{
		StartStream: func() {
			c.Camera.Start()
			c.Capture.SetStreaming(true)
		},
		StopStream: func() {
			c.Capture.SetStreaming(false)
			c.Camera.Stop()
		},
	})

	// View
	c.RootView = view.NewRootView(cfg, logger)
	// UI built externally once Tk is initialized.
	c.UI = c.RootView

	// Presenters
	c.PhasePresenter = presenter.NewPhasePresenter(c.FSM, c.RootView)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Camera, c.Capture, c.RootView)
	c.EditPresenter = presenter.NewEditPresenter(c.Edit, c.SortSvc, c.FSM, c.RootView, c.Cache)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.FSM, c.RootView)
	c.FSM.AddListener(c.PhasePresenter.OnPhase)
	return c
}
