package gpio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/soocke/pixel-sorter-go/config"
)

// Action identifies one physical kiosk button.
type Action int

const (
	ActionCapture Action = iota
	ActionNextAlgorithm
	ActionThresholdUp
	ActionThresholdDown
	ActionSave
)

func (a Action) String() string {
	switch a {
	case ActionCapture:
		return "capture"
	case ActionNextAlgorithm:
		return "next_algorithm"
	case ActionThresholdUp:
		return "threshold_up"
	case ActionThresholdDown:
		return "threshold_down"
	case ActionSave:
		return "save"
	default:
		return "unknown"
	}
}

// Handler is invoked once per debounced button press. Calls arrive on the
// per-pin watcher goroutine; implementations must hand off to the UI
// thread themselves.
type Handler func(Action)

// Buttons watches the hardware push buttons wired to the Pi header.
// Buttons are wired between pin and ground with the internal pull-up, so
// a press reads as a falling edge. On machines without GPIO hardware the
// service degrades to an inert simulation mode so the desktop build runs
// unchanged.
type Buttons struct {
	logger   *slog.Logger
	debounce time.Duration
	pins     map[Action]gpio.PinIO
	handler  Handler

	running atomic.Bool
	wg      sync.WaitGroup

	presses atomic.Uint64
	bounces atomic.Uint64
}

// Stats summarises button activity for instrumentation.
type Stats struct {
	Presses uint64
	Bounces uint64
}

// NewButtons resolves the configured pins. A failed host init or missing
// pin logs a warning and leaves that button (or all of them) unbound.
func NewButtons(cfg *config.Config, logger *slog.Logger, handler Handler) *Buttons {
	b := &Buttons{
		logger:   logger,
		debounce: time.Duration(cfg.GPIODebounceMillis) * time.Millisecond,
		pins:     make(map[Action]gpio.PinIO),
		handler:  handler,
	}
	if b.debounce <= 0 {
		b.debounce = 50 * time.Millisecond
	}
	if !cfg.GPIOEnabled {
		return b
	}
	if _, err := host.Init(); err != nil {
		if logger != nil {
			logger.Warn("gpio host init failed; buttons disabled", "error", err)
		}
		return b
	}
	names := map[Action]string{
		ActionCapture:       cfg.PinCapture,
		ActionNextAlgorithm: cfg.PinNextAlgorithm,
		ActionThresholdUp:   cfg.PinThresholdUp,
		ActionThresholdDown: cfg.PinThresholdDown,
		ActionSave:          cfg.PinSave,
	}
	for action, name := range names {
		if name == "" {
			continue
		}
		pin := gpioreg.ByName(name)
		if pin == nil {
			if logger != nil {
				logger.Warn("gpio pin not found", "pin", name, "action", action.String())
			}
			continue
		}
		if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			if logger != nil {
				logger.Warn("gpio pin setup failed", "pin", name, "error", err)
			}
			continue
		}
		b.pins[action] = pin
	}
	if logger != nil {
		logger.Info("gpio buttons initialized", "bound", len(b.pins))
	}
	return b
}

// Simulated reports whether no hardware buttons are bound.
func (b *Buttons) Simulated() bool { return len(b.pins) == 0 }

// Running reports whether the watchers are active.
func (b *Buttons) Running() bool { return b.running.Load() }

// Stats returns press counters.
func (b *Buttons) Stats() Stats {
	return Stats{Presses: b.presses.Load(), Bounces: b.bounces.Load()}
}

// Start launches one watcher goroutine per bound pin. Idempotent.
func (b *Buttons) Start() {
	if !b.running.CompareAndSwap(false, true) {
		return
	}
	for action, pin := range b.pins {
		b.wg.Add(1)
		go b.watch(action, pin)
	}
}

// Stop halts the watchers and waits for them to drain. Idempotent.
func (b *Buttons) Stop() {
	if !b.running.CompareAndSwap(true, false) {
		return
	}
	b.wg.Wait()
}

func (b *Buttons) watch(action Action, pin gpio.PinIO) {
	defer b.wg.Done()
	var lastPress time.Time
	for b.running.Load() {
		// Bounded wait so Stop is noticed without an edge arriving.
		if !pin.WaitForEdge(250 * time.Millisecond) {
			continue
		}
		if pin.Read() != gpio.Low {
			continue
		}
		now := time.Now()
		if now.Sub(lastPress) < b.debounce {
			b.bounces.Add(1)
			continue
		}
		lastPress = now
		b.presses.Add(1)
		if b.logger != nil {
			b.logger.Debug("button press", "action", action.String())
		}
		if b.handler != nil {
			b.handler(action)
		}
	}
}
