package kiosk

import (
	"log/slog"
	"runtime/debug"
	"time"
)

// Unattended kiosks drift back to the attract screen; any visitor input
// resets the clock.
const defaultIdleTimeout = 2 * time.Minute

// KioskFSM manages kiosk phase transitions and side-effect actions.
type KioskFSM struct {
	state        Phase
	logger       *slog.Logger
	idleTimeout  time.Duration
	lastActivity time.Time
	closed       bool
	actions      ActionCallbacks
	events       chan interface{}
	listeners    []PhaseListener
}

// NewFSM constructs and starts the event loop.
func NewFSM(logger *slog.Logger, idleTimeout time.Duration, actions ActionCallbacks) *KioskFSM {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	f := &KioskFSM{
		state:        PhaseIdle,
		logger:       logger,
		idleTimeout:  idleTimeout,
		lastActivity: time.Now(),
		actions:      actions,
		events:       make(chan interface{}, 64),
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				if logger != nil {
					logger.Error("kiosk fsm panic", "error", r, "stack", stack)
				}
			}
		}()
		f.loop()
	}()
	return f
}

func (f *KioskFSM) loop() {
	for ev := range f.events {
		switch e := ev.(type) {
		case evtAddListener:
			f.listeners = append(f.listeners, e.l)
		case evtTouch:
			f.lastActivity = e.now
		case evtTick:
			f.handleTick(e.now)
		case evtActivate:
			if f.state == PhaseIdle {
				f.lastActivity = time.Now()
				f.transition(PhaseLivePreview)
			}
		case evtCaptured:
			if f.state == PhaseLivePreview {
				f.lastActivity = time.Now()
				f.transition(PhaseEditing)
			}
		case evtResumed:
			// Restored session: straight to editing, no camera involved.
			if f.state == PhaseIdle {
				f.lastActivity = time.Now()
				f.transition(PhaseEditing)
			}
		case evtSortStarted:
			if f.state == PhaseEditing {
				f.lastActivity = time.Now()
				f.transition(PhaseProcessing)
			}
		case evtSortFinished:
			if f.state == PhaseProcessing {
				f.transition(PhaseEditing)
			}
		case evtSaveStarted:
			if f.state == PhaseEditing {
				f.lastActivity = time.Now()
				f.transition(PhaseSaving)
			}
		case evtSaveFinished:
			if f.state == PhaseSaving {
				f.transition(PhaseEditing)
			}
		case evtReset:
			f.transition(PhaseIdle)
		}
	}
	f.closed = true
}

// events
type (
	evtActivate     struct{}
	evtCaptured     struct{}
	evtResumed      struct{}
	evtSortStarted  struct{}
	evtSortFinished struct{}
	evtSaveStarted  struct{}
	evtSaveFinished struct{}
	evtReset        struct{}
	evtTouch        struct{ now time.Time }
	evtTick         struct{ now time.Time }
	evtAddListener  struct{ l PhaseListener }
)

func (f *KioskFSM) transition(next Phase) {
	prev := f.state
	if prev == next {
		return
	}
	switch next {
	case PhaseLivePreview:
		if f.actions.StartStream != nil {
			go func() { defer recoverLog(f.logger, "stream start panic"); f.actions.StartStream() }()
		}
	case PhaseEditing:
		if prev == PhaseLivePreview && f.actions.StopStream != nil {
			go func() { defer recoverLog(f.logger, "stream stop panic"); f.actions.StopStream() }()
		}
	case PhaseIdle:
		if f.actions.StopStream != nil {
			go func() { defer recoverLog(f.logger, "stream stop panic"); f.actions.StopStream() }()
		}
		if f.actions.ShowAttract != nil {
			go func() { defer recoverLog(f.logger, "attract panic"); f.actions.ShowAttract() }()
		}
	}
	f.state = next
	if f.logger != nil {
		f.logger.Debug("kiosk phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range f.listeners {
		l(prev, next)
	}
}

func (f *KioskFSM) handleTick(now time.Time) {
	// Processing and saving finish on their own; only interactive phases
	// time out.
	if f.state != PhaseLivePreview && f.state != PhaseEditing {
		return
	}
	if !f.lastActivity.IsZero() && now.Sub(f.lastActivity) > f.idleTimeout {
		f.transition(PhaseIdle)
	}
}

// Public API implements contracts
func (f *KioskFSM) AddListener(l PhaseListener) { f.events <- evtAddListener{l: l} }
func (f *KioskFSM) Current() Phase              { return f.state }
func (f *KioskFSM) EventActivate()              { f.events <- evtActivate{} }
func (f *KioskFSM) EventCaptured()              { f.events <- evtCaptured{} }
func (f *KioskFSM) EventResumed()               { f.events <- evtResumed{} }
func (f *KioskFSM) EventSortStarted()           { f.events <- evtSortStarted{} }
func (f *KioskFSM) EventSortFinished()          { f.events <- evtSortFinished{} }
func (f *KioskFSM) EventSaveStarted()           { f.events <- evtSaveStarted{} }
func (f *KioskFSM) EventSaveFinished()          { f.events <- evtSaveFinished{} }
func (f *KioskFSM) EventReset()                 { f.events <- evtReset{} }
func (f *KioskFSM) Touch()                      { f.events <- evtTouch{now: time.Now()} }
func (f *KioskFSM) Tick(now time.Time)          { f.events <- evtTick{now: now} }
func (f *KioskFSM) Close() {
	if f.closed {
		return
	}
	close(f.events)
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}

// Ensure contract satisfaction
var _ KioskFSMContract = (*KioskFSM)(nil)
