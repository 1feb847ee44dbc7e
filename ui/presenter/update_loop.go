package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Phase    *PhasePresenter
	Preview  *PreviewPresenter
	Edit     *EditPresenter
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(phase *PhasePresenter, preview *PreviewPresenter, edit *EditPresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Phase: phase, Preview: preview, Edit: edit, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Flush pending phase changes to the view before drawing frames.
	if l.Phase != nil {
		l.Phase.Tick(now)
	}
	if l.Preview != nil {
		l.Preview.Tick(now)
	}
	if l.Edit != nil {
		l.Edit.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
