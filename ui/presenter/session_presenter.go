package presenter

import (
	"time"

	"github.com/soocke/pixel-sorter-go/domain/kiosk"
	"github.com/soocke/pixel-sorter-go/ui/model"
)

// SessionPhaseSource reports the current kiosk phase.
type SessionPhaseSource interface{ Current() kiosk.Phase }

// SessionView displays the session duration and saved-edit count.
type SessionView interface {
	SetSession(duration time.Duration, edits int)
}

// SessionPresenter advances the session model from the kiosk phase and
// pushes the formatted values to the view.
type SessionPresenter struct {
	sess  *model.SessionModel
	phase SessionPhaseSource
	view  SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, phase SessionPhaseSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, phase: phase, view: view}
}

// EditSaved records a saved edit from the save flow.
func (p *SessionPresenter) EditSaved() {
	if p != nil && p.sess != nil {
		p.sess.EditSaved()
	}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.phase == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.phase.Current() != kiosk.PhaseIdle, now)
	d, edits := p.sess.Values()
	p.view.SetSession(d, edits)
}
