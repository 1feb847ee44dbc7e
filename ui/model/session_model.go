package model

import (
	"time"
)

// SessionModel tracks the current visitor session duration and the number
// of edits saved. It is decoupled from the UI; presenters should poll
// Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active       bool
	sessionStart time.Time
	duration     time.Duration
	edits        int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current session state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(inSession bool, now time.Time) {
	if m == nil {
		return
	}
	if inSession {
		if !m.active { // transition off -> on
			m.active = true
			m.sessionStart = now
			m.duration = 0
			m.edits = 0
		}
		m.duration = now.Sub(m.sessionStart)
	} else if m.active { // transition on -> off
		m.duration = now.Sub(m.sessionStart)
		m.active = false
	}
}

// EditSaved increments the saved-edit counter.
func (m *SessionModel) EditSaved() {
	if m != nil {
		m.edits++
	}
}

// Values returns the current session duration and edits saved.
func (m *SessionModel) Values() (duration time.Duration, edits int) {
	if m == nil {
		return 0, 0
	}
	return m.duration, m.edits
}

// Active reports whether a visitor session is in progress.
func (m *SessionModel) Active() bool { return m != nil && m.active }
