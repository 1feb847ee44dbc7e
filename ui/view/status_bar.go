package view

import (
	"fmt"
	"time"

	"github.com/soocke/pixel-sorter-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the kiosk phase, the busy indicator and session stats.
type StatusBar interface {
	SetPhase(text string)
	SetBusy(busy bool)
	SetSession(duration time.Duration, edits int)
}

type statusBar struct {
	phaseLbl   *LabelWidget
	busyLbl    *LabelWidget
	sessionLbl *LabelWidget
}

// NewStatusBar creates the bottom status row spanning the given columns.
func NewStatusBar(row, colspan int) StatusBar {
	s := &statusBar{
		phaseLbl:   Label(Txt("idle"), Width(14)),
		busyLbl:    Label(Txt(""), Width(12)),
		sessionLbl: Label(Txt("Session: 00:00"), Width(24)),
	}
	s.phaseLbl.Configure(Style(theme.StyleStateLabel))
	Grid(s.phaseLbl, Row(row), Column(0), Sticky("w"), Padx("0.3m"), Pady("0.2m"))
	Grid(s.busyLbl, Row(row), Column(1), Sticky("w"), Padx("0.3m"))
	Grid(s.sessionLbl, Row(row), Column(colspan-1), Sticky("e"), Padx("0.3m"))
	return s
}

func (s *statusBar) SetPhase(text string) {
	if s == nil || s.phaseLbl == nil {
		return
	}
	s.phaseLbl.Configure(Txt(text))
}

func (s *statusBar) SetBusy(busy bool) {
	if s == nil || s.busyLbl == nil {
		return
	}
	if busy {
		s.busyLbl.Configure(Txt("sorting..."))
	} else {
		s.busyLbl.Configure(Txt(""))
	}
}

func (s *statusBar) SetSession(d time.Duration, edits int) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.sessionLbl.Configure(Txt(fmt.Sprintf("Session: %02d:%02d  Saved: %d", min, sec, edits)))
}
