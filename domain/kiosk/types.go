package kiosk

// Phase enumerates finite states of the kiosk visitor flow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLivePreview
	PhaseEditing
	PhaseProcessing
	PhaseSaving
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLivePreview:
		return "preview"
	case PhaseEditing:
		return "editing"
	case PhaseProcessing:
		return "processing"
	case PhaseSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// ActionCallbacks externalize side effects so the flow logic stays
// testable (camera stream lifecycle, attract screen).
type ActionCallbacks struct {
	StartStream func()
	StopStream  func()
	ShowAttract func()
}

// PhaseListener is called on each successful phase transition.
type PhaseListener func(prev, next Phase)

// Interface slices for consumers (presenters).
type PhaseSource interface{ Current() Phase }
type VisitorFlow interface {
	EventActivate()
	EventCaptured()
	EventResumed()
	EventSortStarted()
	EventSortFinished()
	EventSaveStarted()
	EventSaveFinished()
	EventReset()
}
type FlowLifecycle interface {
	Touch()
	Close()
}

// KioskFSMContract aggregate for DI.
type KioskFSMContract interface {
	PhaseSource
	VisitorFlow
	FlowLifecycle
	AddListener(PhaseListener)
}
