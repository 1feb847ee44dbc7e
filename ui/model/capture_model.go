package model

import (
	"sync/atomic"
)

// CaptureModel tracks whether the live preview stream is active. The zero
// value is inactive and usable. Concurrency-safe via atomic Bool because
// UI callbacks and presenter ticks may race.
type CaptureModel struct{ streaming atomic.Bool }

// Streaming reports whether the live preview is currently active.
func (m *CaptureModel) Streaming() bool {
	if m == nil {
		return false
	}
	return m.streaming.Load()
}

// SetStreaming stores the streaming flag.
func (m *CaptureModel) SetStreaming(b bool) {
	if m == nil {
		return
	}
	m.streaming.Store(b)
}
