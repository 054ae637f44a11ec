package dispatch

import (
	"sync"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// Recorder keeps every event it is notified of
type Recorder struct {
	mu     sync.RWMutex
	events []input.MotionEvent
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NotifyMotion(ev input.MotionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []input.MotionEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]input.MotionEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Clear drops all recorded events
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
