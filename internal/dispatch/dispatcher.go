package dispatch

import (
	"fmt"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// Listener is the interface for consumers of motion events
type Listener interface {
	NotifyMotion(ev input.MotionEvent) error
}

// ListenerFunc adapts a function to a Listener
type ListenerFunc func(ev input.MotionEvent) error

// NotifyMotion calls f(ev)
func (f ListenerFunc) NotifyMotion(ev input.MotionEvent) error {
	return f(ev)
}

// Dispatcher delivers motion events to its listeners in order
type Dispatcher struct {
	listeners []Listener
	count     int
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(listeners ...Listener) *Dispatcher {
	return &Dispatcher{listeners: listeners}
}

// Add registers another listener
func (d *Dispatcher) Add(l Listener) {
	d.listeners = append(d.listeners, l)
}

// Dispatch delivers each event to every listener before moving on to the
// next event. It stops at the first listener error.
func (d *Dispatcher) Dispatch(events []input.MotionEvent) error {
	for _, ev := range events {
		for _, l := range d.listeners {
			if err := l.NotifyMotion(ev); err != nil {
				return fmt.Errorf("failed to dispatch %s at %s: %w", ev.Action, ev.EventTime, err)
			}
		}
		d.count++
	}
	return nil
}

// Count returns the number of events dispatched so far
func (d *Dispatcher) Count() int {
	return d.count
}
