package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// ErrInconsistentStream is returned when an event breaks down/move/up pairing
var ErrInconsistentStream = errors.New("inconsistent motion event stream")

// Verifier checks that a motion event stream is well formed. The cursor
// stream (unclassified events) and the synthetic finger stream (classified
// events) are tracked separately.
type Verifier struct {
	lastTime time.Duration

	cursorDown bool

	class   input.Classification
	fingers map[int32]bool
}

// NewVerifier creates a verifier with no pointers down
func NewVerifier() *Verifier {
	return &Verifier{fingers: make(map[int32]bool)}
}

func (v *Verifier) NotifyMotion(ev input.MotionEvent) error {
	if ev.EventTime < v.lastTime {
		return v.fail(ev, "event time went backwards from %s", v.lastTime)
	}
	v.lastTime = ev.EventTime

	if ev.PointerCount() == 0 {
		return v.fail(ev, "no pointers")
	}
	if ev.Classification == input.ClassificationNone {
		return v.cursorEvent(ev)
	}
	return v.fingerEvent(ev)
}

func (v *Verifier) cursorEvent(ev input.MotionEvent) error {
	if len(v.fingers) > 0 {
		return v.fail(ev, "%d synthetic fingers still down", len(v.fingers))
	}
	if ev.Flags&input.FlagGeneratedGesture != 0 {
		return v.fail(ev, "cursor event flagged as generated gesture")
	}

	switch ev.Action {
	case input.ActionDown:
		if v.cursorDown {
			return v.fail(ev, "cursor already down")
		}
		if ev.ButtonState == 0 {
			return v.fail(ev, "down without buttons")
		}
		v.cursorDown = true
	case input.ActionUp:
		if !v.cursorDown {
			return v.fail(ev, "cursor not down")
		}
		if ev.ButtonState != 0 {
			return v.fail(ev, "up with buttons %s still held", ev.ButtonState)
		}
		v.cursorDown = false
	case input.ActionMove:
		if !v.cursorDown {
			return v.fail(ev, "move while cursor is up")
		}
	case input.ActionHoverMove:
		if v.cursorDown {
			return v.fail(ev, "hover while cursor is down")
		}
	case input.ActionButtonPress:
		if !v.cursorDown {
			return v.fail(ev, "button press while cursor is up")
		}
		if ev.ActionButton == 0 || ev.ButtonState&ev.ActionButton == 0 {
			return v.fail(ev, "pressed button %s not in state %s", ev.ActionButton, ev.ButtonState)
		}
	case input.ActionButtonRelease:
		if !v.cursorDown {
			return v.fail(ev, "button release while cursor is up")
		}
		if ev.ActionButton == 0 || ev.ButtonState&ev.ActionButton != 0 {
			return v.fail(ev, "released button %s still in state %s", ev.ActionButton, ev.ButtonState)
		}
	case input.ActionScroll:
	default:
		return v.fail(ev, "unexpected action for cursor")
	}
	return nil
}

func (v *Verifier) fingerEvent(ev input.MotionEvent) error {
	if ev.Flags&input.FlagGeneratedGesture == 0 {
		return v.fail(ev, "synthetic event not flagged as generated gesture")
	}
	if len(v.fingers) > 0 && ev.Classification != v.class {
		return v.fail(ev, "classification changed from %s with fingers down", v.class)
	}

	switch ev.Action {
	case input.ActionDown:
		if len(v.fingers) > 0 {
			return v.fail(ev, "down with %d fingers already down", len(v.fingers))
		}
		if ev.PointerCount() != 1 {
			return v.fail(ev, "down carries %d pointers", ev.PointerCount())
		}
		v.class = ev.Classification
		v.fingers[ev.Pointers[0].ID] = true
	case input.ActionPointerDown:
		if len(v.fingers) == 0 {
			return v.fail(ev, "pointer down before down")
		}
		if ev.PointerCount() != len(v.fingers)+1 {
			return v.fail(ev, "pointer down carries %d pointers with %d down", ev.PointerCount(), len(v.fingers))
		}
		id := ev.ActionPointer().ID
		if ev.ActionIndex >= ev.PointerCount() || v.fingers[id] {
			return v.fail(ev, "pointer %d already down", id)
		}
		v.fingers[id] = true
		if err := v.checkFingers(ev); err != nil {
			return err
		}
	case input.ActionMove:
		if ev.PointerCount() != len(v.fingers) {
			return v.fail(ev, "move carries %d pointers with %d down", ev.PointerCount(), len(v.fingers))
		}
		if err := v.checkFingers(ev); err != nil {
			return err
		}
	case input.ActionPointerUp, input.ActionUp:
		if ev.PointerCount() != len(v.fingers) {
			return v.fail(ev, "up carries %d pointers with %d down", ev.PointerCount(), len(v.fingers))
		}
		if err := v.checkFingers(ev); err != nil {
			return err
		}
		last := len(v.fingers) == 1
		if ev.Action == input.ActionUp && !last {
			return v.fail(ev, "up with %d fingers down", len(v.fingers))
		}
		if ev.Action == input.ActionPointerUp && last {
			return v.fail(ev, "pointer up for the last finger")
		}
		delete(v.fingers, ev.ActionPointer().ID)
		if last {
			v.class = input.ClassificationNone
		}
	default:
		return v.fail(ev, "unexpected action for synthetic fingers")
	}
	return nil
}

func (v *Verifier) checkFingers(ev input.MotionEvent) error {
	for _, p := range ev.Pointers {
		if !v.fingers[p.ID] {
			return v.fail(ev, "pointer %d is not down", p.ID)
		}
	}
	return nil
}

// Open returns the number of pointers that are currently down
func (v *Verifier) Open() int {
	n := len(v.fingers)
	if v.cursorDown {
		n++
	}
	return n
}

// Finish returns an error if any pointer was left down
func (v *Verifier) Finish() error {
	if n := v.Open(); n > 0 {
		return fmt.Errorf("%w: %d pointers still down at end of stream", ErrInconsistentStream, n)
	}
	return nil
}

func (v *Verifier) fail(ev input.MotionEvent, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInconsistentStream, ev.Action, fmt.Sprintf(format, args...))
}
