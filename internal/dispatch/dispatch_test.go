package dispatch

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/config"
	"github.com/pleimann/gesture-bridge/internal/gesture"
	"github.com/pleimann/gesture-bridge/internal/input"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestDispatcherOrder(t *testing.T) {
	var got []string
	record := func(name string) Listener {
		return ListenerFunc(func(ev input.MotionEvent) error {
			got = append(got, name+":"+ev.Action.String())
			return nil
		})
	}

	d := NewDispatcher(record("a"))
	d.Add(record("b"))
	err := d.Dispatch([]input.MotionEvent{
		{Action: input.ActionDown},
		{Action: input.ActionUp},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	want := []string{"a:DOWN", "b:DOWN", "a:UP", "b:UP"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delivery order = %v, want %v", got, want)
	}
	if d.Count() != 2 {
		t.Errorf("Count() = %d, want 2", d.Count())
	}
}

func TestDispatcherStopsOnError(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	d := NewDispatcher(ListenerFunc(func(ev input.MotionEvent) error {
		calls++
		if ev.Action == input.ActionMove {
			return errBoom
		}
		return nil
	}))

	err := d.Dispatch([]input.MotionEvent{
		{Action: input.ActionHoverMove},
		{Action: input.ActionMove},
		{Action: input.ActionHoverMove},
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Dispatch() error = %v, want wrapped boom", err)
	}
	if calls != 2 {
		t.Errorf("listener called %d times, want 2", calls)
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	d := NewDispatcher(r)
	if err := d.Dispatch([]input.MotionEvent{{Action: input.ActionScroll}, {Action: input.ActionHoverMove}}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	events := r.Events()
	if len(events) != 2 || events[0].Action != input.ActionScroll {
		t.Errorf("Events() = %v", events)
	}
	events[0].Action = input.ActionUp
	if r.Events()[0].Action != input.ActionScroll {
		t.Errorf("Events() did not return a copy")
	}
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after Clear", r.Len())
	}
}

func TestVerifierAcceptsConverterOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Width = 800
	cfg.Display.Height = 600
	c := gesture.NewConverter(cfg, nil)

	gestures := []gesture.Gesture{
		gesture.NewMove(5, 5),
		gesture.NewScroll(0, 2),
		gesture.NewFling(gesture.FlingStart, 0, 0),
		gesture.NewButtonsChange(gesture.ButtonLeft, 0),
		gesture.NewMove(1, 0),
		gesture.NewSwipe(3, 10, 0),
		gesture.NewSwipe(3, 10, 0),
		gesture.NewSwipeLift(),
		gesture.NewPinchStart(),
		gesture.NewPinch(1.2),
		gesture.NewSwipe(4, 0, 3),
		gesture.NewPinch(0.8),
		gesture.NewButtonsChange(gesture.ButtonRight, gesture.ButtonLeft),
		gesture.NewButtonsChange(0, gesture.ButtonRight),
		gesture.NewSwipe(2, 1, 1),
	}

	v := NewVerifier()
	d := NewDispatcher(v)
	for i, g := range gestures {
		if err := d.Dispatch(c.HandleGesture(ms(i+1), ms(i+1), g)); err != nil {
			t.Fatalf("gesture %d (%s): %v", i, g, err)
		}
	}
	if v.Open() != 2 {
		t.Errorf("Open() = %d before reset, want 2", v.Open())
	}
	if err := v.Finish(); !errors.Is(err, ErrInconsistentStream) {
		t.Errorf("Finish() before reset = %v, want ErrInconsistentStream", err)
	}
	if err := d.Dispatch(c.Reset(ms(100), ms(100))); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := v.Finish(); err != nil {
		t.Errorf("Finish() = %v", err)
	}
}

func finger(id int32) input.Pointer {
	return input.Pointer{PointerProperties: input.PointerProperties{ID: id, ToolType: input.ToolTypeFinger}}
}

func fingers(ids ...int32) []input.Pointer {
	out := make([]input.Pointer, len(ids))
	for i, id := range ids {
		out[i] = finger(id)
	}
	return out
}

func swipeEvent(action input.Action, index int, ids ...int32) input.MotionEvent {
	return input.MotionEvent{
		Action:         action,
		ActionIndex:    index,
		Flags:          input.FlagGeneratedGesture,
		Classification: input.ClassificationMultiFingerSwipe,
		Pointers:       fingers(ids...),
	}
}

func cursorEvent(action input.Action, button, state input.Buttons) input.MotionEvent {
	return input.MotionEvent{
		Action:       action,
		ActionButton: button,
		ButtonState:  state,
		Pointers:     []input.Pointer{{PointerProperties: input.PointerProperties{ToolType: input.ToolTypeMouse}, Coords: input.PointerCoords{Pos: f32.Point{X: 1, Y: 1}}}},
	}
}

func TestVerifierRejects(t *testing.T) {
	pinchDown := swipeEvent(input.ActionDown, 0, 0)
	pinchDown.Classification = input.ClassificationPinch
	unflagged := swipeEvent(input.ActionDown, 0, 0)
	unflagged.Flags = 0
	late := cursorEvent(input.ActionHoverMove, 0, 0)
	late.EventTime = ms(5)
	early := cursorEvent(input.ActionHoverMove, 0, 0)
	early.EventTime = ms(4)

	tests := []struct {
		name   string
		events []input.MotionEvent
	}{
		{"time goes backwards", []input.MotionEvent{late, early}},
		{"up without down", []input.MotionEvent{cursorEvent(input.ActionUp, 0, 0)}},
		{"double down", []input.MotionEvent{
			cursorEvent(input.ActionDown, 0, input.ButtonPrimary),
			cursorEvent(input.ActionDown, 0, input.ButtonPrimary),
		}},
		{"release of held button", []input.MotionEvent{
			cursorEvent(input.ActionDown, 0, input.ButtonPrimary),
			cursorEvent(input.ActionButtonRelease, input.ButtonPrimary, input.ButtonPrimary),
		}},
		{"hover while down", []input.MotionEvent{
			cursorEvent(input.ActionDown, 0, input.ButtonPrimary),
			cursorEvent(input.ActionHoverMove, 0, input.ButtonPrimary),
		}},
		{"pointer down before down", []input.MotionEvent{swipeEvent(input.ActionPointerDown, 1, 0, 1)}},
		{"move with missing finger", []input.MotionEvent{
			swipeEvent(input.ActionDown, 0, 0),
			swipeEvent(input.ActionPointerDown, 1, 0, 1),
			swipeEvent(input.ActionMove, 0, 0),
		}},
		{"cursor event with fingers down", []input.MotionEvent{
			swipeEvent(input.ActionDown, 0, 0),
			cursorEvent(input.ActionHoverMove, 0, 0),
		}},
		{"classification switch with fingers down", []input.MotionEvent{
			swipeEvent(input.ActionDown, 0, 0),
			pinchDown,
		}},
		{"up with two fingers", []input.MotionEvent{
			swipeEvent(input.ActionDown, 0, 0),
			swipeEvent(input.ActionPointerDown, 1, 0, 1),
			swipeEvent(input.ActionUp, 0, 0, 1),
		}},
		{"unflagged synthetic event", []input.MotionEvent{unflagged}},
		{"no pointers", []input.MotionEvent{{Action: input.ActionHoverMove}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier()
			var err error
			for _, ev := range tt.events {
				if err = v.NotifyMotion(ev); err != nil {
					break
				}
			}
			if !errors.Is(err, ErrInconsistentStream) {
				t.Errorf("error = %v, want ErrInconsistentStream", err)
			}
		})
	}
}

func TestVerifierAcceptsAscendingLift(t *testing.T) {
	v := NewVerifier()
	events := []input.MotionEvent{
		swipeEvent(input.ActionDown, 0, 0),
		swipeEvent(input.ActionPointerDown, 1, 0, 1),
		swipeEvent(input.ActionPointerDown, 2, 0, 1, 2),
		swipeEvent(input.ActionMove, 0, 0, 1, 2),
		swipeEvent(input.ActionPointerUp, 0, 0, 1, 2),
		swipeEvent(input.ActionPointerUp, 0, 1, 2),
		swipeEvent(input.ActionUp, 0, 2),
	}
	for i, ev := range events {
		if err := v.NotifyMotion(ev); err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
	}
	if err := v.Finish(); err != nil {
		t.Errorf("Finish() = %v", err)
	}
}
