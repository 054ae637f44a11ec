package gesture

import (
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/input"
)

const (
	maxFakeFingers  = 4
	minSwipeFingers = 2
)

// session is the mutable state shared by all gesture handlers
type session struct {
	cursor      f32.Point
	buttonState input.Buttons
	downTime    time.Duration
	scrolling   bool

	classification input.Classification
	// Only used while classification is MultiFingerSwipe.
	swipeFingerCount int
	// Only used while classification is Pinch.
	pinchSeparation float32
	lastPinchTime   time.Duration

	// Slots 0..n-1 are live, n = swipeFingerCount or 2 while pinching.
	fakeFingers [maxFakeFingers]input.PointerCoords
}

func validFingerCount(n int) bool {
	return n >= minSwipeFingers && n <= maxFakeFingers
}

// liveFingers returns the number of synthetic fingers currently down
func (s *session) liveFingers() int {
	switch s.classification {
	case input.ClassificationMultiFingerSwipe:
		return s.swipeFingerCount
	case input.ClassificationPinch:
		return 2
	}
	return 0
}

// fakePointers copies synthetic fingers from..to-1 into event pointers
func (s *session) fakePointers(from, to int) []input.Pointer {
	pointers := make([]input.Pointer, 0, to-from)
	for i := from; i < to; i++ {
		pointers = append(pointers, input.Pointer{
			PointerProperties: input.PointerProperties{ID: int32(i), ToolType: input.ToolTypeFinger},
			Coords:            s.fakeFingers[i],
		})
	}
	return pointers
}

// beginSyntheticSession stamps the down time unless a button interaction already owns it
func (s *session) beginSyntheticSession(when time.Duration) {
	if s.buttonState == 0 {
		s.downTime = when
	}
}

// endSyntheticSession clears classification and finger state
func (s *session) endSyntheticSession() {
	s.classification = input.ClassificationNone
	s.swipeFingerCount = 0
	s.pinchSeparation = 0
	s.lastPinchTime = 0
	s.fakeFingers = [maxFakeFingers]input.PointerCoords{}
	if s.buttonState == 0 {
		s.downTime = 0
	}
}
