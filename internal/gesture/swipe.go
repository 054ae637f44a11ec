package gesture

import (
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// handleMultiFingerSwipe moves n synthetic fingers together. The first swipe
// of a session puts the fingers down in a horizontal row centered on the
// cursor. Finger counts outside 2..4 are ignored.
func (c *Converter) handleMultiFingerSwipe(when, readTime time.Duration, g Gesture) []input.MotionEvent {
	if !validFingerCount(g.Fingers) {
		return nil
	}

	var out []input.MotionEvent
	if c.s.classification != input.ClassificationMultiFingerSwipe {
		out = append(out, c.startMultiFingerSwipe(when, readTime, g.Fingers)...)
	}

	n := c.s.swipeFingerCount
	delta := c.orientation.RotateDelta(f32.Point{X: g.DX, Y: g.DY})
	for i := 0; i < n; i++ {
		c.s.fakeFingers[i].Pos = c.s.fakeFingers[i].Pos.Add(delta)
	}
	c.s.fakeFingers[0].GestureOffset = c.normalizedOffset(g.DX, g.DY)

	out = append(out, c.buildEvent(when, readTime, input.ActionMove, 0, 0, c.s.buttonState,
		c.s.fakePointers(0, n)))
	return out
}

func (c *Converter) startMultiFingerSwipe(when, readTime time.Duration, n int) []input.MotionEvent {
	c.s.classification = input.ClassificationMultiFingerSwipe
	c.s.swipeFingerCount = n

	cursor := c.s.cursor
	x := cursor.X - c.fingerSpacing*float32(n-1)/2
	for i := 0; i < n; i++ {
		c.s.fakeFingers[i] = input.PointerCoords{
			Pos:      f32.Point{X: x, Y: cursor.Y},
			Pressure: 1,
		}
		x += c.fingerSpacing
	}
	c.s.beginSyntheticSession(when)

	return c.putFingersDown(when, readTime, n)
}

// putFingersDown emits DOWN for finger 0 and POINTER_DOWN for the rest
func (c *Converter) putFingersDown(when, readTime time.Duration, n int) []input.MotionEvent {
	out := make([]input.MotionEvent, 0, n)
	out = append(out, c.buildEvent(when, readTime, input.ActionDown, 0, 0, c.s.buttonState,
		c.s.fakePointers(0, 1)))
	for i := 1; i < n; i++ {
		out = append(out, c.buildEvent(when, readTime, input.ActionPointerDown, i, 0, c.s.buttonState,
			c.s.fakePointers(0, i+1)))
	}
	return out
}

// liftFingers emits POINTER_UP for fingers 0..n-2 in ascending order and UP
// for the last one. Each event carries the fingers still down.
func (c *Converter) liftFingers(when, readTime time.Duration, n int) []input.MotionEvent {
	out := make([]input.MotionEvent, 0, n)
	for i := 0; i < n; i++ {
		action := input.ActionPointerUp
		if i == n-1 {
			action = input.ActionUp
		}
		out = append(out, c.buildEvent(when, readTime, action, 0, 0, c.s.buttonState,
			c.s.fakePointers(i, n)))
	}
	return out
}

func (c *Converter) handleMultiFingerSwipeLift(when, readTime time.Duration) []input.MotionEvent {
	if c.s.classification != input.ClassificationMultiFingerSwipe {
		return nil
	}
	c.s.fakeFingers[0].GestureOffset = f32.Point{}
	out := c.liftFingers(when, readTime, c.s.swipeFingerCount)
	c.s.endSyntheticSession()
	return out
}

// normalizedOffset scales a raw device delta by the touchpad's axis spans
func (c *Converter) normalizedOffset(dx, dy float32) f32.Point {
	var off f32.Point
	if span := c.xAxis.Span(); span > 0 {
		off.X = dx / span
	}
	if span := c.yAxis.Span(); span > 0 {
		off.Y = dy / span
	}
	return off
}
