package gesture

import (
	"math"
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/input"
)

const pinchFingers = 2

// handlePinch drives the two-finger pinch session. ZoomStart opens a fresh
// pinch, ZoomEnd closes it, and an update with no open pinch starts one
// before its scale is applied. An open pinch that has been idle for longer
// than the pinch timeout is closed and restarted.
func (c *Converter) handlePinch(when, readTime time.Duration, g Gesture) []input.MotionEvent {
	active := c.s.classification == input.ClassificationPinch

	if g.ZoomState == ZoomEnd {
		if !active {
			return nil
		}
		return c.endPinch(when, readTime)
	}

	var out []input.MotionEvent
	if active && (g.ZoomState == ZoomStart || c.pinchExpired(when)) {
		out = append(out, c.endPinch(when, readTime)...)
		active = false
	}
	if !active {
		out = append(out, c.startPinch(when, readTime)...)
	}
	c.s.lastPinchTime = when
	if g.ZoomState == ZoomStart {
		return out
	}

	prev := c.s.pinchSeparation
	next := prev * g.Scale
	factor := g.Scale
	switch {
	case math.IsInf(float64(next), 1):
		// an unbounded spread keeps the last finite separation
		next, factor = prev, 1
	case !(next > c.minPinchSeparation):
		next = c.minPinchSeparation
		factor = next / prev
	}
	c.s.pinchSeparation = next
	c.placePinchFingers()
	c.s.fakeFingers[0].PinchScaleFactor = factor

	out = append(out, c.buildEvent(when, readTime, input.ActionMove, 0, 0, c.s.buttonState,
		c.s.fakePointers(0, pinchFingers)))
	return out
}

func (c *Converter) startPinch(when, readTime time.Duration) []input.MotionEvent {
	c.s.classification = input.ClassificationPinch
	c.s.pinchSeparation = c.initialPinchSeparation
	if !(c.s.pinchSeparation > c.minPinchSeparation) {
		c.s.pinchSeparation = c.minPinchSeparation
	}

	c.s.fakeFingers[0] = input.PointerCoords{Pos: c.s.cursor, Pressure: 1, PinchScaleFactor: 1}
	c.s.fakeFingers[1] = input.PointerCoords{Pos: c.s.cursor, Pressure: 1}
	c.placePinchFingers()
	c.s.beginSyntheticSession(when)

	return c.putFingersDown(when, readTime, pinchFingers)
}

// placePinchFingers spreads both fingers horizontally about their midpoint
func (c *Converter) placePinchFingers() {
	a, b := c.s.fakeFingers[0].Pos, c.s.fakeFingers[1].Pos
	center := f32.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	half := c.s.pinchSeparation / 2
	c.s.fakeFingers[0].Pos = f32.Point{X: center.X - half, Y: center.Y}
	c.s.fakeFingers[1].Pos = f32.Point{X: center.X + half, Y: center.Y}
}

func (c *Converter) endPinch(when, readTime time.Duration) []input.MotionEvent {
	if c.s.classification != input.ClassificationPinch {
		return nil
	}
	c.s.fakeFingers[0].PinchScaleFactor = 1
	out := c.liftFingers(when, readTime, pinchFingers)
	c.s.endSyntheticSession()
	return out
}

func (c *Converter) pinchExpired(when time.Duration) bool {
	return c.s.classification == input.ClassificationPinch &&
		c.pinchTimeout > 0 &&
		when-c.s.lastPinchTime >= c.pinchTimeout
}
