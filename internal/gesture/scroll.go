package gesture

import (
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/input"
)

func (c *Converter) handleScroll(when, readTime time.Duration, g Gesture) input.MotionEvent {
	delta := c.orientation.RotateDelta(f32.Point{X: g.DX, Y: g.DY})
	c.s.scrolling = true

	coords := input.PointerCoords{
		Pos:    c.s.cursor,
		Scroll: delta,
	}
	return c.buildEvent(when, readTime, input.ActionScroll, 0, 0, c.s.buttonState, cursorPointer(coords))
}

// handleFling ends an ongoing scroll. The recognizer's own fling animation is
// not reproduced; tap-down is internal to the recognizer and ignored.
func (c *Converter) handleFling(when, readTime time.Duration, g Gesture) []input.MotionEvent {
	if g.FlingState != FlingStart || !c.s.scrolling {
		return nil
	}
	c.s.scrolling = false

	ev := c.buildEvent(when, readTime, input.ActionScroll, 0, 0, c.s.buttonState,
		cursorPointer(input.PointerCoords{Pos: c.s.cursor}))
	ev.Flags |= input.FlagMomentumEnd
	return []input.MotionEvent{ev}
}
