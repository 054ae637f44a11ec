package gesture

import (
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/input"
)

func (c *Converter) handleMove(when, readTime time.Duration, g Gesture) input.MotionEvent {
	delta := c.orientation.RotateDelta(f32.Point{X: g.DX, Y: g.DY})
	c.moveCursor(c.s.cursor.Add(delta))

	coords := input.PointerCoords{
		Pos:      c.s.cursor,
		Relative: delta,
	}
	action := input.ActionHoverMove
	if c.s.buttonState != 0 {
		action = input.ActionMove
		coords.Pressure = 1
	}
	return c.buildEvent(when, readTime, action, 0, 0, c.s.buttonState, cursorPointer(coords))
}

func (c *Converter) moveCursor(p f32.Point) {
	c.s.cursor = c.clampToDisplay(p)
	if c.cursor != nil {
		c.cursor.SetPosition(c.s.cursor)
	}
}

func (c *Converter) clampToDisplay(p f32.Point) f32.Point {
	if c.display.X > 0 {
		p.X = clamp(p.X, 0, c.display.X-1)
	}
	if c.display.Y > 0 {
		p.Y = clamp(p.Y, 0, c.display.Y-1)
	}
	return p
}

func (c *Converter) displayCenter() f32.Point {
	return f32.Point{X: c.display.X / 2, Y: c.display.Y / 2}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
