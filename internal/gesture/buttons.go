package gesture

import (
	"time"

	"github.com/pleimann/gesture-bridge/internal/input"
)

func (c *Converter) handleButtonsChange(when, readTime time.Duration, g Gesture) []input.MotionEvent {
	return c.applyButtons(when, readTime, g.Down.MotionButtons(), g.Up.MotionButtons())
}

// applyButtons treats one change as two transitions: the down set goes down,
// then the up set goes up. A button in both sets is pressed and released.
func (c *Converter) applyButtons(when, readTime time.Duration, down, up input.Buttons) []input.MotionEvent {
	old := c.s.buttonState
	held := old | down
	pressed := down &^ old
	released := up & held
	final := held &^ up

	if pressed == 0 && released == 0 {
		return nil
	}

	coords := input.PointerCoords{Pos: c.s.cursor}
	if held != 0 {
		coords.Pressure = 1
	}

	var out []input.MotionEvent
	if old == 0 && held != 0 {
		c.s.downTime = when
		out = append(out, c.buildEvent(when, readTime, input.ActionDown, 0, 0, held, cursorPointer(coords)))
	}

	state := old
	for _, b := range pressed.Bits() {
		state |= b
		out = append(out, c.buildEvent(when, readTime, input.ActionButtonPress, 0, b, state, cursorPointer(coords)))
	}
	for _, b := range released.Bits() {
		state &^= b
		out = append(out, c.buildEvent(when, readTime, input.ActionButtonRelease, 0, b, state, cursorPointer(coords)))
	}

	c.s.buttonState = final
	if held != 0 && final == 0 {
		coords.Pressure = 0
		out = append(out, c.buildEvent(when, readTime, input.ActionUp, 0, 0, final, cursorPointer(coords)))
		c.s.downTime = 0
	}
	return out
}
