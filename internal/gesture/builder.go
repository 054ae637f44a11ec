package gesture

import (
	"time"

	"github.com/pleimann/gesture-bridge/internal/input"
)

const source = input.SourceMouse

// buildEvent assembles a motion event stamped with the session's
// classification, cursor position and down time.
func (c *Converter) buildEvent(when, readTime time.Duration, action input.Action, actionIndex int,
	actionButton, buttonState input.Buttons, pointers []input.Pointer) input.MotionEvent {
	var flags input.Flags
	if c.s.classification != input.ClassificationNone {
		flags |= input.FlagGeneratedGesture
	}
	return input.MotionEvent{
		EventTime:      when,
		ReadTime:       readTime,
		DeviceID:       c.deviceID,
		Source:         source,
		Action:         action,
		ActionIndex:    actionIndex,
		ActionButton:   actionButton,
		ButtonState:    buttonState,
		Flags:          flags,
		Classification: c.s.classification,
		Pointers:       pointers,
		Cursor:         c.s.cursor,
		DownTime:       c.s.downTime,
	}
}

// cursorPointer is the single pointer reported for cursor events
func cursorPointer(coords input.PointerCoords) []input.Pointer {
	return []input.Pointer{{
		PointerProperties: input.PointerProperties{ID: 0, ToolType: input.ToolTypeMouse},
		Coords:            coords,
	}}
}
