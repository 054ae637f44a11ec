package gesture

import (
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/config"
	"github.com/pleimann/gesture-bridge/internal/input"
)

// CursorController receives the cursor position whenever it changes
type CursorController interface {
	SetPosition(p f32.Point)
}

// Converter turns classified touchpad gestures into motion events for one
// device. It is not safe for concurrent use; each call runs to completion and
// returns the events it produced in the order they must be dispatched.
type Converter struct {
	deviceID int32
	cursor   CursorController

	orientation input.Rotation
	xAxis       input.AxisInfo
	yAxis       input.AxisInfo
	display     f32.Point // logical display size, zero when unbounded

	fingerSpacing          float32
	initialPinchSeparation float32
	minPinchSeparation     float32
	pinchTimeout           time.Duration

	s session
}

// NewConverter creates a converter configured from cfg. cursor may be nil.
func NewConverter(cfg *config.Config, cursor CursorController) *Converter {
	c := &Converter{
		deviceID: cfg.Device.ID,
		cursor:   cursor,
	}
	c.apply(cfg)
	c.s.cursor = c.displayCenter()
	return c
}

func (c *Converter) apply(cfg *config.Config) {
	c.deviceID = cfg.Device.ID
	c.orientation = cfg.Rotation()
	c.xAxis = cfg.Axes.X.AxisInfo()
	c.yAxis = cfg.Axes.Y.AxisInfo()
	c.display = f32.Point{X: float32(cfg.Display.Width), Y: float32(cfg.Display.Height)}
	c.fingerSpacing = cfg.Gestures.SwipeFingerSpacing
	c.initialPinchSeparation = cfg.Gestures.InitialPinchSeparation
	c.minPinchSeparation = cfg.Gestures.MinPinchSeparation
	if c.minPinchSeparation <= 0 {
		c.minPinchSeparation = 1
	}
	c.pinchTimeout = time.Duration(cfg.Gestures.PinchTimeoutMs) * time.Millisecond
}

// SetOrientation sets the display rotation applied to device deltas
func (c *Converter) SetOrientation(r input.Rotation) {
	c.orientation = r
}

// SetAxisInfo sets the raw touchpad axis ranges
func (c *Converter) SetAxisInfo(x, y input.AxisInfo) {
	c.xAxis = x
	c.yAxis = y
}

// SetDisplaySize sets the logical display bounds the cursor is clamped to
func (c *Converter) SetDisplaySize(width, height float32) {
	c.display = f32.Point{X: width, Y: height}
	c.s.cursor = c.clampToDisplay(c.s.cursor)
}

// HandleGesture converts one gesture into zero or more motion events
func (c *Converter) HandleGesture(when, readTime time.Duration, g Gesture) []input.MotionEvent {
	var out []input.MotionEvent
	if c.interrupts(g) {
		out = append(out, c.endClassification(when, readTime)...)
	}
	if g.Type != GestureScroll && g.Type != GestureFling {
		c.s.scrolling = false
	}

	switch g.Type {
	case GestureMove:
		out = append(out, c.handleMove(when, readTime, g))
	case GestureButtonsChange:
		out = append(out, c.handleButtonsChange(when, readTime, g)...)
	case GestureScroll:
		out = append(out, c.handleScroll(when, readTime, g))
	case GestureFling:
		out = append(out, c.handleFling(when, readTime, g)...)
	case GestureSwipe:
		out = append(out, c.handleMultiFingerSwipe(when, readTime, g)...)
	case GestureSwipeLift:
		out = append(out, c.handleMultiFingerSwipeLift(when, readTime)...)
	case GesturePinch:
		out = append(out, c.handlePinch(when, readTime, g)...)
	}
	return out
}

// interrupts reports whether g cannot continue the active classification,
// in which case its synthetic fingers are lifted before g is handled.
func (c *Converter) interrupts(g Gesture) bool {
	switch c.s.classification {
	case input.ClassificationMultiFingerSwipe:
		switch g.Type {
		case GestureSwipeLift:
			return false
		case GestureSwipe:
			return validFingerCount(g.Fingers) && g.Fingers != c.s.swipeFingerCount
		case GestureFling:
			return g.FlingState == FlingStart
		}
		return true
	case input.ClassificationPinch:
		switch g.Type {
		case GesturePinch, GestureSwipeLift:
			return false
		case GestureSwipe:
			return validFingerCount(g.Fingers)
		case GestureFling:
			return g.FlingState == FlingStart
		}
		return true
	}
	return false
}

func (c *Converter) endClassification(when, readTime time.Duration) []input.MotionEvent {
	switch c.s.classification {
	case input.ClassificationMultiFingerSwipe:
		return c.handleMultiFingerSwipeLift(when, readTime)
	case input.ClassificationPinch:
		return c.endPinch(when, readTime)
	}
	return nil
}

// Expire ends a pinch that has seen no update for longer than the configured
// pinch timeout. It does nothing when the timeout is disabled.
func (c *Converter) Expire(when, readTime time.Duration) []input.MotionEvent {
	if !c.pinchExpired(when) {
		return nil
	}
	return c.endPinch(when, readTime)
}

// Reset lifts every open synthetic finger, releases held buttons and returns
// the session to its initial state. The closing events are returned; the
// cursor position is kept.
func (c *Converter) Reset(when, readTime time.Duration) []input.MotionEvent {
	out := c.endClassification(when, readTime)
	if c.s.buttonState != 0 {
		out = append(out, c.applyButtons(when, readTime, 0, c.s.buttonState)...)
	}
	cursor := c.s.cursor
	c.s = session{cursor: cursor}
	return out
}

// Reconfigure resets the session and then applies cfg
func (c *Converter) Reconfigure(when, readTime time.Duration, cfg *config.Config) []input.MotionEvent {
	out := c.Reset(when, readTime)
	c.apply(cfg)
	c.s.cursor = c.clampToDisplay(c.s.cursor)
	return out
}

// Position returns the cursor position in display space
func (c *Converter) Position() f32.Point {
	return c.s.cursor
}

// ButtonState returns the buttons currently held
func (c *Converter) ButtonState() input.Buttons {
	return c.s.buttonState
}

// Classification returns the active multi-finger classification
func (c *Converter) Classification() input.Classification {
	return c.s.classification
}

// DownTime returns the down time of the current interaction, or 0
func (c *Converter) DownTime() time.Duration {
	return c.s.downTime
}
