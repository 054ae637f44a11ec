package input

import (
	"fmt"
	"strings"
	"time"

	"gioui.org/f32"
)

// Action is the kind of change a motion event describes
type Action int

const (
	ActionDown Action = iota
	ActionUp
	ActionMove
	ActionPointerDown
	ActionPointerUp
	ActionHoverMove
	ActionScroll
	ActionButtonPress
	ActionButtonRelease
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "DOWN"
	case ActionUp:
		return "UP"
	case ActionMove:
		return "MOVE"
	case ActionPointerDown:
		return "POINTER_DOWN"
	case ActionPointerUp:
		return "POINTER_UP"
	case ActionHoverMove:
		return "HOVER_MOVE"
	case ActionScroll:
		return "SCROLL"
	case ActionButtonPress:
		return "BUTTON_PRESS"
	case ActionButtonRelease:
		return "BUTTON_RELEASE"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// Buttons is a bitmask of motion event buttons
type Buttons uint32

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonTertiary
	ButtonBack
	ButtonForward
)

// Bits returns each set button in ascending bit order
func (b Buttons) Bits() []Buttons {
	var bits []Buttons
	for bit := ButtonPrimary; bit != 0 && bit <= b; bit <<= 1 {
		if b&bit != 0 {
			bits = append(bits, bit)
		}
	}
	return bits
}

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	names := map[Buttons]string{
		ButtonPrimary:   "primary",
		ButtonSecondary: "secondary",
		ButtonTertiary:  "tertiary",
		ButtonBack:      "back",
		ButtonForward:   "forward",
	}
	parts := make([]string, 0, 5)
	for _, bit := range b.Bits() {
		if name, ok := names[bit]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("0x%x", uint32(bit)))
		}
	}
	return strings.Join(parts, "|")
}

// Classification tags the multi-finger gesture an event belongs to
type Classification int

const (
	ClassificationNone Classification = iota
	ClassificationMultiFingerSwipe
	ClassificationPinch
)

func (c Classification) String() string {
	switch c {
	case ClassificationNone:
		return "NONE"
	case ClassificationMultiFingerSwipe:
		return "MULTI_FINGER_SWIPE"
	case ClassificationPinch:
		return "PINCH"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// ToolType identifies what a pointer represents
type ToolType int

const (
	ToolTypeUnknown ToolType = iota
	ToolTypeFinger
	ToolTypeMouse
)

func (t ToolType) String() string {
	switch t {
	case ToolTypeFinger:
		return "finger"
	case ToolTypeMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Source is the input source events are reported under
type Source uint32

const SourceMouse Source = 0x00002002

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	default:
		return fmt.Sprintf("0x%08x", uint32(s))
	}
}

// Flags annotate a motion event
type Flags uint32

const (
	// FlagGeneratedGesture marks events carrying synthetic fingers
	FlagGeneratedGesture Flags = 1 << iota
	// FlagMomentumEnd marks the scroll event that ends a scroll gesture
	FlagMomentumEnd
)

// PointerProperties identify a pointer within an event
type PointerProperties struct {
	ID       int32
	ToolType ToolType
}

// PointerCoords holds the axis values of a single pointer
type PointerCoords struct {
	Pos              f32.Point
	Pressure         float32
	Relative         f32.Point
	Scroll           f32.Point // horizontal, vertical
	GestureOffset    f32.Point
	PinchScaleFactor float32
}

// Axis returns the value of a single axis
func (c PointerCoords) Axis(a Axis) float32 {
	switch a {
	case AxisX:
		return c.Pos.X
	case AxisY:
		return c.Pos.Y
	case AxisPressure:
		return c.Pressure
	case AxisRelativeX:
		return c.Relative.X
	case AxisRelativeY:
		return c.Relative.Y
	case AxisHScroll:
		return c.Scroll.X
	case AxisVScroll:
		return c.Scroll.Y
	case AxisGestureXOffset:
		return c.GestureOffset.X
	case AxisGestureYOffset:
		return c.GestureOffset.Y
	case AxisGesturePinchScaleFactor:
		return c.PinchScaleFactor
	default:
		return 0
	}
}

// Pointer is one pointer of a motion event
type Pointer struct {
	PointerProperties
	Coords PointerCoords
}

// MotionEvent is a fully populated pointer event record
type MotionEvent struct {
	EventTime      time.Duration
	ReadTime       time.Duration
	DeviceID       int32
	Source         Source
	Action         Action
	ActionIndex    int // index into Pointers for POINTER_DOWN/POINTER_UP
	ActionButton   Buttons
	ButtonState    Buttons
	Flags          Flags
	Classification Classification
	Pointers       []Pointer
	Cursor         f32.Point
	DownTime       time.Duration
}

// PointerCount returns the number of pointers in the event
func (e MotionEvent) PointerCount() int {
	return len(e.Pointers)
}

// ActionPointer returns the pointer the action applies to
func (e MotionEvent) ActionPointer() Pointer {
	if e.ActionIndex < 0 || e.ActionIndex >= len(e.Pointers) {
		return Pointer{}
	}
	return e.Pointers[e.ActionIndex]
}

func (e MotionEvent) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", e.Action)
	if e.Action == ActionPointerDown || e.Action == ActionPointerUp {
		fmt.Fprintf(&sb, "(%d)", e.ActionIndex)
	}
	if e.ActionButton != 0 {
		fmt.Fprintf(&sb, " button=%s", e.ActionButton)
	}
	fmt.Fprintf(&sb, " t=%s device=%d buttons=%s", e.EventTime, e.DeviceID, e.ButtonState)
	if e.Classification != ClassificationNone {
		fmt.Fprintf(&sb, " class=%s", e.Classification)
	}
	if e.Flags&FlagMomentumEnd != 0 {
		sb.WriteString(" momentum_end")
	}
	sb.WriteString(" [")
	for i, p := range e.Pointers {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d:(%.1f,%.1f)", p.ID, p.Coords.Pos.X, p.Coords.Pos.Y)
	}
	sb.WriteString("]")
	if e.Action == ActionScroll && len(e.Pointers) > 0 {
		s := e.Pointers[0].Coords.Scroll
		fmt.Fprintf(&sb, " scroll=(%.2f,%.2f)", s.X, s.Y)
	}
	return sb.String()
}
