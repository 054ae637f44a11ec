package gesture

import (
	"fmt"
	"strings"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// GestureType represents the type of a classified touchpad gesture
type GestureType int

const (
	GestureMove GestureType = iota
	GestureScroll
	GestureFling
	GestureButtonsChange
	GestureSwipe
	GestureSwipeLift
	GesturePinch
)

func (g GestureType) String() string {
	switch g {
	case GestureMove:
		return "move"
	case GestureScroll:
		return "scroll"
	case GestureFling:
		return "fling"
	case GestureButtonsChange:
		return "buttons_change"
	case GestureSwipe:
		return "swipe"
	case GestureSwipeLift:
		return "swipe_lift"
	case GesturePinch:
		return "pinch"
	default:
		return fmt.Sprintf("unknown(%d)", g)
	}
}

// FlingState is the phase reported with a fling gesture
type FlingState int

const (
	FlingStart FlingState = iota
	FlingTapDown
)

func (s FlingState) String() string {
	switch s {
	case FlingStart:
		return "start"
	case FlingTapDown:
		return "tap_down"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ZoomState is the phase reported with a pinch gesture
type ZoomState int

const (
	ZoomUpdate ZoomState = iota
	ZoomStart
	ZoomEnd
)

func (s ZoomState) String() string {
	switch s {
	case ZoomUpdate:
		return "update"
	case ZoomStart:
		return "start"
	case ZoomEnd:
		return "end"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Buttons is the button mask used by the gesture recognizer
type Buttons uint32

const (
	ButtonLeft Buttons = 1 << iota
	ButtonMiddle
	ButtonRight
	ButtonBack
	ButtonForward
)

var buttonNames = []struct {
	button Buttons
	name   string
}{
	{ButtonLeft, "left"},
	{ButtonMiddle, "middle"},
	{ButtonRight, "right"},
	{ButtonBack, "back"},
	{ButtonForward, "forward"},
}

// ParseButton parses a button name such as "left"
func ParseButton(name string) (Buttons, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range buttonNames {
		if b.name == name {
			return b.button, nil
		}
	}
	return 0, fmt.Errorf("unknown button: %q", name)
}

func (b Buttons) String() string {
	var parts []string
	for _, bn := range buttonNames {
		if b&bn.button != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "|")
}

// MotionButtons converts recognizer buttons to motion event buttons
func (b Buttons) MotionButtons() input.Buttons {
	var out input.Buttons
	if b&ButtonLeft != 0 {
		out |= input.ButtonPrimary
	}
	if b&ButtonRight != 0 {
		out |= input.ButtonSecondary
	}
	if b&ButtonMiddle != 0 {
		out |= input.ButtonTertiary
	}
	if b&ButtonBack != 0 {
		out |= input.ButtonBack
	}
	if b&ButtonForward != 0 {
		out |= input.ButtonForward
	}
	return out
}

// Gesture is one classified gesture. Which fields are meaningful depends on Type.
type Gesture struct {
	Type GestureType

	// Move, Scroll and Swipe deltas in device space
	DX, DY float32

	// Swipe
	Fingers int

	// Fling
	FlingState FlingState
	VX, VY     float32

	// ButtonsChange
	Down, Up Buttons

	// Pinch
	Scale     float32 // multiplicative change of the finger separation
	ZoomState ZoomState
}

func (g Gesture) String() string {
	switch g.Type {
	case GestureMove, GestureScroll:
		return fmt.Sprintf("%s(%g,%g)", g.Type, g.DX, g.DY)
	case GestureFling:
		return fmt.Sprintf("%s(%s,%g,%g)", g.Type, g.FlingState, g.VX, g.VY)
	case GestureButtonsChange:
		return fmt.Sprintf("%s(down=%s,up=%s)", g.Type, g.Down, g.Up)
	case GestureSwipe:
		return fmt.Sprintf("%s(%d,%g,%g)", g.Type, g.Fingers, g.DX, g.DY)
	case GesturePinch:
		return fmt.Sprintf("%s(%s,%g)", g.Type, g.ZoomState, g.Scale)
	default:
		return fmt.Sprintf("%s()", g.Type)
	}
}

// NewMove creates a cursor movement gesture
func NewMove(dx, dy float32) Gesture {
	return Gesture{Type: GestureMove, DX: dx, DY: dy}
}

// NewScroll creates a two-finger scroll gesture
func NewScroll(dx, dy float32) Gesture {
	return Gesture{Type: GestureScroll, DX: dx, DY: dy}
}

// NewFling creates a fling gesture
func NewFling(state FlingState, vx, vy float32) Gesture {
	return Gesture{Type: GestureFling, FlingState: state, VX: vx, VY: vy}
}

// NewButtonsChange creates a button change gesture
func NewButtonsChange(down, up Buttons) Gesture {
	return Gesture{Type: GestureButtonsChange, Down: down, Up: up}
}

// NewSwipe creates a multi-finger swipe gesture
func NewSwipe(fingers int, dx, dy float32) Gesture {
	return Gesture{Type: GestureSwipe, Fingers: fingers, DX: dx, DY: dy}
}

// NewSwipeLift creates the gesture ending a multi-finger swipe
func NewSwipeLift() Gesture {
	return Gesture{Type: GestureSwipeLift}
}

// NewPinch creates a pinch update scaling the finger separation by scale
func NewPinch(scale float32) Gesture {
	return Gesture{Type: GesturePinch, Scale: scale, ZoomState: ZoomUpdate}
}

// NewPinchStart creates the gesture that begins a pinch
func NewPinchStart() Gesture {
	return Gesture{Type: GesturePinch, Scale: 1, ZoomState: ZoomStart}
}

// NewPinchEnd creates the gesture that ends a pinch
func NewPinchEnd() Gesture {
	return Gesture{Type: GesturePinch, Scale: 1, ZoomState: ZoomEnd}
}
