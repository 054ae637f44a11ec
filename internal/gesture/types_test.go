package gesture

import (
	"testing"
)

func TestGestureTypeString(t *testing.T) {
	tests := []struct {
		gt   GestureType
		want string
	}{
		{GestureMove, "move"},
		{GestureScroll, "scroll"},
		{GestureFling, "fling"},
		{GestureButtonsChange, "buttons_change"},
		{GestureSwipe, "swipe"},
		{GestureSwipeLift, "swipe_lift"},
		{GesturePinch, "pinch"},
		{GestureType(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.gt.String(); got != tt.want {
				t.Errorf("GestureType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		name    string
		want    Buttons
		wantErr bool
	}{
		{"left", ButtonLeft, false},
		{" Right ", ButtonRight, false},
		{"MIDDLE", ButtonMiddle, false},
		{"back", ButtonBack, false},
		{"forward", ButtonForward, false},
		{"thumb", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseButton(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseButton(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseButton(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestButtonsString(t *testing.T) {
	if got := (ButtonLeft | ButtonForward).String(); got != "left|forward" {
		t.Errorf("String() = %q, want %q", got, "left|forward")
	}
	if got := Buttons(0).String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestGestureString(t *testing.T) {
	tests := []struct {
		g    Gesture
		want string
	}{
		{NewMove(1, -2), "move(1,-2)"},
		{NewScroll(0, 0.5), "scroll(0,0.5)"},
		{NewFling(FlingStart, 10, 20), "fling(start,10,20)"},
		{NewButtonsChange(ButtonLeft, ButtonRight), "buttons_change(down=left,up=right)"},
		{NewSwipe(3, 4, 5), "swipe(3,4,5)"},
		{NewSwipeLift(), "swipe_lift()"},
		{NewPinch(1.25), "pinch(update,1.25)"},
		{NewPinchStart(), "pinch(start,1)"},
		{NewPinchEnd(), "pinch(end,1)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.g.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	if g := NewSwipe(4, 1, 2); g.Type != GestureSwipe || g.Fingers != 4 || g.DX != 1 || g.DY != 2 {
		t.Errorf("NewSwipe = %+v", g)
	}
	if g := NewPinch(0.5); g.Type != GesturePinch || g.ZoomState != ZoomUpdate || g.Scale != 0.5 {
		t.Errorf("NewPinch = %+v", g)
	}
	if g := NewFling(FlingTapDown, 0, 0); g.Type != GestureFling || g.FlingState != FlingTapDown {
		t.Errorf("NewFling = %+v", g)
	}
	if g := NewButtonsChange(ButtonBack, 0); g.Down != ButtonBack || g.Up != 0 {
		t.Errorf("NewButtonsChange = %+v", g)
	}
}
