package ui

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/input"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   input.MotionEvent
		want []string
	}{
		{
			name: "pointer down",
			ev: input.MotionEvent{
				EventTime:      5 * time.Millisecond,
				Action:         input.ActionPointerDown,
				ActionIndex:    2,
				Classification: input.ClassificationMultiFingerSwipe,
				Pointers: []input.Pointer{
					{PointerProperties: input.PointerProperties{ID: 0}, Coords: input.PointerCoords{Pos: f32.Point{X: 1, Y: 2}}},
					{PointerProperties: input.PointerProperties{ID: 1}, Coords: input.PointerCoords{Pos: f32.Point{X: 3, Y: 4}}},
					{PointerProperties: input.PointerProperties{ID: 2}, Coords: input.PointerCoords{Pos: f32.Point{X: 5, Y: 6}}},
				},
			},
			want: []string{"5ms", "POINTER_DOWN(2)", "MULTI_FINGER_SWIPE", "0:(1.0,2.0)", "2:(5.0,6.0)"},
		},
		{
			name: "button press",
			ev: input.MotionEvent{
				Action:       input.ActionButtonPress,
				ActionButton: input.ButtonSecondary,
				ButtonState:  input.ButtonPrimary | input.ButtonSecondary,
				Pointers:     []input.Pointer{{}},
			},
			want: []string{"BUTTON_PRESS", "button=secondary", "buttons=primary|secondary"},
		},
		{
			name: "momentum end scroll",
			ev: input.MotionEvent{
				Action:   input.ActionScroll,
				Flags:    input.FlagMomentumEnd,
				Pointers: []input.Pointer{{Coords: input.PointerCoords{Scroll: f32.Point{X: 0.5, Y: -1}}}},
			},
			want: []string{"SCROLL", "momentum-end", "scroll=(0.50,-1.00)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatEvent(tt.ev)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("FormatEvent() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestEventPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewEventPrinter(&buf)
	for _, a := range []input.Action{input.ActionDown, input.ActionUp} {
		if err := p.NotifyMotion(input.MotionEvent{Action: a, Pointers: []input.Pointer{{}}}); err != nil {
			t.Fatalf("NotifyMotion() error = %v", err)
		}
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "DOWN") || !strings.Contains(lines[1], "UP") {
		t.Errorf("unexpected lines: %q", lines)
	}
}

func TestFormatRanges(t *testing.T) {
	out := FormatRanges([]input.MotionRange{
		{Axis: input.AxisX, Source: input.SourceMouse, Max: 1919},
		{Axis: input.AxisGesturePinchScaleFactor, Source: input.SourceMouse, Max: float32(math.Inf(1))},
	})
	for _, want := range []string{"Motion ranges", "X", "max=1919", "GESTURE_PINCH_SCALE_FACTOR", "max=inf"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatRanges() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDump(t *testing.T) {
	out := FormatDump("Converter", "Classification: NONE\n")
	if !strings.Contains(out, "Converter") || !strings.Contains(out, "Classification: NONE") {
		t.Errorf("FormatDump() = %q", out)
	}
}

func TestFormatDevice(t *testing.T) {
	out := formatDevice(DeviceInfo{VendorID: 0x05AC, ProductID: 0x0265, Manufacturer: "Apple", Product: "Magic Trackpad", Touchpad: true})
	for _, want := range []string{"0x05AC:0x0265", "Magic Trackpad", "by Apple", "[touchpad]"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatDevice() missing %q: %q", want, out)
		}
	}
	if got := DeviceName(DeviceInfo{}); got != "Unknown Device" {
		t.Errorf("DeviceName() = %q, want Unknown Device", got)
	}
}
