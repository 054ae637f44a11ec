package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pleimann/gesture-bridge/internal/gesture"
	"github.com/pleimann/gesture-bridge/internal/input"
)

const swipeScript = `
name: three finger swipe
steps:
  - at_ms: 0
    move: {dx: 10, dy: -5}
  - at_ms: 16
    buttons: {down: [left, right]}
  - buttons: {up: [right]}
  - at_ms: 32
    swipe: {fingers: 3, dx: 4, dy: 0}
  - at_ms: 48
    swipe_lift: true
  - at_ms: 64
    pinch: {scale: 1.5}
  - pinch: {state: end}
  - at_ms: 80
    fling: {state: tap_down}
  - orientation: 270
  - expire: true
  - reset: true
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(swipeScript))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Name != "three finger swipe" {
		t.Errorf("Name = %q", s.Name)
	}

	wantKinds := []Kind{
		KindMove, KindButtons, KindButtons, KindSwipe, KindSwipeLift,
		KindPinch, KindPinch, KindFling, KindOrientation, KindExpire, KindReset,
	}
	if len(s.Steps) != len(wantKinds) {
		t.Fatalf("got %d steps, want %d", len(s.Steps), len(wantKinds))
	}
	for i, want := range wantKinds {
		if got := s.Steps[i].Kind(); got != want {
			t.Errorf("step %d Kind() = %q, want %q", i, got, want)
		}
	}

	wantAt := []int{0, 16, 16, 32, 48, 64, 64, 80, 80, 80, 80}
	for i, ms := range wantAt {
		if got := s.Steps[i].At(); got != time.Duration(ms)*time.Millisecond {
			t.Errorf("step %d At() = %v, want %dms", i, got, ms)
		}
	}
}

func TestStepGesture(t *testing.T) {
	s, err := Parse([]byte(swipeScript))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		step int
		want gesture.Gesture
	}{
		{0, gesture.NewMove(10, -5)},
		{1, gesture.NewButtonsChange(gesture.ButtonLeft|gesture.ButtonRight, 0)},
		{2, gesture.NewButtonsChange(0, gesture.ButtonRight)},
		{3, gesture.NewSwipe(3, 4, 0)},
		{4, gesture.NewSwipeLift()},
		{5, gesture.NewPinch(1.5)},
		{6, gesture.NewPinchEnd()},
		{7, gesture.NewFling(gesture.FlingTapDown, 0, 0)},
	}

	for _, tt := range tests {
		got, err := s.Steps[tt.step].Gesture()
		if err != nil {
			t.Errorf("step %d Gesture() error = %v", tt.step, err)
			continue
		}
		if got != tt.want {
			t.Errorf("step %d Gesture() = %v, want %v", tt.step, got, tt.want)
		}
	}

	if _, err := s.Steps[10].Gesture(); err == nil {
		t.Error("reset step Gesture() returned no error")
	}
	r, err := s.Steps[8].Rotation()
	if err != nil || r != input.Rotation270 {
		t.Errorf("Rotation() = %v, %v, want ROTATION_270", r, err)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no steps", "name: empty\n", "no steps"},
		{"two actions", "steps:\n  - move: {dx: 1}\n    reset: true\n", "exactly one action"},
		{"no action", "steps:\n  - at_ms: 5\n", "exactly one action"},
		{"time goes back", "steps:\n  - at_ms: 10\n    reset: true\n  - at_ms: 5\n    reset: true\n", "before the previous step"},
		{"negative time", "steps:\n  - at_ms: -1\n    reset: true\n", "must not be negative"},
		{"unknown button", "steps:\n  - buttons: {down: [thumb]}\n", "unknown button"},
		{"unknown fling state", "steps:\n  - fling: {state: spin}\n", "unknown fling state"},
		{"unknown pinch state", "steps:\n  - pinch: {state: twist}\n", "unknown pinch state"},
		{"missing pinch scale", "steps:\n  - pinch: {state: update}\n", "pinch scale"},
		{"negative pinch scale", "steps:\n  - pinch: {scale: -2}\n", "pinch scale"},
		{"infinite pinch scale", "steps:\n  - pinch: {scale: .inf}\n", "pinch scale"},
		{"nan pinch scale", "steps:\n  - pinch: {scale: .nan}\n", "pinch scale"},
		{"bad orientation", "steps:\n  - orientation: 45\n", "unsupported rotation"},
		{"negative display", "steps:\n  - display: {width: -1, height: 10}\n", "display size"},
		{"infinite display", "steps:\n  - display: {width: .inf, height: 10}\n", "display size"},
		{"inverted axis", "steps:\n  - axes: {x: {min: 10, max: 5}}\n", "axes.x"},
		{"bad yaml", "steps: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSteps(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - orientation: 90
  - display: {width: 640, height: 480}
  - axes:
      x: {min: 0, max: 2000, resolution: 20}
      y: {min: -100, max: 100}
  - move: {dx: 1, dy: 0}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantKinds := []Kind{KindOrientation, KindDisplay, KindAxes, KindMove}
	for i, want := range wantKinds {
		if got := s.Steps[i].Kind(); got != want {
			t.Errorf("step %d Kind() = %q, want %q", i, got, want)
		}
		if got, want := s.Steps[i].Configures(), want != KindMove; got != want {
			t.Errorf("step %d Configures() = %v, want %v", i, got, want)
		}
	}

	if d := s.Steps[1].Display; d.Width != 640 || d.Height != 480 {
		t.Errorf("Display = %+v, want 640x480", *d)
	}

	x, y, err := s.Steps[2].AxisInfo()
	if err != nil {
		t.Fatalf("AxisInfo() error = %v", err)
	}
	if want := (input.AxisInfo{Valid: true, Min: 0, Max: 2000, Resolution: 20}); x != want {
		t.Errorf("x = %+v, want %+v", x, want)
	}
	if want := (input.AxisInfo{Valid: true, Min: -100, Max: 100}); y != want {
		t.Errorf("y = %+v, want %+v", y, want)
	}
	if _, _, err := s.Steps[3].AxisInfo(); err == nil {
		t.Error("AxisInfo() on a move step should fail")
	}
	if _, err := s.Steps[1].Gesture(); err == nil {
		t.Error("Gesture() on a display step should fail")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(swipeScript), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Steps) != 11 {
		t.Errorf("got %d steps, want 11", len(s.Steps))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file returned no error")
	}
}
