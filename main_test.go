package main

import (
	"context"
	"reflect"
	"testing"

	"gioui.org/f32"

	"github.com/pleimann/gesture-bridge/internal/config"
	"github.com/pleimann/gesture-bridge/internal/input"
	"github.com/pleimann/gesture-bridge/internal/script"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Display.Width = 1000
	cfg.Display.Height = 800
	cfg.Axes.X = config.AxisRange{Min: 0, Max: 1000}
	cfg.Axes.Y = config.AxisRange{Min: 0, Max: 500}
	return newApp(cfg, appOptions{quiet: true})
}

func mustParse(t *testing.T, src string) *script.Script {
	t.Helper()
	sc, err := script.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return sc
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{"0x05AC", 0x05AC, false},
		{"0X0265", 0x0265, false},
		{"1452", 1452, false},
		{" 42 ", 42, false},
		{"0x10000", 0, true},
		{"pad", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientationStepClosesSwipe(t *testing.T) {
	app := newTestApp(t)
	sc := mustParse(t, `
steps:
  - swipe: {fingers: 3, dx: 0, dy: 0}
  - at_ms: 10
    orientation: 90
  - swipe: {fingers: 3, dx: 10, dy: 0}
`)

	if err := app.Run(context.Background(), sc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	evs := app.recorder.Events()
	var got []input.Action
	for _, ev := range evs {
		got = append(got, ev.Action)
	}
	down := []input.Action{input.ActionDown, input.ActionPointerDown, input.ActionPointerDown, input.ActionMove}
	up := []input.Action{input.ActionPointerUp, input.ActionPointerUp, input.ActionUp}
	var want []input.Action
	want = append(want, down...)
	want = append(want, up...)
	want = append(want, down...)
	want = append(want, up...)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}

	move := evs[len(down)+len(up)+3]
	if p := move.Pointers[0].Coords.Pos; p != (f32.Point{X: 400, Y: 390}) {
		t.Errorf("rotated swipe finger 0 = %v, want (400,390)", p)
	}
	if n := app.verifier.Open(); n != 0 {
		t.Errorf("verifier reports %d open pointers", n)
	}
}

func TestDisplayAndAxesSteps(t *testing.T) {
	app := newTestApp(t)
	sc := mustParse(t, `
steps:
  - display: {width: 300, height: 200}
  - axes:
      x: {min: 0, max: 200}
      y: {min: -50, max: 50}
  - swipe: {fingers: 2, dx: 50, dy: 25}
`)

	for i := range sc.Steps {
		if err := app.runStep(sc.Steps[i].At(), sc.Steps[i].At(), &sc.Steps[i]); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	if got, want := app.converter.Position(), (f32.Point{X: 299, Y: 199}); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
	evs := app.recorder.Events()
	move := evs[len(evs)-1]
	if got, want := move.Pointers[0].Coords.GestureOffset, (f32.Point{X: 0.25, Y: 0.25}); got != want {
		t.Errorf("GestureOffset = %v, want %v", got, want)
	}
}
