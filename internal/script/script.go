package script

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pleimann/gesture-bridge/internal/config"
	"github.com/pleimann/gesture-bridge/internal/gesture"
	"github.com/pleimann/gesture-bridge/internal/input"
)

// Script is a recorded or hand-written sequence of classified gestures
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one entry of a script. Exactly one action field must be set.
// AtMs is the step time in milliseconds; when omitted the previous step's
// time is reused.
type Step struct {
	AtMs *int64 `yaml:"at_ms,omitempty"`

	Move        *Delta         `yaml:"move,omitempty"`
	Scroll      *Delta         `yaml:"scroll,omitempty"`
	Fling       *Fling         `yaml:"fling,omitempty"`
	Buttons     *ButtonsChange `yaml:"buttons,omitempty"`
	Swipe       *Swipe         `yaml:"swipe,omitempty"`
	SwipeLift   bool           `yaml:"swipe_lift,omitempty"`
	Pinch       *Pinch         `yaml:"pinch,omitempty"`
	Reset       bool           `yaml:"reset,omitempty"`
	Expire      bool           `yaml:"expire,omitempty"`
	Orientation *int           `yaml:"orientation,omitempty"`
	Display     *Display       `yaml:"display,omitempty"`
	Axes        *Axes          `yaml:"axes,omitempty"`

	at time.Duration
}

type Delta struct {
	DX float32 `yaml:"dx"`
	DY float32 `yaml:"dy"`
}

type Fling struct {
	State string  `yaml:"state"` // start or tap_down
	VX    float32 `yaml:"vx"`
	VY    float32 `yaml:"vy"`
}

type ButtonsChange struct {
	Down []string `yaml:"down,omitempty"`
	Up   []string `yaml:"up,omitempty"`
}

type Swipe struct {
	Fingers int     `yaml:"fingers"`
	DX      float32 `yaml:"dx"`
	DY      float32 `yaml:"dy"`
}

type Pinch struct {
	Scale float32 `yaml:"scale"`
	State string  `yaml:"state,omitempty"` // update (default), start or end
}

// Display sets the logical display size; zero leaves the cursor unbounded
type Display struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Axes sets the raw touchpad calibration; an all-zero range is uncalibrated
type Axes struct {
	X config.AxisRange `yaml:"x"`
	Y config.AxisRange `yaml:"y"`
}

// Kind names the action a step performs
type Kind string

const (
	KindMove        Kind = "move"
	KindScroll      Kind = "scroll"
	KindFling       Kind = "fling"
	KindButtons     Kind = "buttons"
	KindSwipe       Kind = "swipe"
	KindSwipeLift   Kind = "swipe_lift"
	KindPinch       Kind = "pinch"
	KindReset       Kind = "reset"
	KindExpire      Kind = "expire"
	KindOrientation Kind = "orientation"
	KindDisplay     Kind = "display"
	KindAxes        Kind = "axes"
)

// Load reads and validates a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("script validation failed: %w", err)
	}

	return &s, nil
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("script has no steps")
	}

	var last time.Duration
	for i := range s.Steps {
		step := &s.Steps[i]
		kinds := step.kinds()
		if len(kinds) != 1 {
			return fmt.Errorf("step %d: want exactly one action, got %d (%s)", i, len(kinds), joinKinds(kinds))
		}

		if step.AtMs != nil {
			if *step.AtMs < 0 {
				return fmt.Errorf("step %d: at_ms must not be negative", i)
			}
			at := time.Duration(*step.AtMs) * time.Millisecond
			if at < last {
				return fmt.Errorf("step %d: at_ms %d is before the previous step", i, *step.AtMs)
			}
			last = at
		}
		step.at = last

		switch kinds[0] {
		case KindReset, KindExpire:
		case KindOrientation:
			if _, err := input.RotationFromDegrees(*step.Orientation); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case KindDisplay:
			if !validSize(step.Display.Width) || !validSize(step.Display.Height) {
				return fmt.Errorf("step %d: display size must be finite and not negative", i)
			}
		case KindAxes:
			if err := validateAxis("x", step.Axes.X); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			if err := validateAxis("y", step.Axes.Y); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		default:
			if _, err := step.Gesture(); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}

func (st *Step) kinds() []Kind {
	var kinds []Kind
	if st.Move != nil {
		kinds = append(kinds, KindMove)
	}
	if st.Scroll != nil {
		kinds = append(kinds, KindScroll)
	}
	if st.Fling != nil {
		kinds = append(kinds, KindFling)
	}
	if st.Buttons != nil {
		kinds = append(kinds, KindButtons)
	}
	if st.Swipe != nil {
		kinds = append(kinds, KindSwipe)
	}
	if st.SwipeLift {
		kinds = append(kinds, KindSwipeLift)
	}
	if st.Pinch != nil {
		kinds = append(kinds, KindPinch)
	}
	if st.Reset {
		kinds = append(kinds, KindReset)
	}
	if st.Expire {
		kinds = append(kinds, KindExpire)
	}
	if st.Orientation != nil {
		kinds = append(kinds, KindOrientation)
	}
	if st.Display != nil {
		kinds = append(kinds, KindDisplay)
	}
	if st.Axes != nil {
		kinds = append(kinds, KindAxes)
	}
	return kinds
}

func validSize(v float32) bool {
	return v >= 0 && !math.IsInf(float64(v), 1)
}

func validateAxis(name string, a config.AxisRange) error {
	if a.Min == 0 && a.Max == 0 {
		return nil
	}
	if a.Max <= a.Min {
		return fmt.Errorf("axes.%s: max (%d) must be greater than min (%d)", name, a.Max, a.Min)
	}
	return nil
}

// Configures reports whether the step changes converter settings rather
// than feeding it a gesture
func (st *Step) Configures() bool {
	switch st.Kind() {
	case KindOrientation, KindDisplay, KindAxes:
		return true
	}
	return false
}

func joinKinds(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Kind returns the action of a validated step
func (st *Step) Kind() Kind {
	kinds := st.kinds()
	if len(kinds) == 0 {
		return ""
	}
	return kinds[0]
}

// At returns the step time
func (st *Step) At() time.Duration {
	return st.at
}

// Rotation returns the rotation of an orientation step
func (st *Step) Rotation() (input.Rotation, error) {
	if st.Orientation == nil {
		return input.Rotation0, fmt.Errorf("not an orientation step")
	}
	return input.RotationFromDegrees(*st.Orientation)
}

// AxisInfo returns the raw axis calibration of an axes step
func (st *Step) AxisInfo() (x, y input.AxisInfo, err error) {
	if st.Axes == nil {
		return x, y, fmt.Errorf("not an axes step")
	}
	return st.Axes.X.AxisInfo(), st.Axes.Y.AxisInfo(), nil
}

// Gesture converts a gesture step to the gesture it describes
func (st *Step) Gesture() (gesture.Gesture, error) {
	switch st.Kind() {
	case KindMove:
		return gesture.NewMove(st.Move.DX, st.Move.DY), nil
	case KindScroll:
		return gesture.NewScroll(st.Scroll.DX, st.Scroll.DY), nil
	case KindFling:
		state, err := parseFlingState(st.Fling.State)
		if err != nil {
			return gesture.Gesture{}, err
		}
		return gesture.NewFling(state, st.Fling.VX, st.Fling.VY), nil
	case KindButtons:
		down, err := parseButtons(st.Buttons.Down)
		if err != nil {
			return gesture.Gesture{}, err
		}
		up, err := parseButtons(st.Buttons.Up)
		if err != nil {
			return gesture.Gesture{}, err
		}
		return gesture.NewButtonsChange(down, up), nil
	case KindSwipe:
		return gesture.NewSwipe(st.Swipe.Fingers, st.Swipe.DX, st.Swipe.DY), nil
	case KindSwipeLift:
		return gesture.NewSwipeLift(), nil
	case KindPinch:
		return parsePinch(st.Pinch)
	default:
		return gesture.Gesture{}, fmt.Errorf("%q step is not a gesture", st.Kind())
	}
}

func parseFlingState(s string) (gesture.FlingState, error) {
	switch strings.ToLower(s) {
	case "", "start":
		return gesture.FlingStart, nil
	case "tap_down":
		return gesture.FlingTapDown, nil
	default:
		return 0, fmt.Errorf("unknown fling state: %q", s)
	}
}

func parseButtons(names []string) (gesture.Buttons, error) {
	var b gesture.Buttons
	for _, name := range names {
		button, err := gesture.ParseButton(name)
		if err != nil {
			return 0, err
		}
		b |= button
	}
	return b, nil
}

func parsePinch(p *Pinch) (gesture.Gesture, error) {
	switch strings.ToLower(p.State) {
	case "", "update":
		if !(p.Scale > 0) || math.IsInf(float64(p.Scale), 1) {
			return gesture.Gesture{}, fmt.Errorf("pinch scale must be finite and greater than zero, got %v", p.Scale)
		}
		return gesture.NewPinch(p.Scale), nil
	case "start":
		return gesture.NewPinchStart(), nil
	case "end":
		return gesture.NewPinchEnd(), nil
	default:
		return gesture.Gesture{}, fmt.Errorf("unknown pinch state: %q", p.State)
	}
}
