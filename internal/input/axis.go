package input

import (
	"fmt"
	"math"
)

// Axis identifies a motion event axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisPressure
	AxisRelativeX
	AxisRelativeY
	AxisHScroll
	AxisVScroll
	AxisGestureXOffset
	AxisGestureYOffset
	AxisGesturePinchScaleFactor
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisPressure:
		return "PRESSURE"
	case AxisRelativeX:
		return "RELATIVE_X"
	case AxisRelativeY:
		return "RELATIVE_Y"
	case AxisHScroll:
		return "HSCROLL"
	case AxisVScroll:
		return "VSCROLL"
	case AxisGestureXOffset:
		return "GESTURE_X_OFFSET"
	case AxisGestureYOffset:
		return "GESTURE_Y_OFFSET"
	case AxisGesturePinchScaleFactor:
		return "GESTURE_PINCH_SCALE_FACTOR"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// AxisInfo describes the raw range of a device axis
type AxisInfo struct {
	Valid      bool
	Min        int32
	Max        int32
	Flat       int32
	Fuzz       int32
	Resolution int32
}

// Span returns Max-Min, or 0 when the axis is not usable
func (a AxisInfo) Span() float32 {
	if !a.Valid || a.Max <= a.Min {
		return 0
	}
	return float32(a.Max - a.Min)
}

func (a AxisInfo) String() string {
	if !a.Valid {
		return "unknown range"
	}
	return fmt.Sprintf("min=%d, max=%d, flat=%d, fuzz=%d, resolution=%d",
		a.Min, a.Max, a.Flat, a.Fuzz, a.Resolution)
}

// MotionRange is the advertised range of one axis
type MotionRange struct {
	Axis       Axis
	Source     Source
	Min        float32
	Max        float32
	Flat       float32
	Fuzz       float32
	Resolution float32
}

func (r MotionRange) String() string {
	upper := fmt.Sprintf("%g", r.Max)
	if math.IsInf(float64(r.Max), 1) {
		upper = "inf"
	}
	return fmt.Sprintf("%s: source=%s min=%g max=%s", r.Axis, r.Source, r.Min, upper)
}

// RangeSink receives the axis ranges a device supports
type RangeSink interface {
	AddMotionRange(r MotionRange)
}

// DeviceInfo collects the descriptor of an input device
type DeviceInfo struct {
	ID     int32
	Name   string
	Ranges []MotionRange
}

// AddMotionRange records a range, replacing any earlier one for the same axis and source
func (d *DeviceInfo) AddMotionRange(r MotionRange) {
	for i, existing := range d.Ranges {
		if existing.Axis == r.Axis && existing.Source == r.Source {
			d.Ranges[i] = r
			return
		}
	}
	d.Ranges = append(d.Ranges, r)
}

// Range looks up the range of an axis
func (d *DeviceInfo) Range(axis Axis) (MotionRange, bool) {
	for _, r := range d.Ranges {
		if r.Axis == axis {
			return r, true
		}
	}
	return MotionRange{}, false
}
