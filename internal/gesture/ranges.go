package gesture

import (
	"math"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// PopulateMotionRanges reports the axes the converter emits. X and Y follow
// the display bounds when known; otherwise the raw touchpad ranges are used,
// swapped when the display is rotated by 90 or 270 degrees.
func (c *Converter) PopulateMotionRanges(sink input.RangeSink) {
	x, y := c.positionRanges()
	sink.AddMotionRange(x)
	sink.AddMotionRange(y)

	c.addRange(sink, input.AxisPressure, 0, 1)
	c.addRange(sink, input.AxisHScroll, -1, 1)
	c.addRange(sink, input.AxisVScroll, -1, 1)
	c.addRange(sink, input.AxisGestureXOffset, -1, 1)
	c.addRange(sink, input.AxisGestureYOffset, -1, 1)
	c.addRange(sink, input.AxisGesturePinchScaleFactor, 0, float32(math.Inf(1)))
}

func (c *Converter) addRange(sink input.RangeSink, axis input.Axis, lo, hi float32) {
	sink.AddMotionRange(input.MotionRange{Axis: axis, Source: source, Min: lo, Max: hi})
}

func (c *Converter) positionRanges() (input.MotionRange, input.MotionRange) {
	if c.display.X > 0 && c.display.Y > 0 {
		return input.MotionRange{Axis: input.AxisX, Source: source, Max: c.display.X - 1},
			input.MotionRange{Axis: input.AxisY, Source: source, Max: c.display.Y - 1}
	}

	rawX, rawY := c.xAxis, c.yAxis
	if c.orientation.Swapped() {
		rawX, rawY = rawY, rawX
	}
	return rawRange(input.AxisX, rawX), rawRange(input.AxisY, rawY)
}

func rawRange(axis input.Axis, info input.AxisInfo) input.MotionRange {
	r := input.MotionRange{Axis: axis, Source: source}
	if !info.Valid {
		return r
	}
	r.Min = float32(info.Min)
	r.Max = float32(info.Max)
	r.Flat = float32(info.Flat)
	r.Fuzz = float32(info.Fuzz)
	r.Resolution = float32(info.Resolution)
	return r
}
