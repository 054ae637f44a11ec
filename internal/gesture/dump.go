package gesture

import (
	"fmt"
	"strings"

	"github.com/pleimann/gesture-bridge/internal/input"
)

// Dump returns a multi-line description of the converter state
func (c *Converter) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Orientation: %s\n", c.orientation)
	fmt.Fprintf(&sb, "Axis X: %s\n", c.xAxis)
	fmt.Fprintf(&sb, "Axis Y: %s\n", c.yAxis)
	fmt.Fprintf(&sb, "Cursor: (%.1f, %.1f)\n", c.s.cursor.X, c.s.cursor.Y)
	fmt.Fprintf(&sb, "Button state: %s\n", c.s.buttonState)
	fmt.Fprintf(&sb, "Down time: %s\n", c.s.downTime)
	fmt.Fprintf(&sb, "Classification: %s\n", c.s.classification)

	switch c.s.classification {
	case input.ClassificationMultiFingerSwipe:
		fmt.Fprintf(&sb, "Swipe finger count: %d\n", c.s.swipeFingerCount)
	case input.ClassificationPinch:
		fmt.Fprintf(&sb, "Pinch separation: %.1f\n", c.s.pinchSeparation)
	}
	for i := 0; i < c.s.liveFingers(); i++ {
		p := c.s.fakeFingers[i].Pos
		fmt.Fprintf(&sb, "  Finger %d: (%.1f, %.1f)\n", i, p.X, p.Y)
	}
	return sb.String()
}
