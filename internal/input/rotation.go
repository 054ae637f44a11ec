package input

import (
	"fmt"

	"gioui.org/f32"
)

// Rotation is the orientation of the logical display relative to the device
type Rotation int

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// RotationFromDegrees converts 0, 90, 180 or 270 degrees to a Rotation
func RotationFromDegrees(degrees int) (Rotation, error) {
	switch degrees {
	case 0:
		return Rotation0, nil
	case 90:
		return Rotation90, nil
	case 180:
		return Rotation180, nil
	case 270:
		return Rotation270, nil
	default:
		return Rotation0, fmt.Errorf("unsupported rotation %d (want 0, 90, 180 or 270)", degrees)
	}
}

// Degrees returns the rotation in degrees
func (r Rotation) Degrees() int {
	return int(r&3) * 90
}

func (r Rotation) String() string {
	return fmt.Sprintf("ROTATION_%d", r.Degrees())
}

// Transform returns the linear map taking device-space deltas into display
// space. The matrix elements are exact, so rotated deltas carry no rounding.
func (r Rotation) Transform() f32.Affine2D {
	switch r & 3 {
	case Rotation90:
		return f32.NewAffine2D(0, 1, 0, -1, 0, 0)
	case Rotation180:
		return f32.NewAffine2D(-1, 0, 0, 0, -1, 0)
	case Rotation270:
		return f32.NewAffine2D(0, -1, 0, 1, 0, 0)
	default:
		return f32.Affine2D{}
	}
}

// RotateDelta maps a device-space delta into display space
func (r Rotation) RotateDelta(d f32.Point) f32.Point {
	if r&3 == Rotation0 {
		return d
	}
	return r.Transform().Transform(d)
}

// Swapped reports whether the display X axis follows the device Y axis
func (r Rotation) Swapped() bool {
	return r&1 == 1
}
