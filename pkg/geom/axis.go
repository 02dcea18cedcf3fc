package geom

import "math"

// Axis is a primary direction of travel.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// DominantAxis returns the axis with the larger absolute delta. Ties,
// including the zero vector, resolve to Horizontal.
func DominantAxis(dx, dy float64) Axis {
	if math.Abs(dx) >= math.Abs(dy) {
		return Horizontal
	}
	return Vertical
}
