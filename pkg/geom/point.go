package geom

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" toml:"x" bson:"x"`
	Y float64 `json:"y" toml:"y" bson:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Eq(q Point) bool       { return p.X == q.X && p.Y == q.Y }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Rotate rotates p around the origin by rad.
func (p Point) Rotate(rad float64) Point {
	sin, cos := math.Sincos(rad)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// LeftNormal returns the unit vector obtained by rotating p by -90°,
// (dy, -dx)/|p|. For a left-to-right vector it points up the screen.
// The zero vector has no normal and yields the zero point.
func (p Point) LeftNormal() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.Y / l, -p.X / l}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool { return isFinite(p.X) && isFinite(p.Y) }

// String implements fmt.Stringer.
func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// Angle returns the direction from p1 to p2 in radians, in (-π, π].
func Angle(p1, p2 Point) float64 {
	a := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
	if a == -math.Pi {
		return math.Pi // atan2(-0, x<0)
	}
	return a
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

// NonNegative returns v clamped to [0, +inf), mapping NaN and infinities to 0.
func NonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}
