package geom

import "time"

// Rect is an element's layout as reported by a layout provider.
//
// OriginX/OriginY hold the top-left corner in the shared coordinate space.
// X/Y hold an optional secondary local offset that is added to the origin;
// it is usually zero. Width and Height are expected to be non-negative;
// negative values are treated as zero.
type Rect struct {
	X          float64   `json:"x,omitempty" toml:"x" bson:"x"`
	Y          float64   `json:"y,omitempty" toml:"y" bson:"y"`
	Width      float64   `json:"width" toml:"width" bson:"width"`
	Height     float64   `json:"height" toml:"height" bson:"height"`
	OriginX    float64   `json:"origin_x" toml:"origin_x" bson:"origin_x"`
	OriginY    float64   `json:"origin_y" toml:"origin_y" bson:"origin_y"`
	MeasuredAt time.Time `json:"measured_at,omitzero" toml:"measured_at,omitempty" bson:"measured_at,omitempty"`
}

// R builds a Rect whose origin is (x, y).
func R(x, y, w, h float64) Rect {
	return Rect{OriginX: x, OriginY: y, Width: w, Height: h}
}

// Min returns the absolute top-left corner.
func (r Rect) Min() Point {
	return Point{Finite(r.OriginX) + Finite(r.X), Finite(r.OriginY) + Finite(r.Y)}
}

// Size returns the width and height with negative or non-finite values
// replaced by zero.
func (r Rect) Size() (w, h float64) {
	return NonNegative(r.Width), NonNegative(r.Height)
}

// Max returns the absolute bottom-right corner.
func (r Rect) Max() Point {
	w, h := r.Size()
	return r.Min().Add(Point{w, h})
}

// Center returns the centroid.
func (r Rect) Center() Point {
	w, h := r.Size()
	return r.Min().Add(Point{w / 2, h / 2})
}

// Valid reports whether both dimensions are positive. Geometry computed from
// an invalid rect is best-effort.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// NewerThan reports whether r was measured after o.
func (r Rect) NewerThan(o Rect) bool {
	return r.MeasuredAt.After(o.MeasuredAt)
}

// Sub returns the sub-rectangle at local offset (x, y) with size (w, h),
// keeping r's measurement time.
func (r Rect) Sub(x, y, w, h float64) Rect {
	m := r.Min()
	return Rect{
		OriginX:    m.X + Finite(x),
		OriginY:    m.Y + Finite(y),
		Width:      NonNegative(w),
		Height:     NonNegative(h),
		MeasuredAt: r.MeasuredAt,
	}
}
