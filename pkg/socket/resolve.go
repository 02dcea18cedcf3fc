package socket

import (
	"math"

	"github.com/matzehuels/tether/pkg/geom"
)

// Mode selects the granularity of auto detection.
type Mode int

const (
	Coarse Mode = iota // 4-way: edges only
	Fine               // 8-way: edges and corners
)

// DiagonalRatio is how close |dx| and |dy| must be, as min/max, for Fine
// mode to pick a corner instead of an edge.
const DiagonalRatio = 0.9

// Resolve returns the attachment point for pos on r. Auto without a reference
// point resolves to the centroid.
func Resolve(r geom.Rect, pos Position) geom.Point {
	o := r.Min()
	w, h := r.Size()
	hw, hh := w/2, h/2

	switch pos {
	case Top:
		return geom.Pt(o.X+hw, o.Y)
	case Bottom:
		return geom.Pt(o.X+hw, o.Y+h)
	case Left:
		return geom.Pt(o.X, o.Y+hh)
	case Right:
		return geom.Pt(o.X+w, o.Y+hh)
	case TopLeft:
		return o
	case TopRight:
		return geom.Pt(o.X+w, o.Y)
	case BottomLeft:
		return geom.Pt(o.X, o.Y+h)
	case BottomRight:
		return geom.Pt(o.X+w, o.Y+h)
	}
	return geom.Pt(o.X+hw, o.Y+hh)
}

// Direction returns the socket facing from toward to. It returns Center only
// when both deltas are exactly zero.
func Direction(from, to geom.Point, mode Mode) Position {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return Center
	}

	if mode == Fine && dx != 0 && dy != 0 {
		ax, ay := math.Abs(dx), math.Abs(dy)
		if math.Min(ax, ay)/math.Max(ax, ay) >= DiagonalRatio {
			switch {
			case dx > 0 && dy > 0:
				return BottomRight
			case dx > 0:
				return TopRight
			case dy > 0:
				return BottomLeft
			default:
				return TopLeft
			}
		}
	}

	if geom.DominantAxis(dx, dy) == geom.Horizontal {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Bottom
	}
	return Top
}

// Detect returns the concrete socket of r that faces ref.
func Detect(r geom.Rect, ref geom.Point, mode Mode) Position {
	return Direction(r.Center(), ref, mode)
}

// ResolveAuto resolves the auto socket of r against ref.
func ResolveAuto(r geom.Rect, ref geom.Point, mode Mode) geom.Point {
	return Resolve(r, Detect(r, ref, mode))
}

// Gravity returns the edge of r that the ray from its center toward target
// passes through. Unlike Detect it accounts for the aspect ratio: a target
// above a wide rectangle resolves to Top even when it is further away
// horizontally than vertically.
func Gravity(r geom.Rect, target geom.Point) Position {
	w, h := r.Size()
	c := r.Center()
	dx, dy := target.X-c.X, target.Y-c.Y
	if w > 0 && h > 0 {
		dx, dy = dx*h, dy*w
	}
	return Direction(geom.Point{}, geom.Pt(dx, dy), Coarse)
}

// Choose resolves pos to a concrete socket: Auto is detected against ref
// using mode, everything else is returned unchanged.
func Choose(r geom.Rect, pos Position, ref geom.Point, mode Mode) Position {
	if pos == Auto {
		return Detect(r, ref, mode)
	}
	return pos
}

// ResolveLayout is Resolve for rectangles that may not have been measured.
// A nil rect returns ok == false. When pos is Auto and ref is nil the
// centroid is returned.
func ResolveLayout(r *geom.Rect, pos Position, ref *geom.Point, mode Mode) (geom.Point, bool) {
	if r == nil {
		return geom.Point{}, false
	}
	if pos == Auto && ref != nil {
		pos = Detect(*r, *ref, mode)
	}
	return Resolve(*r, pos), true
}
