package path

import (
	"math"

	"github.com/matzehuels/tether/pkg/geom"
)

// segment is one drawn piece of a path with its entry and exit directions.
type segment struct {
	out, in geom.Point // direction leaving the start, direction arriving at the end
}

func (p Path) segments() []segment {
	var segs []segment
	var cur, first geom.Point
	for _, c := range p.cmds {
		switch c.Op {
		case MoveTo:
			first = c.To
		case LineTo:
			d := c.To.Sub(cur)
			segs = append(segs, segment{out: d, in: d})
		case CurveTo:
			segs = append(segs, segment{
				out: firstNonZero(c.C1.Sub(cur), c.C2.Sub(cur), c.To.Sub(cur)),
				in:  firstNonZero(c.To.Sub(c.C2), c.To.Sub(c.C1), c.To.Sub(cur)),
			})
		case ArcTo:
			a := arcOf(cur, c)
			segs = append(segs, segment{out: a.tangentAt(cur), in: a.tangentAt(c.To)})
		case Close:
			d := first.Sub(cur)
			segs = append(segs, segment{out: d, in: d})
			cur = first
			continue
		}
		cur = c.To
	}
	return segs
}

func firstNonZero(vs ...geom.Point) geom.Point {
	for _, v := range vs {
		if v.X != 0 || v.Y != 0 {
			return v
		}
	}
	return geom.Point{}
}

// StartTangent returns the direction of travel as the path leaves its start
// point, skipping zero-length segments. Zero when the path never moves.
func (p Path) StartTangent() geom.Point {
	for _, s := range p.segments() {
		if v := firstNonZero(s.out); v != (geom.Point{}) {
			return v
		}
	}
	return geom.Point{}
}

// EndTangent returns the direction of travel as the path reaches its end
// point, skipping zero-length segments.
func (p Path) EndTangent() geom.Point {
	segs := p.segments()
	for i := len(segs) - 1; i >= 0; i-- {
		if v := firstNonZero(segs[i].in); v != (geom.Point{}) {
			return v
		}
	}
	return geom.Point{}
}

// StartAngle is the outward orientation at the start point: the reverse of
// the start tangent. A plug drawn at the start with this rotation points away
// from the line.
func (p Path) StartAngle() float64 {
	t := p.StartTangent()
	if t == (geom.Point{}) {
		return math.Pi
	}
	return geom.Angle(t, geom.Point{})
}

// EndAngle is the orientation of the path as it arrives at its end point.
func (p Path) EndAngle() float64 {
	t := p.EndTangent()
	if t == (geom.Point{}) {
		return 0
	}
	return geom.Angle(geom.Point{}, t)
}
