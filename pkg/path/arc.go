package path

import (
	"math"

	"github.com/matzehuels/tether/pkg/geom"
)

// arc is the center parameterization of an ArcTo command.
type arc struct {
	from, to geom.Point
	center   geom.Point
	radius   float64 // effective radius, never below half the chord
	bulge    geom.Point
	sweep    bool
	ok       bool
}

// arcOf converts an endpoint-parameterized arc to center form following the
// SVG rules for a circle with no x-axis rotation. The large-arc flag is
// ignored; only minor arcs (or half circles) are produced by this package.
func arcOf(from geom.Point, c Command) arc {
	a := arc{from: from, to: c.To, sweep: c.Sweep}
	d := geom.Distance(from, c.To)
	if d == 0 || c.Radius <= 0 || !isFinite(d) || !isFinite(c.Radius) {
		return a
	}
	half := d / 2
	a.radius = math.Max(c.Radius, half)
	h := math.Sqrt(math.Max(0, a.radius*a.radius-half*half))
	n := c.To.Sub(from).LeftNormal()
	if !c.Sweep {
		n = n.Scale(-1)
	}
	mid := from.Lerp(c.To, 0.5)
	a.bulge = n
	a.center = mid.Sub(n.Scale(h))
	a.ok = true
	return a
}

// apex returns the point of the arc furthest from its chord.
func (a arc) apex() geom.Point {
	if !a.ok {
		return a.from.Lerp(a.to, 0.5)
	}
	return a.center.Add(a.bulge.Scale(a.radius))
}

// extremes returns the apex and the axis-extreme points of the circle that
// lie on the arc.
func (a arc) extremes() []geom.Point {
	if !a.ok {
		return nil
	}
	out := []geom.Point{a.apex()}
	mid := a.from.Lerp(a.to, 0.5)
	for _, d := range []geom.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		q := a.center.Add(d.Scale(a.radius))
		v := q.Sub(mid)
		if v.X*a.bulge.X+v.Y*a.bulge.Y >= 0 {
			out = append(out, q)
		}
	}
	return out
}

// tangentAt returns the direction of travel at p, a point on the arc.
func (a arc) tangentAt(p geom.Point) geom.Point {
	if !a.ok {
		return a.to.Sub(a.from)
	}
	rv := p.Sub(a.center)
	if a.sweep {
		return geom.Pt(-rv.Y, rv.X)
	}
	return geom.Pt(rv.Y, -rv.X)
}

// Apex returns the furthest point from the chord of the first arc in p, and
// false when p has no arc. Useful for checking which side an arc bows to.
func (p Path) Apex() (geom.Point, bool) {
	var cur geom.Point
	for _, c := range p.cmds {
		if c.Op == ArcTo {
			a := arcOf(cur, c)
			return a.apex(), a.ok
		}
		if c.Op != Close {
			cur = c.To
		}
	}
	return geom.Point{}, false
}
