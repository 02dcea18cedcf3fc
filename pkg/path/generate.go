package path

import (
	"math"

	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/socket"
)

// GravityPull is how far, as a fraction of the chord length, a fluid path
// travels along a socket normal before bending toward the other end.
const GravityPull = 0.5

// Generate builds the path of the given kind from start to end. Curvature is
// ignored by straight, magnet and grid paths; a non-finite curvature is
// replaced by DefaultCurvature. Non-finite coordinates are replaced by zero
// and produce a straight path.
func Generate(start, end geom.Point, kind Kind, curvature float64) Path {
	if !start.IsFinite() || !end.IsFinite() {
		return straight(sanitize(start), sanitize(end))
	}
	if math.IsNaN(curvature) || math.IsInf(curvature, 0) {
		curvature = DefaultCurvature
	}

	var p Path
	switch kind {
	case Arc:
		p = arcPath(start, end, curvature)
	case Fluid:
		p = fluid(start, end, curvature)
	case Magnet:
		p = magnet(start, end)
	case Grid:
		p = grid(start, end)
	default:
		return straight(start, end)
	}
	// Finite endpoints near the float limit can overflow in the
	// intermediate arithmetic.
	if !p.finite() {
		return straight(start, end)
	}
	return p
}

// GenerateGravity is Generate with a gravity hint per endpoint. Fluid paths
// leave start along startGravity's normal and arrive at end against
// endGravity's normal; an endpoint whose gravity has no normal (auto, center)
// keeps the plain fluid control point. All other kinds ignore gravity.
func GenerateGravity(start, end geom.Point, kind Kind, curvature float64, startGravity, endGravity socket.Position) Path {
	base := Generate(start, end, kind, curvature)
	if kind != Fluid || base.Len() != 2 || base.cmds[1].Op != CurveTo {
		return base
	}
	d := geom.Distance(start, end)
	if d == 0 || !isFinite(d) {
		return base
	}

	c := base.cmds[1]
	if n := startGravity.Normal(); n != (geom.Point{}) {
		c.C1 = start.Add(n.Scale(d * GravityPull))
	}
	if n := endGravity.Normal(); n != (geom.Point{}) {
		c.C2 = end.Add(n.Scale(d * GravityPull))
	}
	if p := New(base.cmds[0], c); p.finite() {
		return p
	}
	return base
}

func sanitize(p geom.Point) geom.Point {
	return geom.Pt(geom.Finite(p.X), geom.Finite(p.Y))
}

func straight(start, end geom.Point) Path {
	return New(Move(start), Line(end))
}

func arcPath(start, end geom.Point, curvature float64) Path {
	r := geom.Distance(start, end) * math.Abs(curvature)
	if r == 0 {
		return straight(start, end)
	}
	return New(Move(start), ArcCmd(r, curvature > 0, end))
}

func fluid(start, end geom.Point, curvature float64) Path {
	v := end.Sub(start)
	off := v.LeftNormal().Scale(v.Len() * curvature)
	c1 := start.Add(v.Scale(0.25)).Add(off)
	c2 := start.Add(v.Scale(0.75)).Add(off)
	return New(Move(start), Curve(c1, c2, end))
}

func magnet(start, end geom.Point) Path {
	if geom.DominantAxis(end.X-start.X, end.Y-start.Y) == geom.Horizontal {
		midX := (start.X + end.X) / 2
		return New(Move(start), Line(geom.Pt(midX, start.Y)), Line(geom.Pt(midX, end.Y)), Line(end))
	}
	midY := (start.Y + end.Y) / 2
	return New(Move(start), Line(geom.Pt(start.X, midY)), Line(geom.Pt(end.X, midY)), Line(end))
}

func grid(start, end geom.Point) Path {
	midX := start.X + (end.X-start.X)*0.5
	return New(Move(start), Line(geom.Pt(midX, start.Y)), Line(geom.Pt(midX, end.Y)), Line(end))
}

// BowHeight returns how far a path of the given kind deviates from its chord.
// Straight and orthogonal kinds report 0.
func BowHeight(start, end geom.Point, kind Kind, curvature float64) float64 {
	d := geom.Distance(start, end)
	if math.IsNaN(curvature) || math.IsInf(curvature, 0) {
		curvature = DefaultCurvature
	}
	switch kind {
	case Arc:
		r := d * math.Abs(curvature)
		if r == 0 || !isFinite(r) {
			return 0
		}
		r = math.Max(r, d/2)
		return r - math.Sqrt(math.Max(0, r*r-d*d/4))
	case Fluid:
		// Both controls share the offset k; the curve peaks at t=0.5 with 0.75k.
		return 0.75 * d * math.Abs(curvature)
	}
	return 0
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
