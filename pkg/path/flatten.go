package path

import (
	"math"

	"github.com/matzehuels/tether/pkg/geom"
)

// Flatten approximates p by polylines, one per subpath. Curves and arcs are
// split into steps pieces each (at least 1); lines are kept as is.
func (p Path) Flatten(steps int) [][]geom.Point {
	steps = max(steps, 1)
	var (
		out       [][]geom.Point
		line      []geom.Point
		cur, head geom.Point
	)
	flush := func() {
		if len(line) > 0 {
			out = append(out, line)
		}
		line = nil
	}
	for _, c := range p.cmds {
		switch c.Op {
		case MoveTo:
			flush()
			line = []geom.Point{c.To}
			head = c.To
		case LineTo:
			line = append(line, c.To)
		case CurveTo:
			for i := 1; i <= steps; i++ {
				line = append(line, cubicAt(cur, c.C1, c.C2, c.To, float64(i)/float64(steps)))
			}
		case ArcTo:
			line = append(line, arcOf(cur, c).sample(steps)...)
		case Close:
			line = append(line, head)
			cur = head
			continue
		}
		cur = c.To
	}
	flush()
	return out
}

func cubicAt(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t)).
		Add(p3.Scale(t * t * t))
}

// sample returns steps points along the arc, excluding its start.
func (a arc) sample(steps int) []geom.Point {
	if !a.ok {
		return []geom.Point{a.to}
	}
	a0 := math.Atan2(a.from.Y-a.center.Y, a.from.X-a.center.X)
	a1 := math.Atan2(a.to.Y-a.center.Y, a.to.X-a.center.X)
	delta := a1 - a0
	if a.sweep {
		for delta <= 0 {
			delta += 2 * math.Pi
		}
	} else {
		for delta >= 0 {
			delta -= 2 * math.Pi
		}
	}
	pts := make([]geom.Point, 0, steps)
	for i := 1; i < steps; i++ {
		th := a0 + delta*float64(i)/float64(steps)
		pts = append(pts, a.center.Add(geom.Pt(math.Cos(th), math.Sin(th)).Scale(a.radius)))
	}
	return append(pts, a.to)
}
