package plug

import (
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
)

// Placement is a shape together with the transform that puts it on a
// connector endpoint. Apply rotates by Angle and then translates by
// Translate.
type Placement struct {
	Kind      Kind       `json:"kind"`
	Size      float64    `json:"size"`
	Translate geom.Point `json:"translate"`
	Angle     float64    `json:"angle"`
	Shape     path.Path  `json:"shape"`
	D         string     `json:"d"` // placed shape as SVG path data
}

// Empty reports whether there is nothing to draw.
func (p Placement) Empty() bool { return p.Shape.Empty() }

// Apply returns the shape in connector coordinates.
func (p Placement) Apply() path.Path {
	return p.Shape.Map(func(q geom.Point) geom.Point {
		return q.Rotate(p.Angle).Add(p.Translate)
	})
}

// Place positions kind at the endpoint at, facing angle (radians, the
// direction the marker should point). Arrows are pulled back by half their
// size so the tip sits on the endpoint; other shapes are centered on it.
// Behind places BehindSquare.
func Place(kind Kind, size float64, at geom.Point, angle float64) Placement {
	shape := Generate(kind, size)
	if kind == Behind {
		shape = BehindSquare(size)
	}
	at = geom.Pt(geom.Finite(at.X), geom.Finite(at.Y))
	pl := Placement{Kind: kind, Size: size, Translate: at, Angle: geom.Finite(angle), Shape: shape}
	if shape.Empty() {
		return pl
	}
	if kind.IsArrow() {
		back := geom.Pt(size/2, 0).Rotate(pl.Angle)
		pl.Translate = at.Sub(back)
	}
	pl.D = pl.Apply().String()
	return pl
}
