package bounds

import (
	"math"

	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
)

// Fixed paddings added beyond the stroke width.
const (
	ArcPadding     = 50.0
	DefaultPadding = 20.0
)

// Shadow is a drop shadow offset by (DX, DY) and softened by Blur.
type Shadow struct {
	DX      float64 `json:"dx" toml:"dx"`
	DY      float64 `json:"dy" toml:"dy"`
	Blur    float64 `json:"blur" toml:"blur"`
	Color   string  `json:"color,omitempty" toml:"color"`
	Opacity float64 `json:"opacity,omitempty" toml:"opacity"`
}

// Params holds every input of Compute.
type Params struct {
	Start, End  geom.Point
	Kind        path.Kind
	Curvature   float64
	StrokeWidth float64
	Outline     *Outline
	Shadow      *Shadow
}

// Box returns the padded drawing area for a connector without shadow.
func Box(start, end geom.Point, kind path.Kind, curvature, strokeWidth float64, outline *Outline) geom.Box {
	return Compute(Params{
		Start:       start,
		End:         end,
		Kind:        kind,
		Curvature:   curvature,
		StrokeWidth: strokeWidth,
		Outline:     outline,
	})
}

// Padding returns the kind-specific padding for a connector.
func Padding(start, end geom.Point, kind path.Kind, curvature float64) float64 {
	pad := DefaultPadding
	if kind == path.Arc {
		pad = ArcPadding
	}
	if kind.Curved() {
		pad = math.Max(pad, path.BowHeight(start, end, kind, curvature))
	}
	return pad
}

// Compute returns the padded drawing area described by p.
func Compute(p Params) geom.Box {
	start := geom.Pt(geom.Finite(p.Start.X), geom.Finite(p.Start.Y))
	end := geom.Pt(geom.Finite(p.End.X), geom.Finite(p.End.Y))

	pad := geom.NonNegative(p.StrokeWidth) + Padding(start, end, p.Kind, p.Curvature) + p.Outline.Extent()
	box := geom.BoxOf(start, end).Expand(pad)

	if s := p.Shadow; s != nil {
		shadow := box.Translate(geom.Finite(s.DX), geom.Finite(s.DY)).Expand(s.Blur)
		box = box.Union(shadow)
	}
	return box
}
