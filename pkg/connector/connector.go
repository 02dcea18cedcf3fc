package connector

import (
	"context"

	"github.com/matzehuels/tether/pkg/anchor"
	"github.com/matzehuels/tether/pkg/bounds"
	"github.com/matzehuels/tether/pkg/coords"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/socket"
)

// Geometry is everything a renderer needs to draw one connector. Points,
// path, box and plugs share the container-relative coordinate space.
type Geometry struct {
	StartSocket socket.Position `json:"start_socket"`
	EndSocket   socket.Position `json:"end_socket"`
	Start       geom.Point      `json:"start"`
	End         geom.Point      `json:"end"`

	Kind        path.Kind       `json:"kind"`
	Path        path.Path       `json:"path"`
	D           string          `json:"d"`
	StrokeWidth float64         `json:"stroke_width"`
	Outline     *bounds.Outline `json:"outline,omitempty"`
	Shadow      *bounds.Shadow  `json:"shadow,omitempty"`
	Box         geom.Box        `json:"box"`

	StartPlug *plug.Placement `json:"start_plug,omitempty"`
	EndPlug   *plug.Placement `json:"end_plug,omitempty"`
}

// Solve computes the geometry of a connector from start to end.
func Solve(start, end geom.Rect, opts Options) Geometry {
	opts = opts.WithDefaults()
	mode := opts.mode()

	startPos := socket.Choose(start, opts.StartSocket, end.Center(), mode)
	endPos := socket.Choose(end, opts.EndSocket, start.Center(), mode)

	abs := coords.P(socket.Resolve(start, startPos), socket.Resolve(end, endPos))
	rel := coords.ToContainerRelative(abs, opts.Origin)

	var p path.Path
	if opts.Gravity {
		p = path.GenerateGravity(rel.Start, rel.End, opts.Path, opts.Curvature, startPos, endPos)
	} else {
		p = path.Generate(rel.Start, rel.End, opts.Path, opts.Curvature)
	}

	g := Geometry{
		StartSocket: startPos,
		EndSocket:   endPos,
		Start:       rel.Start,
		End:         rel.End,
		Kind:        opts.Path,
		Path:        p,
		D:           p.String(),
		StrokeWidth: opts.StrokeWidth,
		Outline:     opts.Outline,
		Shadow:      opts.Shadow,
	}
	g.StartPlug = place(opts.StartPlug, opts.StartPlugSize, rel.Start, p.StartAngle())
	g.EndPlug = place(opts.EndPlug, opts.EndPlugSize, rel.End, p.EndAngle())
	g.Box = box(g, opts)
	return g
}

// Compute measures both anchors and solves the connector between them.
func Compute(ctx context.Context, start, end anchor.Anchor, opts Options) (*Geometry, error) {
	if start == nil || end == nil {
		return nil, errors.NotReady("connector needs two anchors")
	}
	sr, err := start.Measure(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "measure start %s", start)
	}
	er, err := end.Measure(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "measure end %s", end)
	}
	g := Solve(sr, er, opts)
	return &g, nil
}

func place(kind plug.Kind, size float64, at geom.Point, angle float64) *plug.Placement {
	pl := plug.Place(kind, size, at, angle)
	if pl.Empty() {
		return nil
	}
	return &pl
}

// box is the padded bounds of the line, grown to cover gravity control
// points and plugs that reach beyond the fixed padding.
func box(g Geometry, opts Options) geom.Box {
	b := bounds.Compute(bounds.Params{
		Start:       g.Start,
		End:         g.End,
		Kind:        g.Kind,
		Curvature:   opts.Curvature,
		StrokeWidth: g.StrokeWidth,
		Outline:     g.Outline,
		Shadow:      g.Shadow,
	})
	grow := g.StrokeWidth + g.Outline.Extent()
	b = b.Union(g.Path.Bounds().Expand(grow))
	for _, pl := range []*plug.Placement{g.StartPlug, g.EndPlug} {
		if pl != nil {
			b = b.Union(pl.Apply().Bounds().Expand(grow))
		}
	}
	return b
}
