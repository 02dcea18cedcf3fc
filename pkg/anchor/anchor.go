// Package anchor decouples connector geometry from element identity.
//
// A Target is anything that can report its rectangle when asked: a layout
// provider entry, a database record, a node in an automatic layout. The
// connector only ever sees an Anchor, so it never depends on the host's
// element-reference type.
//
//	a := anchor.Element(target)           // the whole element
//	p := anchor.Point(target, 10, 4)      // a fixed point inside it
//	r := anchor.Area(target, 0, 0, 20, 8) // a sub-region
//
// Missing or unmeasured targets report errors.ErrNotReady.
package anchor

import (
	"context"
	"fmt"

	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
)

// Target reports an element's current rectangle.
type Target interface {
	Measure(ctx context.Context) (geom.Rect, error)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(ctx context.Context) (geom.Rect, error)

// Measure calls f.
func (f TargetFunc) Measure(ctx context.Context) (geom.Rect, error) { return f(ctx) }

// Rect is a Target that always reports itself.
type Rect geom.Rect

// Measure returns r.
func (r Rect) Measure(context.Context) (geom.Rect, error) { return geom.Rect(r), nil }

// Anchor is the region a connector end attaches to.
type Anchor interface {
	Target
	fmt.Stringer
}

type element struct{ t Target }

type point struct {
	t    Target
	x, y float64
}

type area struct {
	t          Target
	x, y, w, h float64
}

// Element anchors to the whole rectangle of t.
func Element(t Target) Anchor { return element{t} }

// Point anchors to the fixed point (x, y) relative to t's top-left corner.
// The anchor measures as a zero-size rectangle, so every socket resolves to
// the point itself.
func Point(t Target, x, y float64) Anchor { return point{t, x, y} }

// Area anchors to the sub-region (x, y, w, h) of t.
func Area(t Target, x, y, w, h float64) Anchor { return area{t, x, y, w, h} }

func (a element) Measure(ctx context.Context) (geom.Rect, error) {
	return measure(ctx, a.t)
}

func (a point) Measure(ctx context.Context) (geom.Rect, error) {
	r, err := measure(ctx, a.t)
	if err != nil {
		return geom.Rect{}, err
	}
	return r.Sub(a.x, a.y, 0, 0), nil
}

func (a area) Measure(ctx context.Context) (geom.Rect, error) {
	r, err := measure(ctx, a.t)
	if err != nil {
		return geom.Rect{}, err
	}
	return r.Sub(a.x, a.y, a.w, a.h), nil
}

func (a element) String() string { return "element" }
func (a point) String() string   { return fmt.Sprintf("point(%g,%g)", a.x, a.y) }
func (a area) String() string    { return fmt.Sprintf("area(%g,%g,%g,%g)", a.x, a.y, a.w, a.h) }

func measure(ctx context.Context, t Target) (geom.Rect, error) {
	if t == nil {
		return geom.Rect{}, errors.NotReady("anchor has no target")
	}
	if err := ctx.Err(); err != nil {
		return geom.Rect{}, err
	}
	return t.Measure(ctx)
}
