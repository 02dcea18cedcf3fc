package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
)

// Defaults used when no option overrides them.
const (
	DefaultColor   = "coral"
	DefaultPadding = 10.0
)

// Element is a labeled rectangle drawn under the connectors.
type Element struct {
	ID   string
	Rect geom.Rect
}

type Option func(*renderer)

type renderer struct {
	elements []Element
	color    string
	padding  float64
	origin   *geom.Point
}

// WithElements draws the given rectangles beneath the connectors.
func WithElements(es []Element) Option { return func(r *renderer) { r.elements = es } }

// WithColor sets the stroke and plug color.
func WithColor(c string) Option { return func(r *renderer) { r.color = c } }

// WithPadding sets the space around the content.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = geom.NonNegative(p) } }

// WithOrigin shifts elements into the container-relative space the
// geometry was computed in.
func WithOrigin(o *geom.Point) Option { return func(r *renderer) { r.origin = o } }

// SVG renders geos as a standalone SVG document.
func SVG(geos []connector.Geometry, opts ...Option) []byte {
	r := renderer{color: DefaultColor, padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	view := r.viewBox(geos)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(view.X), num(view.Y), num(view.Width), num(view.Height), view.Width, view.Height)

	for _, e := range r.elements {
		r.renderElement(&buf, e)
	}
	for i := range geos {
		r.renderConnector(&buf, &geos[i])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) elementBox(e Element) geom.Box {
	b := geom.BoxOf(e.Rect.Min(), e.Rect.Max())
	if r.origin != nil {
		b = b.Translate(-geom.Finite(r.origin.X), -geom.Finite(r.origin.Y))
	}
	return b
}

func (r *renderer) viewBox(geos []connector.Geometry) geom.Box {
	var (
		view  geom.Box
		found bool
	)
	add := func(b geom.Box) {
		if !found {
			view, found = b, true
			return
		}
		view = view.Union(b)
	}
	for _, g := range geos {
		add(g.Box)
	}
	for _, e := range r.elements {
		add(r.elementBox(e))
	}
	return view.Expand(r.padding)
}

func (r *renderer) renderElement(buf *bytes.Buffer, e Element) {
	b := r.elementBox(e)
	fmt.Fprintf(buf, `  <rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#999" stroke-dasharray="4 2"/>`+"\n",
		html.EscapeString(e.ID), num(b.X), num(b.Y), num(b.Width), num(b.Height))
}

func (r *renderer) renderConnector(buf *bytes.Buffer, g *connector.Geometry) {
	buf.WriteString("  <g>\n")
	if s := g.Shadow; s != nil {
		shifted := g.Path.Map(func(p geom.Point) geom.Point { return p.Add(geom.Pt(s.DX, s.DY)) })
		fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
			shifted, attr(s.Color, "black"), num(s.Opacity), num(g.StrokeWidth+2*geom.NonNegative(s.Blur)))
	}
	if o := g.Outline; o.Extent() > 0 {
		fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
			g.D, attr(o.Color, "indianred"), num(o.Opacity), num(g.StrokeWidth+2*o.Extent()))
	}
	for _, p := range []*plug.Placement{g.StartPlug, g.EndPlug} {
		if p != nil && p.Kind == plug.Behind {
			r.renderPlug(buf, p)
		}
	}
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		g.D, r.color, num(g.StrokeWidth))
	for _, p := range []*plug.Placement{g.StartPlug, g.EndPlug} {
		if p != nil && p.Kind != plug.Behind {
			r.renderPlug(buf, p)
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderPlug(buf *bytes.Buffer, p *plug.Placement) {
	if p.Empty() {
		return
	}
	fill := r.color
	if !p.Shape.Closed() {
		// Open shapes (crosshair) are stroked.
		fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="1"/>`+"\n", p.D, fill)
		return
	}
	fmt.Fprintf(buf, `    <path d="%s" fill="%s"/>`+"\n", p.D, fill)
}

func attr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return html.EscapeString(v)
}

func num(v float64) string { return path.FormatNumber(v) }
