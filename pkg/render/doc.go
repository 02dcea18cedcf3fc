// Package render draws connector geometry as SVG.
//
// # Overview
//
// The geometry engine produces path data, plug placements and bounding
// boxes but never draws. This package turns a set of [connector.Geometry]
// values into a standalone SVG document, for previews, the CLI's --format
// svg output and golden files.
//
//	svg := render.SVG([]connector.Geometry{geo},
//	    render.WithElements(elements),
//	    render.WithColor("steelblue"))
//
// Each connector is drawn bottom to top: shadow, outline, behind-square,
// stroke, plugs. The view box is the union of every connector box and
// element, expanded by the padding.
//
// [connector.Geometry]: github.com/matzehuels/tether/pkg/connector
package render
