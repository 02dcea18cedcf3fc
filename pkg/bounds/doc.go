// Package bounds computes the drawing area a connector needs.
//
// The box spans both endpoints and is expanded, in order, by the stroke
// width, a per-kind padding, and the outline width. An optional drop shadow
// widens it further. The result is always padded, so a renderer can size its
// surface from it directly without clipping stroke, markers or outline.
//
// # Padding
//
//	arc            ArcPadding (50), or the bow height when larger
//	fluid          DefaultPadding (20), or the bow height when larger
//	everything else DefaultPadding (20)
//
// Width and height grow monotonically with stroke width and outline width.
package bounds
