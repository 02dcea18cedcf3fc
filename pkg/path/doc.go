// Package path generates the stroke geometry that connects two attachment
// points.
//
// A [Path] is an immutable, renderer-agnostic list of drawing commands
// (move, line, cubic curve, circular arc, close). [Path.String] renders it as
// SVG path data; other renderers can walk [Path.Commands] directly.
//
// # Path Kinds
//
//	straight  one line segment
//	arc       one circular arc, radius = distance × |curvature|
//	fluid     cubic bezier with controls at 25% and 75% of the chord
//	magnet    orthogonal elbow through the midpoint, oriented by the dominant axis
//	grid      orthogonal elbow that is always horizontal-first
//
// Unknown kinds fall back to straight.
//
// # Bow Direction
//
// Curved kinds bow toward the left-hand normal (dy, -dx) of the chord for
// positive curvature and away from it for negative curvature. With y pointing
// down, a left-to-right chord with positive curvature bows upward on screen.
// Arcs encode this as sweep-flag 1 (large-arc-flag is always 0).
//
// # Socket Gravity
//
// [GenerateGravity] lets fluid paths leave and enter along the socket
// normals. Other kinds ignore gravity and produce the same output as
// [Generate].
package path
