// Package socket resolves where a connector attaches to an element.
//
// A [Position] names an attachment point on a rectangle: its center, the
// midpoint of one of the four edges, or one of the four corners. [Auto] is
// resolved by [Detect] against a reference point, normally the centroid of the element
// at the other end of the connector.
//
// # Auto Detection
//
// Two granularities are supported:
//
//   - [Coarse] (4-way) picks left/right/top/bottom by the dominant axis of the
//     delta between the rectangle center and the reference point. Ties prefer
//     the horizontal axis.
//   - [Fine] (8-way) additionally returns a corner when the two deltas are
//     within [DiagonalRatio] of each other; otherwise it behaves like Coarse.
//
// [Gravity] answers a different question: which side of the rectangle the ray
// toward a target leaves through. It scales the deltas by the rectangle's
// aspect ratio and then uses the same direction primitive.
//
// # Errors
//
// Resolution never fails. Degenerate rectangles yield best-effort points.
// Only a missing rectangle is reported, as ok == false from [ResolveLayout].
package socket
