// Package plug generates the marker shapes drawn at connector endpoints.
//
// Shapes are [path.Path] values centered on the local origin with arrows
// pointing along +x. [Place] rotates a shape to the line's tangent and moves it
// onto the endpoint.
//
// # Validity
//
// [Generate] returns the empty path, never an error, when the size is not a
// finite number in (0, [MaxSize]] or the kind is empty, unknown, [None] or
// [Behind]. The ceiling keeps pathological sizes from reaching rendering
// buffers downstream.
//
// [Behind] is not drawn by Generate: the caller draws [BehindSquare] beneath
// the stroke.
package plug
