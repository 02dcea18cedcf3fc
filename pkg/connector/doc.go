// Package connector composes the geometry engine into one call.
//
// Given two rectangles and Options, Solve runs the full pipeline:
//
//  1. resolve each socket, detecting auto sockets against the other end's
//     centroid
//  2. normalize both attachment points to the container origin as a pair
//  3. generate the path and its padded bounding box
//  4. place the plugs using the path's end tangents
//
// Compute does the same for two anchors, measuring them first. It is the only
// function here that can fail: an anchor without a rectangle reports
// errors.ErrNotReady, which callers treat as "retry after the next layout".
//
// Solve is pure and safe for concurrent use.
package connector
