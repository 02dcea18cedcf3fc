// Package geom provides the 2D primitives shared by every stage of connector
// geometry: points, element rectangles, padded boxes, and the single
// dominant-axis primitive that all direction decisions go through.
//
// # Coordinate System
//
// Coordinates are screen-style: x grows to the right and y grows downward.
// An angle of 0 points right; positive angles rotate toward +y (visually
// clockwise).
//
// # Direction Resolution
//
// [DominantAxis] is the only place that decides between horizontal and
// vertical. Socket auto-detection, gravity, and the magnet path all call it,
// so they share one tie-break rule: when |dx| == |dy| the horizontal axis wins.
//
// # Concurrency
//
// All types are immutable values and every function is pure.
package geom
