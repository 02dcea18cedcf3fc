package geom

import "math"

// Box is an axis-aligned drawing area. Width and Height are never negative.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxOf returns the smallest box containing all points. With no points it
// returns the zero box.
func BoxOf(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows the box by d on every side. Negative d is ignored.
func (b Box) Expand(d float64) Box {
	d = NonNegative(d)
	return Box{X: b.X - d, Y: b.Y - d, Width: b.Width + 2*d, Height: b.Height + 2*d}
}

// Union returns the smallest box containing b and o.
func (b Box) Union(o Box) Box {
	minX := math.Min(b.X, o.X)
	minY := math.Min(b.Y, o.Y)
	maxX := math.Max(b.X+b.Width, o.X+o.Width)
	maxY := math.Max(b.Y+b.Height, o.Y+o.Height)
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Translate moves the box by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// Contains reports whether p lies inside or on the border of b.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.Y >= b.Y && p.X <= b.X+b.Width && p.Y <= b.Y+b.Height
}
