package cli

import (
	"math"
	"strings"

	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/geom"
)

// canvas rasterizes connector geometry onto a character grid for the
// inspector. The view box is stretched to fill the grid.
type canvas struct {
	cols, rows int
	cells      [][]rune
	view       geom.Box
}

func newCanvas(cols, rows int, view geom.Box) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	if view.Width <= 0 {
		view.Width = 1
	}
	if view.Height <= 0 {
		view.Height = 1
	}
	return &canvas{cols: cols, rows: rows, cells: cells, view: view}
}

func (c *canvas) cell(p geom.Point) (col, row int, ok bool) {
	fx := (p.X - c.view.X) / c.view.Width * float64(c.cols-1)
	fy := (p.Y - c.view.Y) / c.view.Height * float64(c.rows-1)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	col, row = int(math.Round(fx)), int(math.Round(fy))
	return col, row, col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

func (c *canvas) plot(p geom.Point, r rune) {
	if col, row, ok := c.cell(p); ok {
		c.cells[row][col] = r
	}
}

// line plots a segment with one sample per cell it crosses.
func (c *canvas) line(a, b geom.Point, r rune) {
	ca, ra, _ := c.cell(a)
	cb, rb, _ := c.cell(b)
	n := max(abs(cb-ca), abs(rb-ra), 1)
	for i := 0; i <= n; i++ {
		c.plot(a.Lerp(b, float64(i)/float64(n)), r)
	}
}

func (c *canvas) rect(r geom.Rect) {
	lo, hi := r.Min(), r.Max()
	c.line(lo, geom.Pt(hi.X, lo.Y), '─')
	c.line(geom.Pt(lo.X, hi.Y), hi, '─')
	c.line(lo, geom.Pt(lo.X, hi.Y), '│')
	c.line(geom.Pt(hi.X, lo.Y), hi, '│')
	c.plot(lo, '┌')
	c.plot(geom.Pt(hi.X, lo.Y), '┐')
	c.plot(geom.Pt(lo.X, hi.Y), '└')
	c.plot(hi, '┘')
}

func (c *canvas) String() string {
	lines := make([]string, c.rows)
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// arrowRunes point right, then clockwise in screen space (y down).
var arrowRunes = []rune("→↘↓↙←↖↑↗")

// arrowFor returns the arrow rune closest to angle (radians).
func arrowFor(angle float64) rune {
	oct := int(math.Round(angle/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	return arrowRunes[oct]
}

// drawConnector draws the two rectangles and the connector between them.
// The geometry must be in absolute coordinates.
func drawConnector(cols, rows int, start, end geom.Rect, g connector.Geometry) string {
	view := geom.BoxOf(start.Min(), start.Max()).
		Union(geom.BoxOf(end.Min(), end.Max())).
		Union(g.Box)
	c := newCanvas(cols, rows, view)
	c.rect(start)
	c.rect(end)
	for _, pl := range g.Path.Flatten(24) {
		for i := 1; i < len(pl); i++ {
			c.line(pl[i-1], pl[i], '•')
		}
	}
	c.plot(g.Start, 'o')
	c.plot(g.End, arrowFor(g.Path.EndAngle()))
	return c.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
