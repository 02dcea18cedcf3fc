package path

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tether/pkg/geom"
)

// Path is an immutable sequence of drawing commands. The zero value is the
// empty path.
type Path struct {
	cmds []Command
}

// New returns a path holding a copy of cmds.
func New(cmds ...Command) Path {
	if len(cmds) == 0 {
		return Path{}
	}
	return Path{cmds: append([]Command(nil), cmds...)}
}

// Commands returns a copy of the commands.
func (p Path) Commands() []Command {
	return append([]Command(nil), p.cmds...)
}

// Len returns the number of commands.
func (p Path) Len() int { return len(p.cmds) }

// Empty reports whether the path has no commands.
func (p Path) Empty() bool { return len(p.cmds) == 0 }

// Closed reports whether the last command closes the path.
func (p Path) Closed() bool {
	return len(p.cmds) > 0 && p.cmds[len(p.cmds)-1].Op == Close
}

// Equal reports whether both paths hold identical commands.
func (p Path) Equal(o Path) bool {
	if len(p.cmds) != len(o.cmds) {
		return false
	}
	for i := range p.cmds {
		if p.cmds[i] != o.cmds[i] {
			return false
		}
	}
	return true
}

// Start returns the first point of the path.
func (p Path) Start() geom.Point {
	if len(p.cmds) == 0 {
		return geom.Point{}
	}
	return p.cmds[0].To
}

// End returns the last drawn point of the path.
func (p Path) End() geom.Point {
	for i := len(p.cmds) - 1; i >= 0; i-- {
		if p.cmds[i].Op != Close {
			return p.cmds[i].To
		}
	}
	return geom.Point{}
}

// Map returns a new path with every point passed through f. Arc radii are
// kept, so f must be a rigid motion (rotation and translation) for arcs to
// stay correct.
func (p Path) Map(f func(geom.Point) geom.Point) Path {
	out := make([]Command, len(p.cmds))
	for i, c := range p.cmds {
		if c.Op != Close {
			c.To = f(c.To)
		}
		if c.Op == CurveTo {
			c.C1 = f(c.C1)
			c.C2 = f(c.C2)
		}
		out[i] = c
	}
	return Path{cmds: out}
}

// String renders the path as SVG path data, e.g. "M 0 0 L 100 50".
// Numbers are rounded to three decimals; non-finite values render as 0.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op.String())
		switch c.Op {
		case MoveTo, LineTo:
			writeNums(&b, c.To.X, c.To.Y)
		case CurveTo:
			writeNums(&b, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
		case ArcTo:
			writeNums(&b, c.Radius, c.Radius, 0, flag(c.LargeArc), flag(c.Sweep), c.To.X, c.To.Y)
		}
	}
	return b.String()
}

func writeNums(b *strings.Builder, vs ...float64) {
	for _, v := range vs {
		b.WriteByte(' ')
		b.WriteString(FormatNumber(v))
	}
}

func flag(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// roundLimit is the magnitude above which v*1000 could overflow and any
// fractional part is already below float64 precision.
const roundLimit = 1e15

// FormatNumber formats v for path data with at most three decimals. It never
// emits NaN or Inf tokens.
func FormatNumber(v float64) string {
	v = geom.Finite(v)
	if math.Abs(v) < roundLimit {
		v = geom.Finite(math.Round(v*1000) / 1000)
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// finite reports whether every coordinate and radius of p is finite.
func (p Path) finite() bool {
	for _, c := range p.cmds {
		if !c.To.IsFinite() || !c.C1.IsFinite() || !c.C2.IsFinite() || !isFinite(c.Radius) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the path as its command list.
func (p Path) MarshalJSON() ([]byte, error) {
	if p.cmds == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.cmds)
}

// UnmarshalJSON decodes a command list.
func (p *Path) UnmarshalJSON(data []byte) error {
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return err
	}
	*p = New(cmds...)
	return nil
}

// Bounds returns the smallest box containing every drawn point. Curves are
// bounded by their control hull, arcs exactly.
func (p Path) Bounds() geom.Box {
	var pts []geom.Point
	var cur geom.Point
	for _, c := range p.cmds {
		switch c.Op {
		case MoveTo, LineTo:
			pts = append(pts, c.To)
		case CurveTo:
			pts = append(pts, cur, c.C1, c.C2, c.To)
		case ArcTo:
			pts = append(pts, cur, c.To)
			pts = append(pts, arcOf(cur, c).extremes()...)
		}
		if c.Op != Close {
			cur = c.To
		}
	}
	return geom.BoxOf(pts...)
}
