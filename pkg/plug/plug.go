package plug

import (
	"math"
	"strings"

	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
)

// Kind names a marker shape. The set is open: unknown kinds generate nothing.
type Kind string

const (
	None      Kind = "none"
	Behind    Kind = "behind"
	Arrow1    Kind = "arrow1"
	Arrow2    Kind = "arrow2"
	Arrow3    Kind = "arrow3"
	Disc      Kind = "disc"
	Square    Kind = "square"
	Diamond   Kind = "diamond"
	Hand      Kind = "hand"
	Crosshair Kind = "crosshair"
)

// MaxSize is the largest accepted marker size.
const MaxSize = 100.0

// DefaultSize is the marker size used when the caller does not choose one.
const DefaultSize = 8.0

// Kinds lists every named kind.
var Kinds = []Kind{None, Behind, Arrow1, Arrow2, Arrow3, Disc, Square, Diamond, Hand, Crosshair}

// Normalize lower-cases and trims a kind name.
func Normalize(s string) Kind { return Kind(strings.ToLower(strings.TrimSpace(s))) }

// Known reports whether k is one of the named kinds.
func (k Kind) Known() bool {
	_, ok := shapes[k]
	return ok || k == None || k == Behind
}

// IsArrow reports whether k belongs to the arrow family.
func (k Kind) IsArrow() bool { return k == Arrow1 || k == Arrow2 || k == Arrow3 }

// Visible reports whether Generate draws geometry for k.
func (k Kind) Visible() bool {
	_, ok := shapes[k]
	return ok
}

// ValidSize reports whether size is a finite number in (0, MaxSize].
func ValidSize(size float64) bool {
	return !math.IsNaN(size) && !math.IsInf(size, 0) && size > 0 && size <= MaxSize
}

// shapes maps each drawable kind to a builder taking the half-size.
var shapes = map[Kind]func(h float64) path.Path{
	Arrow1:    arrow1,
	Arrow2:    arrow2,
	Arrow3:    arrow3,
	Disc:      disc,
	Square:    square,
	Diamond:   diamond,
	Hand:      hand,
	Crosshair: crosshair,
}

// Generate returns the shape of kind with the given size centered on the
// origin. The result is empty for invalid sizes and for kinds without
// geometry.
func Generate(kind Kind, size float64) path.Path {
	build, ok := shapes[kind]
	if !ok || !ValidSize(size) {
		return path.Path{}
	}
	return build(size / 2)
}

// BehindSquare returns the centered square the caller draws beneath the
// stroke for the Behind kind. Invalid sizes yield the empty path.
func BehindSquare(size float64) path.Path {
	if !ValidSize(size) {
		return path.Path{}
	}
	return square(size / 2)
}

func polygon(pts ...geom.Point) path.Path {
	cmds := make([]path.Command, 0, len(pts)+1)
	cmds = append(cmds, path.Move(pts[0]))
	for _, p := range pts[1:] {
		cmds = append(cmds, path.Line(p))
	}
	cmds = append(cmds, path.ClosePath())
	return path.New(cmds...)
}

func arrow1(h float64) path.Path {
	return polygon(geom.Pt(h, 0), geom.Pt(-h, -h), geom.Pt(-h, h))
}

func arrow2(h float64) path.Path {
	return polygon(geom.Pt(h, 0), geom.Pt(-h, -h), geom.Pt(-0.4*h, 0), geom.Pt(-h, h))
}

// arrow3 is a broad head on a short shaft.
func arrow3(h float64) path.Path {
	return polygon(
		geom.Pt(h, 0),
		geom.Pt(-0.2*h, -h),
		geom.Pt(-0.2*h, -0.35*h),
		geom.Pt(-h, -0.35*h),
		geom.Pt(-h, 0.35*h),
		geom.Pt(-0.2*h, 0.35*h),
		geom.Pt(-0.2*h, h),
	)
}

func disc(h float64) path.Path {
	return path.New(
		path.Move(geom.Pt(h, 0)),
		path.ArcCmd(h, true, geom.Pt(-h, 0)),
		path.ArcCmd(h, true, geom.Pt(h, 0)),
		path.ClosePath(),
	)
}

func square(h float64) path.Path {
	return polygon(geom.Pt(-h, -h), geom.Pt(h, -h), geom.Pt(h, h), geom.Pt(-h, h))
}

func diamond(h float64) path.Path {
	return polygon(geom.Pt(h, 0), geom.Pt(0, h), geom.Pt(-h, 0), geom.Pt(0, -h))
}

// hand is a mitten: a palm with one finger pointing along +x.
func hand(h float64) path.Path {
	return polygon(
		geom.Pt(h, -0.2*h),
		geom.Pt(0.1*h, -0.2*h),
		geom.Pt(0.1*h, -0.6*h),
		geom.Pt(-h, -0.6*h),
		geom.Pt(-h, 0.8*h),
		geom.Pt(0.1*h, 0.8*h),
		geom.Pt(0.1*h, 0.15*h),
		geom.Pt(h, 0.15*h),
	)
}

func crosshair(h float64) path.Path {
	return path.New(
		path.Move(geom.Pt(-h, 0)),
		path.Line(geom.Pt(h, 0)),
		path.Move(geom.Pt(0, -h)),
		path.Line(geom.Pt(0, h)),
	)
}
