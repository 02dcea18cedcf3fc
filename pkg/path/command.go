package path

import (
	"fmt"

	"github.com/matzehuels/tether/pkg/geom"
)

// Op is a drawing operation.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	CurveTo // cubic bezier through C1, C2 to To
	ArcTo   // circular arc of Radius to To
	Close
)

var opLetters = [...]string{MoveTo: "M", LineTo: "L", CurveTo: "C", ArcTo: "A", Close: "Z"}

func (o Op) String() string {
	if int(o) < len(opLetters) {
		return opLetters[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// MarshalText implements encoding.TextMarshaler using SVG command letters.
func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	for i, l := range opLetters {
		if l == string(b) {
			*o = Op(i)
			return nil
		}
	}
	return fmt.Errorf("unknown path op %q", b)
}

// Command is one drawing step. Which fields are meaningful depends on Op:
// MoveTo and LineTo use To; CurveTo uses C1, C2 and To; ArcTo uses Radius,
// LargeArc, Sweep and To; Close uses nothing.
type Command struct {
	Op       Op         `json:"op"`
	To       geom.Point `json:"to,omitzero"`
	C1       geom.Point `json:"c1,omitzero"`
	C2       geom.Point `json:"c2,omitzero"`
	Radius   float64    `json:"r,omitempty"`
	LargeArc bool       `json:"large_arc,omitempty"`
	Sweep    bool       `json:"sweep,omitempty"`
}

func Move(p geom.Point) Command { return Command{Op: MoveTo, To: p} }
func Line(p geom.Point) Command { return Command{Op: LineTo, To: p} }

// Curve returns a cubic bezier command.
func Curve(c1, c2, to geom.Point) Command {
	return Command{Op: CurveTo, C1: c1, C2: c2, To: to}
}

// ArcCmd returns a circular arc command with large-arc-flag 0.
func ArcCmd(radius float64, sweep bool, to geom.Point) Command {
	return Command{Op: ArcTo, Radius: radius, Sweep: sweep, To: to}
}

// ClosePath returns a close command.
func ClosePath() Command { return Command{Op: Close} }
