package socket

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
)

// Position is a named attachment point on a rectangle.
type Position int

const (
	Auto Position = iota
	Center
	Top
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var names = [...]string{
	Auto:        "auto",
	Center:      "center",
	Top:         "top",
	Bottom:      "bottom",
	Left:        "left",
	Right:       "right",
	TopLeft:     "top_left",
	TopRight:    "top_right",
	BottomLeft:  "bottom_left",
	BottomRight: "bottom_right",
}

// All lists every position in declaration order.
var All = []Position{Auto, Center, Top, Bottom, Left, Right, TopLeft, TopRight, BottomLeft, BottomRight}

func (p Position) String() string {
	if p < 0 || int(p) >= len(names) {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return names[p]
}

// Parse returns the position with the given name. Hyphens and case are
// ignored, so "Top-Left" parses as TopLeft. The empty string is Auto.
func Parse(s string) (Position, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "" {
		return Auto, nil
	}
	for i, n := range names {
		if n == key {
			return Position(i), nil
		}
	}
	return Auto, errors.New(errors.ErrCodeInvalidInput, "unknown socket %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// IsCorner reports whether p is one of the four corners.
func (p Position) IsCorner() bool {
	return p == TopLeft || p == TopRight || p == BottomLeft || p == BottomRight
}

// Normal returns the outward unit direction of the socket. Corners point
// diagonally; Auto and Center have no direction and return the zero point.
func (p Position) Normal() geom.Point {
	const d = 0.7071067811865476 // 1/√2
	switch p {
	case Top:
		return geom.Pt(0, -1)
	case Bottom:
		return geom.Pt(0, 1)
	case Left:
		return geom.Pt(-1, 0)
	case Right:
		return geom.Pt(1, 0)
	case TopLeft:
		return geom.Pt(-d, -d)
	case TopRight:
		return geom.Pt(d, -d)
	case BottomLeft:
		return geom.Pt(-d, d)
	case BottomRight:
		return geom.Pt(d, d)
	}
	return geom.Point{}
}
