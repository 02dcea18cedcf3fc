package path

import (
	"strings"

	"github.com/matzehuels/tether/pkg/errors"
)

// Kind selects the shape of a connector path.
type Kind string

const (
	Straight Kind = "straight"
	Arc      Kind = "arc"
	Fluid    Kind = "fluid"
	Magnet   Kind = "magnet"
	Grid     Kind = "grid"
)

// DefaultCurvature is the bow factor used by arc and fluid paths when the
// caller does not choose one.
const DefaultCurvature = 0.2

// Kinds lists the supported kinds.
var Kinds = []Kind{Straight, Arc, Fluid, Magnet, Grid}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case Straight, Arc, Fluid, Magnet, Grid:
		return true
	}
	return false
}

// Curved reports whether k bows away from the chord.
func (k Kind) Curved() bool { return k == Arc || k == Fluid }

// ParseKind parses a kind name case-insensitively. The empty string is
// Straight.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return Straight, nil
	}
	if !k.Valid() {
		return Straight, errors.New(errors.ErrCodeInvalidKind, "unknown path kind %q", s)
	}
	return k, nil
}
