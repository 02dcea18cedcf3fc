// Package coords converts endpoint pairs between absolute page coordinates
// and coordinates relative to a drawing container.
//
// Only pairs are converted so that both ends of a connector always share the
// same origin.
package coords

import "github.com/matzehuels/tether/pkg/geom"

// Pair holds the two endpoints of a connector.
type Pair struct {
	Start geom.Point `json:"start" toml:"start"`
	End   geom.Point `json:"end" toml:"end"`
}

// P builds a Pair.
func P(start, end geom.Point) Pair { return Pair{Start: start, End: end} }

// ToContainerRelative subtracts origin from both points. A nil origin leaves
// the pair unchanged.
func ToContainerRelative(p Pair, origin *geom.Point) Pair {
	if origin == nil {
		return p
	}
	return Pair{Start: p.Start.Sub(*origin), End: p.End.Sub(*origin)}
}

// ToAbsolute is the inverse of ToContainerRelative.
func ToAbsolute(p Pair, origin *geom.Point) Pair {
	if origin == nil {
		return p
	}
	return Pair{Start: p.Start.Add(*origin), End: p.End.Add(*origin)}
}

// OriginProvider supplies the absolute position of the drawing container.
// Origin returns nil when the container is unknown or sits at the page origin.
type OriginProvider interface {
	Origin() *geom.Point
}

type fixed struct{ p geom.Point }

func (f fixed) Origin() *geom.Point {
	p := f.p
	return &p
}

type none struct{}

func (none) Origin() *geom.Point { return nil }

// Fixed returns a provider that always reports origin.
func Fixed(origin geom.Point) OriginProvider { return fixed{origin} }

// None is a provider without a container; pairs pass through unchanged.
var None OriginProvider = none{}

// Normalize converts p using the origin of provider. A nil provider behaves
// like None.
func Normalize(p Pair, provider OriginProvider) Pair {
	if provider == nil {
		return p
	}
	return ToContainerRelative(p, provider.Origin())
}
