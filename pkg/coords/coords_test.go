package coords

import (
	"testing"

	"github.com/matzehuels/tether/pkg/geom"
)

func TestToContainerRelative(t *testing.T) {
	origin := geom.Pt(100, 50)
	tests := []struct {
		name   string
		in     Pair
		origin *geom.Point
		want   Pair
	}{
		{"nil origin", P(geom.Pt(1, 2), geom.Pt(3, 4)), nil, P(geom.Pt(1, 2), geom.Pt(3, 4))},
		{"offset", P(geom.Pt(150, 80), geom.Pt(100, 50)), &origin, P(geom.Pt(50, 30), geom.Pt(0, 0))},
		{"negative result", P(geom.Pt(0, 0), geom.Pt(10, 10)), &origin, P(geom.Pt(-100, -50), geom.Pt(-90, -40))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToContainerRelative(tt.in, tt.origin); got != tt.want {
				t.Errorf("ToContainerRelative() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	pairs := []Pair{
		P(geom.Pt(0, 0), geom.Pt(0, 0)),
		P(geom.Pt(12.5, -3), geom.Pt(400, 900)),
		P(geom.Pt(-20, 7), geom.Pt(1e4, -1e4)),
	}
	origins := []*geom.Point{nil, {X: 0, Y: 0}, {X: 64, Y: 128}, {X: -8, Y: 3}}

	for _, p := range pairs {
		for _, o := range origins {
			if got := ToAbsolute(ToContainerRelative(p, o), o); got != p {
				t.Errorf("round trip of %+v with origin %v = %+v", p, o, got)
			}
		}
	}
}

func TestProviders(t *testing.T) {
	p := P(geom.Pt(10, 10), geom.Pt(20, 20))
	if got := Normalize(p, None); got != p {
		t.Errorf("Normalize(None) = %+v", got)
	}
	if got := Normalize(p, nil); got != p {
		t.Errorf("Normalize(nil) = %+v", got)
	}
	want := P(geom.Pt(5, 0), geom.Pt(15, 10))
	if got := Normalize(p, Fixed(geom.Pt(5, 10))); got != want {
		t.Errorf("Normalize(Fixed) = %+v, want %+v", got, want)
	}

	f := Fixed(geom.Pt(1, 1))
	f.Origin().X = 99
	if f.Origin().X != 1 {
		t.Error("Fixed origin mutated through returned pointer")
	}
}
