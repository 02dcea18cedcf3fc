package bounds

import (
	"math"
	"testing"

	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
)

func TestBoxStraight(t *testing.T) {
	got := Box(geom.Pt(10, 20), geom.Pt(110, 70), path.Straight, 0.2, 4, nil)
	want := geom.Box{X: -14, Y: -4, Width: 148, Height: 98}
	if got != want {
		t.Errorf("Box() = %+v, want %+v", got, want)
	}
}

func TestBoxArcPadding(t *testing.T) {
	got := Box(geom.Pt(0, 0), geom.Pt(100, 0), path.Arc, 0.2, 2, nil)
	want := geom.Box{X: -52, Y: -52, Width: 204, Height: 104}
	if got != want {
		t.Errorf("Box() = %+v, want %+v", got, want)
	}
}

func TestBoxCurvedPaddingCoversBow(t *testing.T) {
	start, end := geom.Pt(0, 0), geom.Pt(400, 0)
	for _, tc := range []struct {
		kind      path.Kind
		curvature float64
	}{
		{path.Arc, 0.5},
		{path.Fluid, 0.4},
		{path.Fluid, -2},
	} {
		box := Box(start, end, tc.kind, tc.curvature, 0, nil)
		for _, p := range sample(path.Generate(start, end, tc.kind, tc.curvature)) {
			if !box.Expand(1e-9).Contains(p) {
				t.Errorf("%s(%v): point %v escapes box %+v", tc.kind, tc.curvature, p, box)
			}
		}
	}
}

// sample returns points along the curve: the arc apex, or cubic samples.
func sample(p path.Path) []geom.Point {
	if apex, ok := p.Apex(); ok {
		return []geom.Point{p.Start(), apex, p.End()}
	}
	var pts []geom.Point
	cmds := p.Commands()
	from := cmds[0].To
	for _, c := range cmds[1:] {
		if c.Op != path.CurveTo {
			continue
		}
		for i := 0; i <= 20; i++ {
			t := float64(i) / 20
			u := 1 - t
			x := u*u*u*from.X + 3*u*u*t*c.C1.X + 3*u*t*t*c.C2.X + t*t*t*c.To.X
			y := u*u*u*from.Y + 3*u*u*t*c.C1.Y + 3*u*t*t*c.C2.Y + t*t*t*c.To.Y
			pts = append(pts, geom.Pt(x, y))
		}
		from = c.To
	}
	return pts
}

func TestBoxOutline(t *testing.T) {
	s, e := geom.Pt(0, 0), geom.Pt(10, 10)
	base := Box(s, e, path.Straight, 0, 1, nil)

	tests := []struct {
		name    string
		outline *Outline
		grow    float64
	}{
		{"width", &Outline{Enabled: true, Width: 3}, 3},
		{"size fallback", &Outline{Enabled: true, Size: 2}, 2},
		{"size above width", &Outline{Enabled: true, Width: 1, Size: 10}, 10},
		{"width above size", &Outline{Enabled: true, Width: 6, Size: 2}, 6},
		{"neither", &Outline{Enabled: true}, 0},
		{"disabled", &Outline{Enabled: false, Width: 9}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Box(s, e, path.Straight, 0, 1, tt.outline)
			if got != base.Expand(tt.grow) {
				t.Errorf("Box() = %+v, want %+v", got, base.Expand(tt.grow))
			}
		})
	}
}

func TestBoxDegenerate(t *testing.T) {
	got := Box(geom.Pt(5, 5), geom.Pt(5, 5), path.Straight, 0, 3, nil)
	want := geom.Box{X: -18, Y: -18, Width: 46, Height: 46}
	if got != want {
		t.Errorf("Box() = %+v, want %+v", got, want)
	}
}

func TestBoxMonotonic(t *testing.T) {
	s, e := geom.Pt(0, 0), geom.Pt(30, 80)
	prev := geom.Box{}
	for i, sw := range []float64{-5, 0, 1, 2.5, 10, 40} {
		b := Box(s, e, path.Fluid, 0.2, sw, nil)
		if b.Width < 0 || b.Height < 0 {
			t.Fatalf("negative box %+v", b)
		}
		if i > 0 && (b.Width < prev.Width || b.Height < prev.Height) {
			t.Errorf("box shrank with stroke width %v: %+v < %+v", sw, b, prev)
		}
		prev = b
	}

	prev = geom.Box{}
	for i, w := range []float64{0, 0.5, 4, 12} {
		b := Box(s, e, path.Straight, 0, 2, &Outline{Enabled: true, Width: w})
		if i > 0 && (b.Width < prev.Width || b.Height < prev.Height) {
			t.Errorf("box shrank with outline width %v", w)
		}
		prev = b
	}

	sized := Box(s, e, path.Straight, 0, 2, &Outline{Enabled: true, Size: 10})
	prev = sized
	for _, w := range []float64{0, 1, 4, 12} {
		b := Box(s, e, path.Straight, 0, 2, &Outline{Enabled: true, Width: w, Size: 10})
		if b.Width < prev.Width || b.Height < prev.Height {
			t.Errorf("box shrank with outline width %v and size 10: %+v < %+v", w, b, prev)
		}
		if b.Width < sized.Width || b.Height < sized.Height {
			t.Errorf("outline width %v shrank the size 10 box: %+v < %+v", w, b, sized)
		}
		prev = b
	}
}

func TestBoxNonFinite(t *testing.T) {
	b := Box(geom.Pt(math.NaN(), 0), geom.Pt(10, math.Inf(-1)), path.Straight, 0, math.NaN(), nil)
	if !geom.Pt(b.X, b.Y).IsFinite() || !geom.Pt(b.Width, b.Height).IsFinite() {
		t.Errorf("Box() with non-finite input = %+v", b)
	}
}

func TestComputeShadow(t *testing.T) {
	p := Params{Start: geom.Pt(0, 0), End: geom.Pt(10, 0), Kind: path.Straight}
	base := Compute(p)
	p.Shadow = &Shadow{DX: 4, DY: 6, Blur: 2}
	got := Compute(p)
	want := geom.Box{X: base.X, Y: base.Y, Width: base.Width + 6, Height: base.Height + 8}
	if got != want {
		t.Errorf("Compute() with shadow = %+v, want %+v", got, want)
	}
}

func TestNormalizeOutline(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *Outline
	}{
		{"nil", nil, nil},
		{"false", false, nil},
		{"true", true, &Outline{Enabled: true, Color: DefaultOutlineColor, Width: DefaultOutlineWidth, Opacity: 1}},
		{
			"partial map",
			map[string]any{"width": int64(3), "color": "red"},
			&Outline{Enabled: true, Color: "red", Width: 3, Opacity: 1},
		},
		{"disabled map", map[string]any{"enabled": false, "width": 3.0}, nil},
		{
			"clamped",
			map[string]any{"width": -2.0, "size": 5.0, "opacity": 3.0},
			&Outline{Enabled: true, Color: DefaultOutlineColor, Size: 5, Opacity: 1},
		},
		{
			"struct",
			Outline{Enabled: true, Width: 2, Opacity: 0.5},
			&Outline{Enabled: true, Color: DefaultOutlineColor, Width: 2, Opacity: 0.5},
		},
		{"disabled pointer", &Outline{Width: 2}, nil},
		{"string", "yes", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOutline(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NormalizeOutline() = %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("NormalizeOutline() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}
