package path

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/socket"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		start, end geom.Point
		kind       Kind
		curvature  float64
		want       string
	}{
		{
			name:  "straight",
			start: geom.Pt(0, 0), end: geom.Pt(100, 50),
			kind: Straight, curvature: 0.2,
			want: "M 0 0 L 100 50",
		},
		{
			name:  "arc",
			start: geom.Pt(0, 50), end: geom.Pt(100, 50),
			kind: Arc, curvature: 0.25,
			want: "M 0 50 A 25 25 0 0 1 100 50",
		},
		{
			name:  "arc negative curvature flips sweep",
			start: geom.Pt(0, 50), end: geom.Pt(100, 50),
			kind: Arc, curvature: -0.25,
			want: "M 0 50 A 25 25 0 0 0 100 50",
		},
		{
			name:  "arc zero curvature degrades to straight",
			start: geom.Pt(0, 50), end: geom.Pt(100, 50),
			kind: Arc, curvature: 0,
			want: "M 0 50 L 100 50",
		},
		{
			name:  "fluid",
			start: geom.Pt(0, 0), end: geom.Pt(100, 0),
			kind: Fluid, curvature: 0.2,
			want: "M 0 0 C 25 -20 75 -20 100 0",
		},
		{
			name:  "fluid degenerate",
			start: geom.Pt(5, 5), end: geom.Pt(5, 5),
			kind: Fluid, curvature: 0.2,
			want: "M 5 5 C 5 5 5 5 5 5",
		},
		{
			name:  "magnet horizontal first",
			start: geom.Pt(0, 0), end: geom.Pt(100, 50),
			kind: Magnet,
			want: "M 0 0 L 50 0 L 50 50 L 100 50",
		},
		{
			name:  "magnet vertical first",
			start: geom.Pt(0, 0), end: geom.Pt(50, 100),
			kind: Magnet,
			want: "M 0 0 L 0 50 L 50 50 L 50 100",
		},
		{
			name:  "magnet tie prefers horizontal",
			start: geom.Pt(0, 0), end: geom.Pt(50, 50),
			kind: Magnet,
			want: "M 0 0 L 25 0 L 25 50 L 50 50",
		},
		{
			name:  "magnet unit diagonal tie",
			start: geom.Pt(0, 0), end: geom.Pt(10, 10),
			kind: Magnet,
			want: "M 0 0 L 5 0 L 5 10 L 10 10",
		},
		{
			name:  "grid always horizontal first",
			start: geom.Pt(0, 0), end: geom.Pt(50, 100),
			kind: Grid,
			want: "M 0 0 L 25 0 L 25 100 L 50 100",
		},
		{
			name:  "unknown kind falls back to straight",
			start: geom.Pt(0, 0), end: geom.Pt(10, 10),
			kind: Kind("zigzag"),
			want: "M 0 0 L 10 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.start, tt.end, tt.kind, tt.curvature).String()
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStraightIgnoresCurvature(t *testing.T) {
	s, e := geom.Pt(3, 4), geom.Pt(-20, 70)
	want := New(Move(s), Line(e))
	for _, c := range []float64{0, 0.2, -2, 2, math.NaN()} {
		if got := Generate(s, e, Straight, c); !got.Equal(want) {
			t.Errorf("Generate(straight, %v) = %v, want %v", c, got, want)
		}
	}
}

func TestArcBowsUpwardForPositiveCurvature(t *testing.T) {
	start, end := geom.Pt(0, 50), geom.Pt(100, 50)

	up, ok := Generate(start, end, Arc, 0.25).Apex()
	if !ok {
		t.Fatal("Apex() found no arc")
	}
	if up.Y >= 50 {
		t.Errorf("positive curvature apex = %v, want above the chord (y < 50)", up)
	}
	if math.Abs(up.X-50) > 1e-9 || math.Abs(up.Y) > 1e-9 {
		t.Errorf("apex = %v, want (50,0) for a half circle", up)
	}

	down, _ := Generate(start, end, Arc, -0.25).Apex()
	if down.Y <= 50 {
		t.Errorf("negative curvature apex = %v, want below the chord", down)
	}

	// Reversing the direction mirrors the bow.
	rev, _ := Generate(end, start, Arc, 0.25).Apex()
	if rev.Y <= 50 {
		t.Errorf("right-to-left apex = %v, want below the chord", rev)
	}
}

func TestFluidBowsTowardLeftNormal(t *testing.T) {
	cmds := Generate(geom.Pt(0, 0), geom.Pt(0, 100), Fluid, 0.5).Commands()
	// Downward chord: left-hand normal (dy, -dx) points to +x.
	if cmds[1].C1.X <= 0 || cmds[1].C2.X <= 0 {
		t.Errorf("control points = %v, %v; want x > 0", cmds[1].C1, cmds[1].C2)
	}
}

func TestGenerateNonFinite(t *testing.T) {
	p := Generate(geom.Pt(math.NaN(), 0), geom.Pt(10, math.Inf(1)), Arc, 0.5)
	if got := p.String(); got != "M 0 0 L 10 0" {
		t.Errorf("Generate() with non-finite input = %q", got)
	}
	if strings.Contains(p.String(), "NaN") || strings.Contains(p.String(), "Inf") {
		t.Error("path data must not contain non-finite tokens")
	}
}

func TestGenerateNearOverflow(t *testing.T) {
	pairs := [][2]geom.Point{
		{geom.Pt(-1e308, -1e308), geom.Pt(1e308, 1e308)},
		{geom.Pt(1e308, 1e308), geom.Pt(1.5e308, -1e308)},
		{geom.Pt(math.MaxFloat64, 0), geom.Pt(-math.MaxFloat64, 0)},
	}
	for _, pair := range pairs {
		for _, kind := range Kinds {
			for _, p := range []Path{
				Generate(pair[0], pair[1], kind, 2),
				GenerateGravity(pair[0], pair[1], kind, 2, socket.Right, socket.Left),
			} {
				d := p.String()
				if strings.Contains(d, "NaN") || strings.Contains(d, "Inf") {
					t.Errorf("%s %v→%v: d = %.60q", kind, pair[0], pair[1], d)
				}
				if !p.finite() {
					t.Errorf("%s %v→%v: non-finite commands", kind, pair[0], pair[1])
				}
				if _, err := json.Marshal(p); err != nil {
					t.Errorf("%s %v→%v: marshal: %v", kind, pair[0], pair[1], err)
				}
				if !p.Start().Eq(pair[0]) || !p.End().Eq(pair[1]) {
					t.Errorf("%s: endpoints moved to %v→%v", kind, p.Start(), p.End())
				}
			}
		}
	}
}

func TestAngles(t *testing.T) {
	tests := []struct {
		name               string
		p                  Path
		wantStart, wantEnd float64
	}{
		{
			name:      "straight right",
			p:         Generate(geom.Pt(0, 0), geom.Pt(100, 0), Straight, 0),
			wantStart: math.Pi, wantEnd: 0,
		},
		{
			name:      "straight down",
			p:         Generate(geom.Pt(0, 0), geom.Pt(0, 100), Straight, 0),
			wantStart: -math.Pi / 2, wantEnd: math.Pi / 2,
		},
		{
			name:      "magnet leaves and arrives horizontally",
			p:         Generate(geom.Pt(0, 0), geom.Pt(100, 50), Magnet, 0),
			wantStart: math.Pi, wantEnd: 0,
		},
		{
			name:      "half circle arc",
			p:         Generate(geom.Pt(0, 50), geom.Pt(100, 50), Arc, 0.25),
			wantStart: math.Pi / 2, wantEnd: math.Pi / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.StartAngle(); math.Abs(got-tt.wantStart) > 1e-9 {
				t.Errorf("StartAngle() = %v, want %v", got, tt.wantStart)
			}
			if got := tt.p.EndAngle(); math.Abs(got-tt.wantEnd) > 1e-9 {
				t.Errorf("EndAngle() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestAnglesSkipZeroLengthSegments(t *testing.T) {
	// Horizontal-first magnet on a horizontal chord has a zero-length middle leg.
	p := Generate(geom.Pt(0, 0), geom.Pt(100, 0), Magnet, 0)
	if p.EndAngle() != 0 || p.StartAngle() != math.Pi {
		t.Errorf("angles = %v, %v", p.StartAngle(), p.EndAngle())
	}
}

func TestBounds(t *testing.T) {
	b := Generate(geom.Pt(0, 50), geom.Pt(100, 50), Arc, 0.25).Bounds()
	want := geom.Box{X: 0, Y: 0, Width: 100, Height: 50}
	if math.Abs(b.X-want.X) > 1e-9 || math.Abs(b.Y-want.Y) > 1e-9 ||
		math.Abs(b.Width-want.Width) > 1e-9 || math.Abs(b.Height-want.Height) > 1e-9 {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}

	f := Generate(geom.Pt(0, 0), geom.Pt(100, 0), Fluid, 0.2).Bounds()
	if f.Y != -20 || f.Height != 20 {
		t.Errorf("fluid Bounds() = %+v, want control hull", f)
	}
}

func TestGenerateGravity(t *testing.T) {
	s, e := geom.Pt(0, 0), geom.Pt(100, 0)

	p := GenerateGravity(s, e, Fluid, 0.2, socket.Bottom, socket.Bottom)
	c := p.Commands()[1]
	if c.C1 != geom.Pt(0, 50) || c.C2 != geom.Pt(100, 50) {
		t.Errorf("gravity controls = %v, %v; want (0,50), (100,50)", c.C1, c.C2)
	}

	plain := Generate(s, e, Fluid, 0.2)
	if got := GenerateGravity(s, e, Fluid, 0.2, socket.Auto, socket.Center); !got.Equal(plain) {
		t.Errorf("gravity without normals = %v, want %v", got, plain)
	}

	for _, k := range []Kind{Straight, Arc, Magnet, Grid} {
		if got := GenerateGravity(s, e, k, 0.2, socket.Top, socket.Top); !got.Equal(Generate(s, e, k, 0.2)) {
			t.Errorf("GenerateGravity(%s) should degrade to Generate", k)
		}
	}
}

func TestBowHeight(t *testing.T) {
	s, e := geom.Pt(0, 0), geom.Pt(100, 0)
	if h := BowHeight(s, e, Arc, 0.25); math.Abs(h-50) > 1e-9 {
		t.Errorf("arc BowHeight() = %v, want 50", h)
	}
	if h := BowHeight(s, e, Fluid, 0.2); math.Abs(h-15) > 1e-9 {
		t.Errorf("fluid BowHeight() = %v, want 15", h)
	}
	if h := BowHeight(s, e, Magnet, 2); h != 0 {
		t.Errorf("magnet BowHeight() = %v, want 0", h)
	}
}

func TestPathImmutable(t *testing.T) {
	p := Generate(geom.Pt(0, 0), geom.Pt(1, 1), Straight, 0)
	cmds := p.Commands()
	cmds[1].To = geom.Pt(99, 99)
	if p.End() != geom.Pt(1, 1) {
		t.Error("mutating Commands() result changed the path")
	}
}

func TestPathJSON(t *testing.T) {
	p := Generate(geom.Pt(0, 50), geom.Pt(100, 50), Arc, 0.25)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Path
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(p) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1.23456, "1.235"},
		{-20, "-20"},
		{math.NaN(), "0"},
		{math.Inf(1), "0"},
		{1e15, "1000000000000000"},
		{-2.5e15, "-2500000000000000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, v := range []float64{1e306, -1e308, math.MaxFloat64} {
		got := FormatNumber(v)
		if strings.Contains(got, "Inf") || strings.Contains(got, "NaN") {
			t.Errorf("FormatNumber(%g) = %.30q", v, got)
		}
		if back, err := strconv.ParseFloat(got, 64); err != nil || back != v {
			t.Errorf("FormatNumber(%g) does not round-trip: %v, %v", v, back, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Fluid"); err != nil || k != Fluid {
		t.Errorf("ParseKind(Fluid) = %v, %v", k, err)
	}
	if k, err := ParseKind("bogus"); err == nil || k != Straight {
		t.Errorf("ParseKind(bogus) = %v, %v; want straight and error", k, err)
	}
}

func TestFlatten(t *testing.T) {
	start, end := geom.Pt(0, 0), geom.Pt(100, 0)

	t.Run("arc", func(t *testing.T) {
		p := Generate(start, end, Arc, 0.8)
		lines := p.Flatten(64)
		if len(lines) != 1 || len(lines[0]) != 65 {
			t.Fatalf("Flatten() = %d lines, want 1 of 65 points", len(lines))
		}
		pts := lines[0]
		if !pts[len(pts)-1].Eq(end) {
			t.Errorf("last point = %v, want %v", pts[len(pts)-1], end)
		}
		minY := 0.0
		for _, q := range pts {
			if q.Y > 1e-9 {
				t.Errorf("point %v below the chord", q)
			}
			minY = math.Min(minY, q.Y)
		}
		if bow := BowHeight(start, end, Arc, 0.8); math.Abs(-minY-bow) > 1e-6 {
			t.Errorf("sampled bow = %g, want %g", -minY, bow)
		}
	})

	t.Run("fluid", func(t *testing.T) {
		pts := Generate(start, end, Fluid, 0.4).Flatten(2)[0]
		if len(pts) != 3 {
			t.Fatalf("got %d points, want 3", len(pts))
		}
		if bow := BowHeight(start, end, Fluid, 0.4); math.Abs(-pts[1].Y-bow) > 1e-9 {
			t.Errorf("midpoint = %v, want bow %g", pts[1], bow)
		}
	})

	t.Run("closed", func(t *testing.T) {
		p := New(Move(geom.Pt(0, 0)), Line(geom.Pt(1, 0)), Line(geom.Pt(1, 1)), ClosePath())
		pts := p.Flatten(8)[0]
		if !pts[len(pts)-1].Eq(pts[0]) {
			t.Errorf("closed path not closed: %v", pts)
		}
	})

	t.Run("subpaths", func(t *testing.T) {
		p := New(Move(geom.Pt(0, 0)), Line(geom.Pt(1, 0)), Move(geom.Pt(5, 5)), Line(geom.Pt(6, 5)))
		if got := len(p.Flatten(1)); got != 2 {
			t.Errorf("Flatten() = %d lines, want 2", got)
		}
	})
}
