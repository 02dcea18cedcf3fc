package connector

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/tether/pkg/anchor"
	"github.com/matzehuels/tether/pkg/bounds"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/socket"
)

var (
	left  = geom.R(0, 0, 100, 50)
	right = geom.R(300, 0, 100, 50)
)

func TestSolveDefaults(t *testing.T) {
	g := Solve(left, right, Options{})

	if g.StartSocket != socket.Right || g.EndSocket != socket.Left {
		t.Errorf("sockets = %v, %v, want right, left", g.StartSocket, g.EndSocket)
	}
	if g.D != "M 100 25 L 300 25" {
		t.Errorf("D = %q", g.D)
	}
	if g.StrokeWidth != DefaultStrokeWidth || g.Kind != path.Straight {
		t.Errorf("defaults not applied: stroke %v kind %v", g.StrokeWidth, g.Kind)
	}
	want := geom.Box{X: 76, Y: 1, Width: 248, Height: 48}
	if g.Box != want {
		t.Errorf("Box = %+v, want %+v", g.Box, want)
	}

	if g.StartPlug == nil || g.StartPlug.Kind != plug.Behind {
		t.Fatalf("StartPlug = %+v, want behind", g.StartPlug)
	}
	if g.StartPlug.Translate != geom.Pt(100, 25) {
		t.Errorf("StartPlug.Translate = %v", g.StartPlug.Translate)
	}
	if g.EndPlug == nil || g.EndPlug.Kind != plug.Arrow1 {
		t.Fatalf("EndPlug = %+v, want arrow1", g.EndPlug)
	}
	if tip := g.EndPlug.Apply().Start(); tip != g.End {
		t.Errorf("arrow tip = %v, want %v", tip, g.End)
	}
}

func TestSolveSockets(t *testing.T) {
	tests := []struct {
		name       string
		start, end geom.Rect
		opts       Options
		wantStart  geom.Point
		wantEnd    geom.Point
	}{
		{
			name:      "explicit",
			start:     left,
			end:       right,
			opts:      Options{StartSocket: socket.Top, EndSocket: socket.Bottom},
			wantStart: geom.Pt(50, 0),
			wantEnd:   geom.Pt(350, 50),
		},
		{
			name:      "vertical auto",
			start:     geom.R(0, 0, 100, 50),
			end:       geom.R(0, 200, 100, 50),
			wantStart: geom.Pt(50, 50),
			wantEnd:   geom.Pt(50, 200),
		},
		{
			name:      "diagonal",
			start:     geom.R(0, 0, 10, 10),
			end:       geom.R(100, 100, 10, 10),
			opts:      Options{Diagonal: true},
			wantStart: geom.Pt(10, 10),
			wantEnd:   geom.Pt(100, 100),
		},
		{
			name:      "diagonal off",
			start:     geom.R(0, 0, 10, 10),
			end:       geom.R(100, 100, 10, 10),
			wantStart: geom.Pt(10, 5),
			wantEnd:   geom.Pt(100, 105),
		},
		{
			name:      "container origin",
			start:     left,
			end:       right,
			opts:      Options{Origin: &geom.Point{X: 50, Y: 5}},
			wantStart: geom.Pt(50, 20),
			wantEnd:   geom.Pt(250, 20),
		},
		{
			name:      "same rect",
			start:     left,
			end:       left,
			wantStart: geom.Pt(50, 25),
			wantEnd:   geom.Pt(50, 25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Solve(tt.start, tt.end, tt.opts)
			if g.Start != tt.wantStart || g.End != tt.wantEnd {
				t.Errorf("Solve() points = %v -> %v, want %v -> %v", g.Start, g.End, tt.wantStart, tt.wantEnd)
			}
			if g.Path.Start() != g.Start || g.Path.End() != g.End {
				t.Errorf("path %q does not join the endpoints", g.D)
			}
		})
	}
}

func TestSolveBoxContainsEverything(t *testing.T) {
	kinds := []path.Kind{path.Straight, path.Arc, path.Fluid, path.Magnet, path.Grid}
	for _, kind := range kinds {
		for _, gravity := range []bool{false, true} {
			opts := Options{
				Path:        kind,
				Curvature:   0.6,
				Gravity:     gravity,
				StrokeWidth: 3,
				Outline:     &bounds.Outline{Enabled: true, Width: 2},
				EndPlug:     plug.Arrow3,
				EndPlugSize: 60,
			}
			g := Solve(geom.R(0, 0, 40, 40), geom.R(200, 120, 40, 40), opts)
			hull := g.Path.Bounds()
			if !g.Box.Contains(geom.Pt(hull.X, hull.Y)) || !g.Box.Contains(geom.Pt(hull.X+hull.Width, hull.Y+hull.Height)) {
				t.Errorf("%s gravity=%v: path bounds %+v outside box %+v", kind, gravity, hull, g.Box)
			}
			pb := g.EndPlug.Apply().Bounds()
			if !g.Box.Contains(geom.Pt(pb.X, pb.Y)) || !g.Box.Contains(geom.Pt(pb.X+pb.Width, pb.Y+pb.Height)) {
				t.Errorf("%s gravity=%v: plug bounds %+v outside box %+v", kind, gravity, pb, g.Box)
			}
		}
	}
}

func TestSolveDegrades(t *testing.T) {
	opts := Options{
		Path:        "zigzag",
		Curvature:   math.NaN(),
		StrokeWidth: math.Inf(1),
		StartPlug:   "star",
		EndPlug:     plug.None,
	}
	g := Solve(geom.R(math.NaN(), 0, -10, 10), right, opts)

	if g.Kind != path.Straight {
		t.Errorf("Kind = %v, want straight", g.Kind)
	}
	if g.StartPlug != nil || g.EndPlug != nil {
		t.Errorf("plugs = %+v, %+v, want none", g.StartPlug, g.EndPlug)
	}
	if !g.Start.IsFinite() || !geom.Pt(g.Box.Width, g.Box.Height).IsFinite() {
		t.Errorf("non-finite output: %+v", g)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero", Options{}, ""},
		{"full", Options{Path: path.Arc, StartPlug: plug.Disc, EndPlugSize: 100, Origin: &geom.Point{}}, ""},
		{"bad path", Options{Path: "zigzag"}, errors.ErrCodeInvalidKind},
		{"bad plug", Options{EndPlug: "star"}, errors.ErrCodeInvalidKind},
		{"plug case", Options{EndPlug: "Arrow2"}, ""},
		{"nan curvature", Options{Curvature: math.NaN()}, errors.ErrCodeInvalidInput},
		{"negative stroke", Options{StrokeWidth: -1}, errors.ErrCodeInvalidInput},
		{"huge plug", Options{StartPlugSize: 101}, errors.ErrCodeInvalidInput},
		{"negative outline", Options{Outline: &bounds.Outline{Enabled: true, Width: -3}}, errors.ErrCodeInvalidInput},
		{"negative blur", Options{Shadow: &bounds.Shadow{Blur: -1}}, errors.ErrCodeInvalidInput},
		{"infinite origin", Options{Origin: &geom.Point{X: math.Inf(1)}}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	ctx := context.Background()

	g, err := Compute(ctx, anchor.Point(anchor.Rect(left), 10, 10), anchor.Element(anchor.Rect(right)), Options{})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if g.Start != geom.Pt(10, 10) {
		t.Errorf("point anchor start = %v, want (10,10)", g.Start)
	}
	if g.End != geom.Pt(300, 25) {
		t.Errorf("end = %v, want (300,25)", g.End)
	}

	_, err = Compute(ctx, anchor.Element(nil), anchor.Element(anchor.Rect(right)), Options{})
	if !errors.IsNotReady(err) {
		t.Errorf("Compute() with missing target error = %v, want NOT_READY", err)
	}
	_, err = Compute(ctx, nil, nil, Options{})
	if !errors.IsNotReady(err) {
		t.Errorf("Compute(nil, nil) error = %v, want NOT_READY", err)
	}
}

func TestGeometryJSON(t *testing.T) {
	g := Solve(left, right, Options{EndPlug: plug.None})
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["start_socket"] != "right" || out["kind"] != "straight" {
		t.Errorf("unexpected JSON: %s", data)
	}
	if _, ok := out["end_plug"]; ok {
		t.Errorf("end_plug should be omitted: %s", data)
	}
}
