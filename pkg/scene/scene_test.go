package scene

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/socket"
)

func TestLoadTOML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "basic.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(s.Elements) != 2 || len(s.Links) != 2 {
		t.Fatalf("got %d elements, %d links", len(s.Elements), len(s.Links))
	}
	if o := s.Origin(); o == nil || *o != geom.Pt(10, 0) {
		t.Errorf("Origin() = %v", o)
	}

	first := s.Links[0]
	if first.Key() != "source->sink" {
		t.Errorf("Key() = %q", first.Key())
	}
	opts := first.Options(s.Origin())
	if opts.Path != path.Arc || opts.Curvature != 0.25 || opts.EndPlug != plug.Arrow2 {
		t.Errorf("Options() = %+v", opts)
	}
	if opts.Outline == nil || opts.Outline.Width != 2 || opts.Outline.Color != "white" {
		t.Errorf("outline = %+v", opts.Outline)
	}

	back := s.Links[1]
	if back.Key() != "back" || back.StartSocket != socket.Top {
		t.Errorf("second link = %+v", back)
	}
	bo := back.Options(nil)
	if bo.Outline == nil || !bo.Outline.Enabled || bo.Shadow == nil || bo.Shadow.Blur != 4 {
		t.Errorf("second link options = %+v", bo)
	}
}

func TestLoadJSON(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "basic.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Origin() != nil {
		t.Errorf("Origin() = %v, want nil", s.Origin())
	}
	if o := s.Links[0].Options(nil).Outline; o == nil || o.Width != 3 {
		t.Errorf("outline = %+v", o)
	}
}

func TestAnchors(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "basic.toml"))
	if err != nil {
		t.Fatal(err)
	}
	p := s.Provider()
	ctx := context.Background()

	start, end := s.Links[1].Anchors(p)
	sr, err := start.Measure(ctx)
	if err != nil {
		t.Fatalf("start Measure() error = %v", err)
	}
	if sr.Min() != geom.Pt(310, 20) {
		t.Errorf("from_point anchor = %v", sr.Min())
	}
	er, _ := end.Measure(ctx)
	if w, h := er.Size(); er.Min() != geom.Pt(60, 20) || w != 50 || h != 50 {
		t.Errorf("to_area anchor = %v %vx%v", er.Min(), w, h)
	}

	s.Links[0].To = "ghost"
	_, end = s.Links[0].Anchors(p)
	if _, err := end.Measure(ctx); !errors.IsNotReady(err) {
		t.Errorf("unknown element error = %v, want NOT_READY", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"bad toml", "[[element]\nid=", FormatTOML},
		{"unknown toml key", "[[element]]\nid = \"a\"\ncolour = \"red\"\n", FormatTOML},
		{"bad json", "{", FormatJSON},
		{"unknown json key", `{"elements":[],"colour":1}`, FormatJSON},
		{"bad socket", "[[link]]\nfrom=\"a\"\nto=\"b\"\nstart_socket=\"middle\"\n", FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Parse() error = %v, want INVALID_SCENE", err)
			}
		})
	}

	if _, err := Parse(nil, "yaml"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Parse(yaml) error = %v, want UNSUPPORTED", err)
	}
	if _, err := FormatFromPath("scene.yaml"); err == nil {
		t.Error("FormatFromPath(.yaml) should fail")
	}
}

func TestValidate(t *testing.T) {
	el := func(id string) Element { return Element{ID: id, Width: 10, Height: 10} }

	tests := []struct {
		name  string
		scene Scene
		ok    bool
	}{
		{"valid", Scene{Elements: []Element{el("a"), el("b")}, Links: []Link{{From: "a", To: "b"}}}, true},
		{"duplicate element", Scene{Elements: []Element{el("a"), el("a")}}, false},
		{"bad id", Scene{Elements: []Element{el("1a")}}, false},
		{"negative width", Scene{Elements: []Element{{ID: "a", Width: -1}}}, false},
		{"unknown ref", Scene{Elements: []Element{el("a")}, Links: []Link{{From: "a", To: "b"}}}, false},
		{"duplicate link", Scene{Elements: []Element{el("a"), el("b")}, Links: []Link{{From: "a", To: "b"}, {From: "a", To: "b"}}}, false},
		{"duplicate link with ids", Scene{Elements: []Element{el("a"), el("b")}, Links: []Link{{From: "a", To: "b"}, {ID: "second", From: "a", To: "b"}}}, true},
		{"bad point", Scene{Elements: []Element{el("a"), el("b")}, Links: []Link{{From: "a", To: "b", FromPoint: []float64{1}}}}, false},
		{"bad path", Scene{Elements: []Element{el("a"), el("b")}, Links: []Link{{From: "a", To: "b", Path: "zigzag"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok %v", err, tt.ok)
			}
		})
	}
}

func TestValidateLinksAllowsExternalElements(t *testing.T) {
	s := Scene{Links: []Link{{From: "a", To: "b"}}}
	if err := s.ValidateLinks(); err != nil {
		t.Errorf("ValidateLinks() error = %v", err)
	}
	if err := s.Validate(); err == nil {
		t.Error("Validate() should reject links without elements")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not exist", err)
	}
}
