// Package scene reads connector scenes from TOML or JSON files.
//
// A scene lists elements (named rectangles) and links between them:
//
//	[container]
//	x = 0
//	y = 0
//
//	[[element]]
//	id = "source"
//	x = 10
//	y = 20
//	width = 100
//	height = 50
//
//	[[link]]
//	from = "source"
//	to = "sink"
//	path = "fluid"
//	end_plug = "arrow2"
//	outline = { width = 2, color = "white" }
//
// Link anchors default to the whole element; from_point/to_point ([x, y])
// and from_area/to_area ([x, y, w, h]) narrow them to a point or region
// relative to the element's top-left corner.
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tether/pkg/anchor"
	"github.com/matzehuels/tether/pkg/bounds"
	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/layout"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/socket"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Scene is a parsed scene file.
type Scene struct {
	Container *geom.Point `json:"container,omitempty" toml:"container"`
	Elements  []Element   `json:"elements" toml:"element"`
	Links     []Link      `json:"links" toml:"link"`
}

// Element is a named rectangle at an absolute position.
type Element struct {
	ID     string  `json:"id" toml:"id"`
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Rect returns the element's layout.
func (e Element) Rect() geom.Rect { return geom.R(e.X, e.Y, e.Width, e.Height) }

// Link is one connector between two elements.
type Link struct {
	ID   string `json:"id,omitempty" toml:"id"`
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`

	FromPoint []float64 `json:"from_point,omitempty" toml:"from_point"`
	ToPoint   []float64 `json:"to_point,omitempty" toml:"to_point"`
	FromArea  []float64 `json:"from_area,omitempty" toml:"from_area"`
	ToArea    []float64 `json:"to_area,omitempty" toml:"to_area"`

	StartSocket socket.Position `json:"start_socket,omitempty" toml:"start_socket"`
	EndSocket   socket.Position `json:"end_socket,omitempty" toml:"end_socket"`
	Diagonal    bool            `json:"diagonal,omitempty" toml:"diagonal"`

	Path      path.Kind `json:"path,omitempty" toml:"path"`
	Curvature float64   `json:"curvature,omitempty" toml:"curvature"`
	Gravity   bool      `json:"gravity,omitempty" toml:"gravity"`

	StrokeWidth float64        `json:"stroke_width,omitempty" toml:"stroke_width"`
	Outline     any            `json:"outline,omitempty" toml:"outline"` // bool or table
	Shadow      *bounds.Shadow `json:"shadow,omitempty" toml:"shadow"`

	StartPlug     plug.Kind `json:"start_plug,omitempty" toml:"start_plug"`
	EndPlug       plug.Kind `json:"end_plug,omitempty" toml:"end_plug"`
	StartPlugSize float64   `json:"start_plug_size,omitempty" toml:"start_plug_size"`
	EndPlugSize   float64   `json:"end_plug_size,omitempty" toml:"end_plug_size"`
}

// Key identifies the link: its ID, or "from->to".
func (l Link) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.From + "->" + l.To
}

// Options returns the connector options of the link. The container origin
// is supplied by the scene.
func (l Link) Options(origin *geom.Point) connector.Options {
	return connector.Options{
		StartSocket:   l.StartSocket,
		EndSocket:     l.EndSocket,
		Diagonal:      l.Diagonal,
		Path:          l.Path,
		Curvature:     l.Curvature,
		Gravity:       l.Gravity,
		StrokeWidth:   l.StrokeWidth,
		Outline:       bounds.NormalizeOutline(l.Outline),
		Shadow:        l.Shadow,
		StartPlug:     l.StartPlug,
		EndPlug:       l.EndPlug,
		StartPlugSize: l.StartPlugSize,
		EndPlugSize:   l.EndPlugSize,
		Origin:        origin,
	}
}

// Anchors returns the start and end anchors of the link in p.
func (l Link) Anchors(p layout.Provider) (start, end anchor.Anchor) {
	return anchorFor(layout.Target(p, l.From), l.FromPoint, l.FromArea),
		anchorFor(layout.Target(p, l.To), l.ToPoint, l.ToArea)
}

func anchorFor(t anchor.Target, pt, area []float64) anchor.Anchor {
	switch {
	case len(area) == 4:
		return anchor.Area(t, area[0], area[1], area[2], area[3])
	case len(pt) == 2:
		return anchor.Point(t, pt[0], pt[1])
	}
	return anchor.Element(t)
}

// Provider returns a layout provider holding every element.
func (s *Scene) Provider() *layout.Static {
	p := layout.NewStatic()
	for _, e := range s.Elements {
		p.Set(e.ID, e.Rect())
	}
	return p
}

// Origin returns the container origin, or nil for absolute coordinates.
func (s *Scene) Origin() *geom.Point {
	if s.Container == nil {
		return nil
	}
	o := *s.Container
	return &o
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported scene file %q (want .toml or .json)", filepath.Base(name))
}

// Load reads and validates a scene file.
func Load(name string) (*Scene, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes a scene without validating it.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse TOML scene")
		}
		for _, k := range md.Undecoded() {
			// Outline tables are decoded loosely and normalized later.
			if len(k) > 2 && k[0] == "link" && k[1] == "outline" {
				continue
			}
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown scene key %q", k.String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse JSON scene")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", format)
	}
	return &s, nil
}
