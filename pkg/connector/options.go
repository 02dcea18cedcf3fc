package connector

import (
	"github.com/matzehuels/tether/pkg/bounds"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/socket"
)

// Defaults applied by Options.WithDefaults.
const (
	DefaultStrokeWidth = 4.0
	DefaultStartPlug   = plug.Behind
	DefaultEndPlug     = plug.Arrow1
)

// Options configures a connector. The zero value is usable: straight path,
// auto sockets, default stroke and plugs.
type Options struct {
	StartSocket socket.Position `json:"start_socket,omitempty" toml:"start_socket"`
	EndSocket   socket.Position `json:"end_socket,omitempty" toml:"end_socket"`
	// Diagonal lets auto sockets pick corners.
	Diagonal bool `json:"diagonal,omitempty" toml:"diagonal"`

	Path path.Kind `json:"path,omitempty" toml:"path"`
	// Curvature of arc and fluid paths. Zero means path.DefaultCurvature.
	Curvature float64 `json:"curvature,omitempty" toml:"curvature"`
	// Gravity bends fluid paths out along the socket normals.
	Gravity bool `json:"gravity,omitempty" toml:"gravity"`

	StrokeWidth float64         `json:"stroke_width,omitempty" toml:"stroke_width"`
	Outline     *bounds.Outline `json:"outline,omitempty" toml:"outline"`
	Shadow      *bounds.Shadow  `json:"shadow,omitempty" toml:"shadow"`

	StartPlug     plug.Kind `json:"start_plug,omitempty" toml:"start_plug"`
	EndPlug       plug.Kind `json:"end_plug,omitempty" toml:"end_plug"`
	StartPlugSize float64   `json:"start_plug_size,omitempty" toml:"start_plug_size"`
	EndPlugSize   float64   `json:"end_plug_size,omitempty" toml:"end_plug_size"`

	// Origin is the container's absolute top-left corner. Nil keeps
	// absolute coordinates.
	Origin *geom.Point `json:"origin,omitempty" toml:"origin"`
}

// WithDefaults returns a copy of o with unset and invalid fields replaced by
// defaults. Unknown path kinds fall back to straight, unknown plug kinds are
// kept and render as nothing.
func (o Options) WithDefaults() Options {
	if !o.Path.Valid() {
		o.Path = path.Straight
	}
	if o.Curvature == 0 || !geom.Pt(o.Curvature, 0).IsFinite() {
		o.Curvature = path.DefaultCurvature
	}
	if o.StrokeWidth == 0 || !geom.Pt(o.StrokeWidth, 0).IsFinite() {
		o.StrokeWidth = DefaultStrokeWidth
	}
	o.StrokeWidth = geom.NonNegative(o.StrokeWidth)

	o.StartPlug = plug.Normalize(string(o.StartPlug))
	o.EndPlug = plug.Normalize(string(o.EndPlug))
	if o.StartPlug == "" {
		o.StartPlug = DefaultStartPlug
	}
	if o.EndPlug == "" {
		o.EndPlug = DefaultEndPlug
	}
	if o.StartPlugSize == 0 {
		o.StartPlugSize = plug.DefaultSize
	}
	if o.EndPlugSize == 0 {
		o.EndPlugSize = plug.DefaultSize
	}
	o.Outline = bounds.NormalizeOutline(o.Outline)
	return o
}

// Validate reports the first option a strict caller should reject. Solve
// itself never fails and degrades instead.
func (o Options) Validate() error {
	if o.Path != "" && !o.Path.Valid() {
		return errors.New(errors.ErrCodeInvalidKind, "unknown path kind %q", o.Path)
	}
	for _, k := range []plug.Kind{o.StartPlug, o.EndPlug} {
		if k != "" && !plug.Normalize(string(k)).Known() {
			return errors.New(errors.ErrCodeInvalidKind, "unknown plug kind %q", k)
		}
	}
	if err := errors.ValidateFinite("curvature", o.Curvature); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("stroke_width", o.StrokeWidth); err != nil {
		return err
	}
	for name, size := range map[string]float64{"start_plug_size": o.StartPlugSize, "end_plug_size": o.EndPlugSize} {
		if size != 0 && !plug.ValidSize(size) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be in (0, %g]", name, plug.MaxSize)
		}
	}
	if o.Outline != nil {
		if err := errors.ValidateNonNegative("outline width", o.Outline.Width); err != nil {
			return err
		}
	}
	if o.Shadow != nil {
		if err := errors.ValidateNonNegative("shadow blur", o.Shadow.Blur); err != nil {
			return err
		}
	}
	if o.Origin != nil && !o.Origin.IsFinite() {
		return errors.New(errors.ErrCodeInvalidInput, "origin must be finite")
	}
	return nil
}

func (o Options) mode() socket.Mode {
	if o.Diagonal {
		return socket.Fine
	}
	return socket.Coarse
}
