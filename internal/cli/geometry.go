package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tether/pkg/bounds"
	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/path"
	"github.com/matzehuels/tether/pkg/pipeline"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/render"
	"github.com/matzehuels/tether/pkg/socket"
)

// Output formats of geometry and scene.
const (
	formatJSON = "json"
	formatSVG  = "svg"
	formatText = "text"
)

type geometryFlags struct {
	from, to     string
	startSocket  string
	endSocket    string
	diagonal     bool
	path         string
	curvature    float64
	gravity      bool
	stroke       float64
	outline      bool
	outlineColor string
	outlineWidth float64
	startPlug    string
	endPlug      string
	plugSize     float64
	origin       string
	format       string
	output       string
	refresh      bool
	cache        cacheFlags
}

// geometryCommand creates the geometry command.
func (c *CLI) geometryCommand() *cobra.Command {
	var f geometryFlags

	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Compute the connector between two rectangles",
		Long: `Compute the path, plugs and bounding box of a connector between two rectangles.

Rectangles are given as x,y,width,height in absolute coordinates.`,
		Example: `  tether geometry --from 0,0,100,50 --to 300,0,100,50
  tether geometry --from 0,0,100,50 --to 300,200,100,50 --path fluid --curvature 0.4 --format svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), f.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			geo, hit, err := runner.Compute(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.Logger.Debug("geometry computed", "kind", geo.Kind, "cached", hit)

			return writeOutput(cmd, f.output, func(w io.Writer) error {
				return writeGeometry(w, f.format, req, geo)
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.from, "from", "", "start rectangle x,y,w,h (required)")
	fl.StringVar(&f.to, "to", "", "end rectangle x,y,w,h (required)")
	fl.StringVar(&f.startSocket, "start-socket", "auto", "start socket: auto, top, right, bottom, left or a corner")
	fl.StringVar(&f.endSocket, "end-socket", "auto", "end socket")
	fl.BoolVar(&f.diagonal, "diagonal", false, "let auto sockets pick corners")
	fl.StringVar(&f.path, "path", string(path.Straight), "path kind: straight, arc, fluid, magnet, grid")
	fl.Float64Var(&f.curvature, "curvature", path.DefaultCurvature, "bow of arc and fluid paths")
	fl.BoolVar(&f.gravity, "gravity", false, "bend fluid paths out along the socket normals")
	fl.Float64Var(&f.stroke, "stroke", connector.DefaultStrokeWidth, "stroke width")
	fl.BoolVar(&f.outline, "outline", false, "draw an outline around the stroke")
	fl.StringVar(&f.outlineColor, "outline-color", bounds.DefaultOutlineColor, "outline color")
	fl.Float64Var(&f.outlineWidth, "outline-width", bounds.DefaultOutlineWidth, "outline width")
	fl.StringVar(&f.startPlug, "start-plug", string(connector.DefaultStartPlug), "start plug kind")
	fl.StringVar(&f.endPlug, "end-plug", string(connector.DefaultEndPlug), "end plug kind")
	fl.Float64Var(&f.plugSize, "plug-size", plug.DefaultSize, "size of both plugs")
	fl.StringVar(&f.origin, "origin", "", "container origin x,y; output becomes container-relative")
	fl.StringVarP(&f.format, "format", "f", formatJSON, "output format: json, svg, text")
	fl.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
	f.cache.register(cmd)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (f *geometryFlags) request() (pipeline.Request, error) {
	start, err := parseRect(f.from)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("--from: %w", err)
	}
	end, err := parseRect(f.to)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("--to: %w", err)
	}
	startSocket, err := socket.Parse(f.startSocket)
	if err != nil {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--start-socket: %v", err)
	}
	endSocket, err := socket.Parse(f.endSocket)
	if err != nil {
		return pipeline.Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--end-socket: %v", err)
	}
	kind, err := path.ParseKind(f.path)
	if err != nil {
		return pipeline.Request{}, err
	}
	if err := checkFormat(f.format); err != nil {
		return pipeline.Request{}, err
	}

	opts := connector.Options{
		StartSocket:   startSocket,
		EndSocket:     endSocket,
		Diagonal:      f.diagonal,
		Path:          kind,
		Curvature:     f.curvature,
		Gravity:       f.gravity,
		StrokeWidth:   f.stroke,
		StartPlug:     plug.Normalize(f.startPlug),
		EndPlug:       plug.Normalize(f.endPlug),
		StartPlugSize: f.plugSize,
		EndPlugSize:   f.plugSize,
	}
	if f.outline {
		opts.Outline = bounds.NormalizeOutline(bounds.Outline{
			Enabled: true,
			Color:   f.outlineColor,
			Width:   f.outlineWidth,
			Opacity: bounds.DefaultOutlineOpacity,
		})
	}
	if f.origin != "" {
		o, err := parsePoint(f.origin)
		if err != nil {
			return pipeline.Request{}, fmt.Errorf("--origin: %w", err)
		}
		opts.Origin = &o
	}
	return pipeline.Request{Start: start, End: end, Options: opts, Refresh: f.refresh}, nil
}

// =============================================================================
// Output
// =============================================================================

func writeGeometry(w io.Writer, format string, req pipeline.Request, geo *connector.Geometry) error {
	switch format {
	case formatSVG:
		_, err := w.Write(render.SVG([]connector.Geometry{*geo},
			render.WithElements([]render.Element{{ID: "from", Rect: req.Start}, {ID: "to", Rect: req.End}}),
			render.WithOrigin(req.Options.Origin)))
		return err
	case formatText:
		printKeyValue(w, "path", string(geo.Kind))
		printKeyValue(w, "sockets", geo.StartSocket.String()+" "+iconArrow+" "+geo.EndSocket.String())
		printKeyValue(w, "start", formatPoint(geo.Start))
		printKeyValue(w, "end", formatPoint(geo.End))
		printKeyValue(w, "d", geo.D)
		printKeyValue(w, "box", formatBox(geo.Box))
		for _, p := range []struct {
			label string
			pl    *plug.Placement
		}{{"start plug", geo.StartPlug}, {"end plug", geo.EndPlug}} {
			if p.pl != nil {
				printKeyValue(w, p.label, string(p.pl.Kind)+" "+p.pl.D)
			}
		}
		return nil
	}
	return writeJSON(w, geo)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput sends fn's output to the named file, or to stdout when name
// is empty.
func writeOutput(cmd *cobra.Command, name string, fn func(io.Writer) error) error {
	if name == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(name)
	return nil
}

// =============================================================================
// Parsing
// =============================================================================

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "want %d comma-separated numbers, got %q", n, s)
	}
	vs := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q", p)
		}
		vs[i] = v
	}
	return vs, nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	vs, err := parseFloats(s, 4)
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.R(vs[0], vs[1], vs[2], vs[3]), nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	vs, err := parseFloats(s, 2)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(vs[0], vs[1]), nil
}

func formatPoint(p geom.Point) string {
	return path.FormatNumber(p.X) + "," + path.FormatNumber(p.Y)
}

func formatBox(b geom.Box) string {
	return fmt.Sprintf("%s,%s %s×%s", path.FormatNumber(b.X), path.FormatNumber(b.Y),
		path.FormatNumber(b.Width), path.FormatNumber(b.Height))
}
