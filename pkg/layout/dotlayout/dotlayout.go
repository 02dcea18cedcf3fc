// Package dotlayout positions elements with Graphviz.
//
// A DOT graph is laid out by the embedded Graphviz engine and every node
// becomes an element whose handle is the node name. Coordinates are
// converted from Graphviz points (y up, origin bottom-left) to screen space
// (y down, origin top-left), so connectors can be drawn directly between the
// node boxes.
package dotlayout

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/layout"
)

// PointsPerInch converts Graphviz's inch units to points.
const PointsPerInch = 72.0

// plain is Graphviz's line-oriented output: graph, node, edge and stop
// records with inch units.
const plain graphviz.Format = "plain"

// Node is one laid-out node in screen space.
type Node struct {
	Name string
	Rect geom.Rect
}

// Result holds every node and the overall drawing size.
type Result struct {
	Width, Height float64
	Nodes         []Node
}

// Provider returns a layout.Static filled with the node rectangles.
func (r *Result) Provider() *layout.Static {
	s := layout.NewStatic()
	for _, n := range r.Nodes {
		s.Set(n.Name, n.Rect)
	}
	return s
}

// Layout runs Graphviz on the DOT source and returns the node boxes.
func Layout(ctx context.Context, dot []byte) (*Result, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, plain, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return ParsePlain(buf.Bytes())
}

// ParsePlain reads Graphviz "plain" output.
func ParsePlain(data []byte) (*Result, error) {
	var res Result
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		fields, err := tokenize(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "graph":
			// graph scale width height
			nums, err := floats(fields, 1, 4)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			res.Width = nums[0] * nums[1] * PointsPerInch
			res.Height = nums[0] * nums[2] * PointsPerInch
		case "node":
			// node name x y width height label ...
			if len(fields) < 6 {
				return nil, fmt.Errorf("line %d: short node record", line)
			}
			nums, err := floats(fields, 2, 6)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cx, cy := nums[0]*PointsPerInch, nums[1]*PointsPerInch
			w, h := nums[2]*PointsPerInch, nums[3]*PointsPerInch
			res.Nodes = append(res.Nodes, Node{Name: fields[1], Rect: geom.R(cx-w/2, cy-h/2, w, h)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Flip y now that the graph height is known.
	for i := range res.Nodes {
		r := &res.Nodes[i].Rect
		r.OriginY = res.Height - r.OriginY - r.Height
	}
	return &res, nil
}

func floats(fields []string, from, to int) ([]float64, error) {
	if len(fields) < to {
		return nil, fmt.Errorf("expected %d fields, got %d", to, len(fields))
	}
	out := make([]float64, 0, to-from)
	for _, f := range fields[from:to] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// tokenize splits a plain-format line on spaces, keeping double-quoted
// strings together.
func tokenize(s string) ([]string, error) {
	var out []string
	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		if s[0] != '"' {
			end := strings.IndexByte(s, ' ')
			if end < 0 {
				end = len(s)
			}
			out = append(out, s[:end])
			s = s[end:]
			continue
		}
		end := 1
		for end < len(s) && s[end] != '"' {
			if s[end] == '\\' {
				end++
			}
			end++
		}
		if end >= len(s) {
			return nil, fmt.Errorf("unterminated string")
		}
		tok, err := strconv.Unquote(s[:end+1])
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		s = s[end+1:]
	}
	return out, nil
}
