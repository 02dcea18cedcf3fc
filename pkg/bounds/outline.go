package bounds

import (
	"math"
	"strings"
)

// Outline and stroke defaults.
const (
	DefaultOutlineColor   = "indianred"
	DefaultOutlineWidth   = 1.0
	DefaultOutlineOpacity = 1.0
)

// Outline describes a halo drawn around the stroke. A nil *Outline means no
// outline.
type Outline struct {
	Enabled bool    `json:"enabled" toml:"enabled"`
	Color   string  `json:"color,omitempty" toml:"color"`
	Width   float64 `json:"width,omitempty" toml:"width"`
	Size    float64 `json:"size,omitempty" toml:"size"` // legacy alias of Width
	Opacity float64 `json:"opacity" toml:"opacity"`
}

// Extent returns how far the outline reaches beyond the stroke: the larger
// of Width and Size. Disabled outlines have no extent.
func (o *Outline) Extent() float64 {
	if o == nil || !o.Enabled {
		return 0
	}
	return max(nonNegative(o.Width), nonNegative(o.Size))
}

// NormalizeOutline turns the loosely typed outline inputs found in scene
// files and API requests into an *Outline:
//
//	nil, false        no outline
//	true              default outline
//	Outline, *Outline copied with defaults filled in
//	map[string]any    partial object, keys: enabled, color, width, size, opacity
//
// Any other value means no outline. A partial object without "enabled" is
// enabled. Returned outlines have Width >= 0 and Opacity in [0, 1].
func NormalizeOutline(v any) *Outline {
	switch o := v.(type) {
	case nil:
		return nil
	case bool:
		if !o {
			return nil
		}
		return fill(Outline{Enabled: true})
	case *Outline:
		if o == nil {
			return nil
		}
		return normalizeStruct(*o)
	case Outline:
		return normalizeStruct(o)
	case map[string]any:
		return normalizeMap(o)
	}
	return nil
}

func normalizeStruct(o Outline) *Outline {
	if !o.Enabled {
		return nil
	}
	if o.Opacity == 0 {
		o.Opacity = DefaultOutlineOpacity
	}
	return fill(o)
}

func normalizeMap(m map[string]any) *Outline {
	o := Outline{Enabled: true, Opacity: DefaultOutlineOpacity}
	for k, v := range m {
		switch strings.ToLower(k) {
		case "enabled":
			if b, ok := v.(bool); ok {
				o.Enabled = b
			}
		case "color":
			if s, ok := v.(string); ok {
				o.Color = s
			}
		case "width":
			o.Width = toFloat(v)
		case "size":
			o.Size = toFloat(v)
		case "opacity":
			o.Opacity = toFloat(v)
		}
	}
	if !o.Enabled {
		return nil
	}
	return fill(o)
}

func fill(o Outline) *Outline {
	if o.Color == "" {
		o.Color = DefaultOutlineColor
	}
	o.Width = nonNegative(o.Width)
	o.Size = nonNegative(o.Size)
	if o.Width == 0 && o.Size == 0 {
		o.Width = DefaultOutlineWidth
	}
	if math.IsNaN(o.Opacity) {
		o.Opacity = DefaultOutlineOpacity
	}
	o.Opacity = math.Max(0, math.Min(1, o.Opacity))
	return &o
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	}
	return 0
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
