// Package pipeline runs connector requests with caching, logging and hooks.
//
// The geometry engine is pure; this package is the shared entry point the
// CLI, the HTTP API and the connector manager use so that all of them
// validate, cache and log the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	geo, hit, err := runner.Compute(ctx, pipeline.Request{
//	    Start:   geom.R(0, 0, 100, 50),
//	    End:     geom.R(300, 0, 100, 50),
//	    Options: connector.Options{Path: path.Fluid},
//	})
//
// Whole scenes:
//
//	result, err := runner.ComputeScene(ctx, s, nil)
package pipeline

import (
	"time"

	"github.com/matzehuels/tether/pkg/bounds"
	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// TTLGeometry is how long computed geometry stays cached.
	TTLGeometry = 7 * 24 * time.Hour

	// TTLPlug is how long plug shapes stay cached. Shapes depend only on
	// kind and size, so they never go stale.
	TTLPlug = 0
)

// =============================================================================
// Request - Connector Configuration
// =============================================================================

// Request is a self-contained connector request: two measured rectangles
// and the connector options. It is the JSON body of POST /v1/geometry.
type Request struct {
	ID      string            `json:"id,omitempty"`
	Start   geom.Rect         `json:"start"`
	End     geom.Rect         `json:"end"`
	Options connector.Options `json:"options"`

	// Outline accepts the loose forms (true, false, partial object) and
	// replaces Options.Outline when set.
	Outline any `json:"outline,omitempty"`

	// Refresh bypasses the cache read; the result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// ValidateAndSetDefaults checks the request and normalizes its options.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (r *Request) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}
	for name, rect := range map[string]geom.Rect{"start": r.Start, "end": r.End} {
		for _, v := range []float64{rect.X, rect.Y, rect.OriginX, rect.OriginY} {
			if err := errors.ValidateFinite(name+" position", v); err != nil {
				return err
			}
		}
		if err := errors.ValidateNonNegative(name+" width", rect.Width); err != nil {
			return err
		}
		if err := errors.ValidateNonNegative(name+" height", rect.Height); err != nil {
			return err
		}
		if !rect.Min().IsFinite() || !rect.Max().IsFinite() {
			return errors.New(errors.ErrCodeInvalidInput, "%s rectangle exceeds the coordinate range", name)
		}
	}
	// The connector spans both rectangles; its extent must stay finite too.
	if d := geom.Distance(r.Start.Center(), r.End.Center()); !geom.Pt(d, 0).IsFinite() {
		return errors.New(errors.ErrCodeInvalidInput, "rectangles are too far apart")
	}
	if o := r.Options.Origin; o != nil && o.IsFinite() {
		for name, rect := range map[string]geom.Rect{"start": r.Start, "end": r.End} {
			if !rect.Min().Sub(*o).IsFinite() || !rect.Max().Sub(*o).IsFinite() {
				return errors.New(errors.ErrCodeInvalidInput, "%s rectangle exceeds the coordinate range relative to origin", name)
			}
		}
	}

	if r.Outline != nil {
		r.Options.Outline = bounds.NormalizeOutline(r.Outline)
		r.Outline = nil
	}
	if err := r.Options.Validate(); err != nil {
		return err
	}
	r.Options = r.Options.WithDefaults()
	r.validated = true
	return nil
}

// cacheKey is the part of a request that determines its geometry.
// MeasuredAt is left out: a re-measured but unmoved element hits the cache.
type cacheKey struct {
	Start, End [6]float64
	Options    connector.Options
}

func (r *Request) key() cacheKey {
	flat := func(g geom.Rect) [6]float64 {
		return [6]float64{g.X, g.Y, g.Width, g.Height, g.OriginX, g.OriginY}
	}
	return cacheKey{Start: flat(r.Start), End: flat(r.End), Options: r.Options}
}

// =============================================================================
// Results
// =============================================================================

// LinkResult is the outcome for one link of a scene. Exactly one of Geometry
// and Error is set; Pending marks links waiting for a layout.
type LinkResult struct {
	ID       string              `json:"id"`
	Geometry *connector.Geometry `json:"geometry,omitempty"`
	Pending  bool                `json:"pending,omitempty"`
	Error    string              `json:"error,omitempty"`
	Cached   bool                `json:"cached,omitempty"`
}

// SceneResult holds every link of a scene in declaration order.
type SceneResult struct {
	Links []LinkResult `json:"links"`
	// Box is the union of all computed connector boxes.
	Box   geom.Box `json:"box"`
	Stats Stats    `json:"stats"`
}

// Pending returns the IDs of links whose rectangles are not ready.
func (r *SceneResult) Pending() []string {
	var ids []string
	for _, l := range r.Links {
		if l.Pending {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// Stats contains scene execution statistics.
type Stats struct {
	Links     int           `json:"links"`
	Computed  int           `json:"computed"`
	CacheHits int           `json:"cache_hits"`
	Pending   int           `json:"pending"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}
