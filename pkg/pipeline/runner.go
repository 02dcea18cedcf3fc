package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tether/pkg/cache"
	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/layout"
	"github.com/matzehuels/tether/pkg/observability"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/scene"
)

// Runner executes requests with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Compute solves one request. The boolean reports a cache hit.
func (r *Runner) Compute(ctx context.Context, req Request) (*connector.Geometry, bool, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid request: %w", err)
	}
	hooks := observability.Geometry()
	kind := string(req.Options.Path)
	key := r.Keyer.GeometryKey(req.key())

	if !req.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var g connector.Geometry
			if err := json.Unmarshal(data, &g); err == nil {
				observability.Cache().OnCacheHit(ctx, "geometry")
				return &g, true, nil
			}
			// Undecodable entry: fall through and overwrite it.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "geometry")
	}

	start := time.Now()
	hooks.OnSolveStart(ctx, req.ID, kind)
	g := connector.Solve(req.Start, req.End, req.Options)
	hooks.OnSolveComplete(ctx, req.ID, kind, time.Since(start), nil)

	if data, err := json.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLGeometry); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "geometry", len(data))
		}
	}

	r.Logger.Debug("computed geometry",
		"id", req.ID,
		"kind", kind,
		"start_socket", g.StartSocket,
		"end_socket", g.EndSocket,
		"duration", time.Since(start))
	return &g, false, nil
}

// ComputeScene computes every link of s. Elements are looked up in p, or in
// the scene's own elements when p is nil. Links whose rectangles are not
// ready are reported as pending instead of failing the scene.
func (r *Runner) ComputeScene(ctx context.Context, s *scene.Scene, p layout.Provider) (*SceneResult, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "no scene")
	}
	if p == nil {
		p = s.Provider()
	}

	start := time.Now()
	res := &SceneResult{Links: make([]LinkResult, 0, len(s.Links))}
	origin := s.Origin()
	first := true

	for _, link := range s.Links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lr := r.computeLink(ctx, link, p, origin)
		res.Links = append(res.Links, lr)

		switch {
		case lr.Pending:
			res.Stats.Pending++
		case lr.Error != "":
			res.Stats.Failed++
		default:
			res.Stats.Computed++
			if lr.Cached {
				res.Stats.CacheHits++
			}
			if first {
				res.Box = lr.Geometry.Box
				first = false
			} else {
				res.Box = res.Box.Union(lr.Geometry.Box)
			}
		}
	}

	res.Stats.Links = len(s.Links)
	res.Stats.Duration = time.Since(start)
	observability.Geometry().OnSceneComplete(ctx, res.Stats.Links, res.Stats.Duration, nil)

	r.Logger.Info("computed scene",
		"links", res.Stats.Links,
		"computed", res.Stats.Computed,
		"cached", res.Stats.CacheHits,
		"pending", res.Stats.Pending,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) computeLink(ctx context.Context, link scene.Link, p layout.Provider, origin *geom.Point) LinkResult {
	lr := LinkResult{ID: link.Key()}

	startAnchor, endAnchor := link.Anchors(p)
	sr, err := startAnchor.Measure(ctx)
	if err == nil {
		var er geom.Rect
		if er, err = endAnchor.Measure(ctx); err == nil {
			lr.Geometry, lr.Cached, err = r.Compute(ctx, Request{
				ID:      lr.ID,
				Start:   sr,
				End:     er,
				Options: link.Options(origin),
			})
		}
	}

	switch {
	case err == nil:
	case errors.IsNotReady(err):
		lr.Pending = true
		observability.Geometry().OnNotReady(ctx, lr.ID)
		r.Logger.Debug("link not ready", "id", lr.ID, "err", errors.UserMessage(err))
	default:
		lr.Error = errors.UserMessage(err)
		r.Logger.Warn("link failed", "id", lr.ID, "err", err)
	}
	return lr
}

// Plug returns the SVG path data of a plug shape centered at the origin.
func (r *Runner) Plug(ctx context.Context, kind plug.Kind, size float64) (string, error) {
	kind = plug.Normalize(string(kind))
	if !kind.Known() {
		return "", errors.New(errors.ErrCodeInvalidKind, "unknown plug kind %q", kind)
	}
	if size == 0 {
		size = plug.DefaultSize
	}
	if !plug.ValidSize(size) {
		return "", errors.New(errors.ErrCodeInvalidInput, "plug size must be in (0, %g]", plug.MaxSize)
	}

	key := r.Keyer.PlugKey(string(kind), size)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "plug")
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, "plug")

	shape := plug.Generate(kind, size)
	if kind == plug.Behind {
		shape = plug.BehindSquare(size)
	}
	d := shape.String()
	if err := r.Cache.Set(ctx, key, []byte(d), TTLPlug); err == nil {
		observability.Cache().OnCacheSet(ctx, "plug", len(d))
	}
	return d, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
