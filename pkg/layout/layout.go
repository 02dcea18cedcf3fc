// Package layout supplies element rectangles to the connector engine.
//
// A [Provider] maps opaque handles (element IDs) to rectangles. [Target]
// adapts one handle of a provider into an anchor.Target, which is the only
// thing the engine ever sees.
//
// Implementations:
//
//   - [Static]: an in-memory map, filled from scene files or by hand
//   - dotlayout: node boxes from a Graphviz layout
//   - mongolayout: rectangles stored in MongoDB
//
// [Chain] layers providers, e.g. scene elements over a Graphviz layout.
//
// Unknown handles report errors.ErrNotReady.
package layout

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/tether/pkg/anchor"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
)

// Provider returns the current rectangle of an element.
type Provider interface {
	Layout(ctx context.Context, handle string) (geom.Rect, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, handle string) (geom.Rect, error)

// Layout calls f.
func (f ProviderFunc) Layout(ctx context.Context, handle string) (geom.Rect, error) {
	return f(ctx, handle)
}

// Chain asks each provider in turn and returns the first rectangle found.
// A provider that reports not ready passes the handle on; any other error
// stops the lookup. Nil providers are skipped.
func Chain(ps ...Provider) Provider {
	return ProviderFunc(func(ctx context.Context, handle string) (geom.Rect, error) {
		for _, p := range ps {
			if p == nil {
				continue
			}
			r, err := p.Layout(ctx, handle)
			if err == nil || !errors.IsNotReady(err) {
				return r, err
			}
		}
		return geom.Rect{}, errors.NotReady("element %q has no layout", handle)
	})
}

type target struct {
	p      Provider
	handle string
}

func (t target) Measure(ctx context.Context) (geom.Rect, error) {
	if t.p == nil {
		return geom.Rect{}, errors.NotReady("no layout provider for %q", t.handle)
	}
	return t.p.Layout(ctx, t.handle)
}

// Target returns the anchor target for handle in p.
func Target(p Provider, handle string) anchor.Target {
	return target{p: p, handle: handle}
}

// Static is a concurrency-safe in-memory Provider.
//
// Set stamps every rectangle with a strictly increasing MeasuredAt, so
// callers can detect updates with geom.Rect.NewerThan even when the clock
// does not advance between two writes.
type Static struct {
	mu    sync.RWMutex
	rects map[string]geom.Rect
	last  time.Time
	now   func() time.Time
}

// NewStatic returns an empty Static provider.
func NewStatic() *Static {
	return &Static{rects: make(map[string]geom.Rect), now: time.Now}
}

// Set stores r for handle and returns the stored rectangle.
func (s *Static) Set(handle string, r geom.Rect) geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	if !at.After(s.last) {
		at = s.last.Add(time.Nanosecond)
	}
	s.last = at
	r.MeasuredAt = at
	s.rects[handle] = r
	return r
}

// Delete removes handle. Later lookups report not ready.
func (s *Static) Delete(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rects, handle)
}

// Get returns the rectangle for handle.
func (s *Static) Get(handle string) (geom.Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rects[handle]
	return r, ok
}

// Handles returns the known handles in sorted order.
func (s *Static) Handles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hs := make([]string, 0, len(s.rects))
	for h := range s.rects {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}

// Len returns the number of stored rectangles.
func (s *Static) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rects)
}

// Layout implements Provider.
func (s *Static) Layout(_ context.Context, handle string) (geom.Rect, error) {
	r, ok := s.Get(handle)
	if !ok {
		return geom.Rect{}, errors.NotReady("element %q has no layout", handle)
	}
	return r, nil
}

var _ Provider = (*Static)(nil)
