// Package manager keeps many connectors up to date as elements move.
//
// One goroutine (Run) owns every registration. Callers talk to it only
// through messages: Add, Remove, Invalidate and Get send a command and wait
// for the reply, and recomputed geometry is published on Updates. There is
// no shared mutable state between the manager and the geometry engine.
//
//	m := manager.New(provider, runner, logger)
//	go m.Run(ctx)
//	id, _ := m.Add(ctx, scene.Link{From: "a", To: "b"}, nil)
//	provider.Set("a", moved)
//	m.Invalidate(ctx, "a")
//	u := <-m.Updates()
//
// Invalidate skips a link unless one of its rectangles has a MeasuredAt
// newer than the one its current geometry was computed from.
package manager

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tether/pkg/connector"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/layout"
	"github.com/matzehuels/tether/pkg/pipeline"
	"github.com/matzehuels/tether/pkg/scene"
)

// UpdateBuffer is the capacity of the Updates channel.
const UpdateBuffer = 64

// Update is published whenever a link's geometry is recomputed or the link
// turns out not to be ready.
type Update struct {
	ID       string
	Geometry *connector.Geometry // nil when Err is set
	Err      error
	At       time.Time
}

type entry struct {
	link   scene.Link
	origin *geom.Point
	geo    *connector.Geometry
	start  geom.Rect // rectangles geo was computed from
	end    geom.Rect
}

type opKind int

const (
	opAdd opKind = iota
	opRemove
	opInvalidate
	opGet
)

type command struct {
	op      opKind
	link    scene.Link
	origin  *geom.Point
	id      string
	handles []string
	reply   chan reply
}

type reply struct {
	id  string
	n   int
	geo *connector.Geometry
	err error
}

// Manager coordinates connector recomputation.
type Manager struct {
	provider layout.Provider
	runner   *pipeline.Runner
	logger   *log.Logger

	cmds    chan command
	updates chan Update
	done    chan struct{}
}

// New creates a manager reading rectangles from p. A nil runner computes
// without caching.
func New(p layout.Provider, runner *pipeline.Runner, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Manager{
		provider: p,
		runner:   runner,
		logger:   logger,
		cmds:     make(chan command),
		updates:  make(chan Update, UpdateBuffer),
		done:     make(chan struct{}),
	}
}

// Updates returns the channel recomputed geometry is published on. It is
// closed when Run returns.
func (m *Manager) Updates() <-chan Update { return m.updates }

// Run processes commands until ctx is canceled. It must be called exactly
// once.
func (m *Manager) Run(ctx context.Context) error {
	defer close(m.updates)
	defer close(m.done)

	links := make(map[string]*entry)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-m.cmds:
			c.reply <- m.handle(ctx, links, c)
		}
	}
}

func (m *Manager) handle(ctx context.Context, links map[string]*entry, c command) reply {
	switch c.op {
	case opAdd:
		if c.link.ID == "" {
			c.link.ID = uuid.NewString()
		}
		if _, dup := links[c.link.ID]; dup {
			return reply{err: errors.New(errors.ErrCodeInvalidInput, "link %q already registered", c.link.ID)}
		}
		e := &entry{link: c.link, origin: c.origin}
		links[c.link.ID] = e
		m.logger.Debug("link added", "id", c.link.ID, "from", c.link.From, "to", c.link.To)
		n := m.refresh(ctx, e)
		return reply{id: c.link.ID, n: n}

	case opRemove:
		if _, ok := links[c.id]; !ok {
			return reply{err: errors.New(errors.ErrCodeNotFound, "link %q not found", c.id)}
		}
		delete(links, c.id)
		m.logger.Debug("link removed", "id", c.id)
		return reply{}

	case opInvalidate:
		n := 0
		for _, e := range links {
			if dependsOn(e.link, c.handles) {
				n += m.refresh(ctx, e)
			}
		}
		return reply{n: n}

	case opGet:
		e, ok := links[c.id]
		if !ok {
			return reply{err: errors.New(errors.ErrCodeNotFound, "link %q not found", c.id)}
		}
		if e.geo == nil {
			return reply{err: errors.NotReady("link %q has no geometry yet", c.id)}
		}
		return reply{geo: e.geo}
	}
	return reply{err: errors.New(errors.ErrCodeInternal, "unknown command")}
}

// refresh recomputes e when its rectangles changed and returns 1 if an
// update was published.
func (m *Manager) refresh(ctx context.Context, e *entry) int {
	id := e.link.ID
	startAnchor, endAnchor := e.link.Anchors(m.provider)

	sr, err := startAnchor.Measure(ctx)
	var er geom.Rect
	if err == nil {
		er, err = endAnchor.Measure(ctx)
	}
	if err != nil {
		e.geo = nil
		m.publish(ctx, Update{ID: id, Err: err, At: time.Now()})
		return 1
	}

	if e.geo != nil && !changed(sr, e.start) && !changed(er, e.end) {
		return 0
	}

	geo, _, err := m.runner.Compute(ctx, pipeline.Request{
		ID:      id,
		Start:   sr,
		End:     er,
		Options: e.link.Options(e.origin),
	})
	if err != nil {
		e.geo = nil
		m.publish(ctx, Update{ID: id, Err: err, At: time.Now()})
		return 1
	}
	e.geo, e.start, e.end = geo, sr, er
	m.publish(ctx, Update{ID: id, Geometry: geo, At: time.Now()})
	return 1
}

func (m *Manager) publish(ctx context.Context, u Update) {
	select {
	case m.updates <- u:
	case <-ctx.Done():
	}
}

// changed reports whether cur supersedes prev. Providers that do not stamp
// MeasuredAt are compared by value.
func changed(cur, prev geom.Rect) bool {
	if cur.MeasuredAt.IsZero() {
		cur.MeasuredAt, prev.MeasuredAt = time.Time{}, time.Time{}
		return cur != prev
	}
	return cur.NewerThan(prev)
}

func dependsOn(l scene.Link, handles []string) bool {
	if len(handles) == 0 {
		return true
	}
	for _, h := range handles {
		if h == l.From || h == l.To {
			return true
		}
	}
	return false
}

func (m *Manager) send(ctx context.Context, c command) reply {
	c.reply = make(chan reply, 1)
	select {
	case m.cmds <- c:
	case <-m.done:
		return reply{err: errors.New(errors.ErrCodeInternal, "manager stopped")}
	case <-ctx.Done():
		return reply{err: ctx.Err()}
	}
	select {
	case r := <-c.reply:
		return r
	case <-ctx.Done():
		return reply{err: ctx.Err()}
	}
}

// Add registers link and computes it once. Links without an ID get a random
// UUID, which is returned. origin is the container origin (nil = absolute).
func (m *Manager) Add(ctx context.Context, link scene.Link, origin *geom.Point) (string, error) {
	if err := (&scene.Scene{Links: []scene.Link{withPlaceholderID(link)}}).ValidateLinks(); err != nil {
		return "", err
	}
	r := m.send(ctx, command{op: opAdd, link: link, origin: origin})
	return r.id, r.err
}

// withPlaceholderID lets links without an ID pass identifier validation.
func withPlaceholderID(l scene.Link) scene.Link {
	if l.ID == "" {
		l.ID = "pending"
	}
	return l
}

// Remove unregisters a link.
func (m *Manager) Remove(ctx context.Context, id string) error {
	return m.send(ctx, command{op: opRemove, id: id}).err
}

// Invalidate re-measures the links attached to any of handles (all links
// when none are given) and returns how many updates were published.
func (m *Manager) Invalidate(ctx context.Context, handles ...string) (int, error) {
	r := m.send(ctx, command{op: opInvalidate, handles: handles})
	return r.n, r.err
}

// Get returns the current geometry of a link.
func (m *Manager) Get(ctx context.Context, id string) (*connector.Geometry, error) {
	r := m.send(ctx, command{op: opGet, id: id})
	return r.geo, r.err
}
