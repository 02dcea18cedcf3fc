// Package api serves the connector engine over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /version
//	POST   /v1/geometry          pipeline.Request -> connector.Geometry
//	POST   /v1/plugs             {kind, size}     -> {kind, size, d}
//	POST   /v1/scene             scene JSON       -> pipeline.SceneResult
//	PUT    /v1/elements/{handle} geom.Rect        -> {handle, updated}
//	DELETE /v1/elements/{handle}
//	POST   /v1/links             scene.Link       -> {id}
//	GET    /v1/links/{id}                         -> connector.Geometry
//	DELETE /v1/links/{id}
//
// Elements and links form a live registry backed by a manager.Manager:
// storing an element re-measures every link attached to it.
//
// Failures are returned as {"code": ..., "message": ...} with the status
// derived from the error code.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/layout"
	"github.com/matzehuels/tether/pkg/manager"
	"github.com/matzehuels/tether/pkg/pipeline"
)

const (
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes = 1 << 20

	// RequestTimeout bounds a single request.
	RequestTimeout = 30 * time.Second

	shutdownTimeout = 5 * time.Second
)

// ElementStore is where registered elements live. *mongolayout.Store
// satisfies it; StaticStore adapts an in-memory layout.Static.
type ElementStore interface {
	layout.Provider
	Put(ctx context.Context, handle string, r geom.Rect) error
	Delete(ctx context.Context, handle string) error
}

// StaticStore adapts s to ElementStore.
func StaticStore(s *layout.Static) ElementStore { return staticStore{s} }

type staticStore struct{ *layout.Static }

func (s staticStore) Put(_ context.Context, handle string, r geom.Rect) error {
	s.Set(handle, r)
	return nil
}

func (s staticStore) Delete(_ context.Context, handle string) error {
	s.Static.Delete(handle)
	return nil
}

// Server is the HTTP front end.
type Server struct {
	runner  *pipeline.Runner
	store   ElementStore
	manager *manager.Manager
	logger  *log.Logger
	router  chi.Router
	started atomic.Bool
}

// New creates a server. A nil store keeps elements in memory.
func New(runner *pipeline.Runner, store ElementStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if store == nil {
		store = StaticStore(layout.NewStatic())
	}
	s := &Server{
		runner:  runner,
		store:   store,
		manager: manager.New(store, runner, logger),
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(hooksMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/geometry", s.handleGeometry)
		r.Post("/plugs", s.handlePlug)
		r.Post("/scene", s.handleScene)

		r.Put("/elements/{handle}", s.handlePutElement)
		r.Delete("/elements/{handle}", s.handleDeleteElement)

		r.Post("/links", s.handleAddLink)
		r.Get("/links/{id}", s.handleGetLink)
		r.Delete("/links/{id}", s.handleDeleteLink)
	})
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the link manager until ctx is canceled. Link routes fail until
// Start has been called.
func (s *Server) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		if err := s.manager.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			s.logger.Error("link manager stopped", "err", err)
		}
	}()
	go s.drain()
}

// drain logs manager updates so publishing never blocks.
func (s *Server) drain() {
	for u := range s.manager.Updates() {
		if u.Err != nil {
			s.logger.Debug("link pending", "id", u.ID, "err", u.Err)
			continue
		}
		s.logger.Debug("link updated", "id", u.ID, "kind", u.Geometry.Kind)
	}
}

// ListenAndServe starts the manager and serves on addr until ctx is
// canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.Start(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
