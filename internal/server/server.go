// Package server implements the Kochwerk HTTP API.
//
// The API exposes the visualization pipeline over REST plus one websocket
// endpoint for streaming subdivision animations:
//
//	GET  /healthz               liveness and version
//	GET  /api/figure            generated figure JSON
//	GET  /api/render            rendered artifact in the requested format
//	GET  /api/measure           perimeter and dimension series
//	GET  /api/archive           list archived figures
//	POST /api/archive           archive a generated figure
//	GET  /api/archive/{id}      fetch one archived figure
//	DELETE /api/archive/{id}    remove an archived figure
//	GET  /api/live              websocket stream of per-level scenes
//
// Handlers translate the coded errors from pkg/errors into HTTP statuses,
// so clients can distinguish bad parameters from backend failures.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kochwerk/kochwerk/pkg/archive"
	"github.com/kochwerk/kochwerk/pkg/pipeline"
)

const (
	// readHeaderTimeout bounds slow-header attacks on the listener.
	readHeaderTimeout = 5 * time.Second

	// shutdownTimeout is how long in-flight requests get to finish.
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server. Nil fields fall back to working defaults:
// an uncached runner, an in-memory archive, and the default logger.
type Options struct {
	Runner *pipeline.Runner
	Store  archive.Store
	Logger *log.Logger

	// MaxLevel lowers the subdivision ceiling for every endpoint when
	// positive. Operators set it to keep 4^level request costs bounded.
	MaxLevel int
}

// Server wires the pipeline and archive into an HTTP handler.
type Server struct {
	runner   *pipeline.Runner
	store    archive.Store
	logger   *log.Logger
	router   *chi.Mux
	maxLevel int
}

// New creates a server and registers all routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = archive.NewMemoryStore()
	}

	s := &Server{
		runner:   opts.Runner,
		store:    opts.Store,
		logger:   opts.Logger,
		router:   chi.NewRouter(),
		maxLevel: opts.MaxLevel,
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/figure", s.handleFigure)
		r.Get("/render", s.handleRender)
		r.Get("/measure", s.handleMeasure)
		r.Get("/live", s.handleLive)

		r.Route("/archive", func(r chi.Router) {
			r.Get("/", s.handleArchiveList)
			r.Post("/", s.handleArchiveCreate)
			r.Get("/{id}", s.handleArchiveGet)
			r.Delete("/{id}", s.handleArchiveDelete)
		})
	})
}

// ListenAndServe serves the API on addr until ctx is cancelled, then
// drains in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
