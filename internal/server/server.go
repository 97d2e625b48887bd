// Package server is the browser viewer and JSON API of canvasbench.
//
// Routes:
//
//	GET    /                    viewer page with backend toggles
//	GET    /api/v1/backends     backend names, formats and supported kinds
//	GET    /api/v1/render       one frame, e.g. ?backend=svg&count=500&zoom=2
//	POST   /api/v1/bench        run a benchmark, body is a [BenchRequest]
//	GET    /api/v1/runs         stored runs, newest first
//	GET    /api/v1/runs/{id}    one stored run
//	DELETE /api/v1/runs/{id}    delete a stored run
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/canvasbench/pkg/bench"
	"github.com/matzehuels/canvasbench/pkg/httputil"
)

// Limits applied to API requests.
const (
	DefaultMaxCount = 50000
	MaxFrames       = 600
	maxBodyBytes    = 1 << 16
	shutdownTimeout = 10 * time.Second
)

// Server serves the viewer.
type Server struct {
	Runner *bench.Runner
	// Defaults seed every request; query parameters and request bodies
	// override single fields.
	Defaults bench.Options
	// MaxCount caps the item count of a request.
	MaxCount int
	Logger   *log.Logger
}

// New creates a server. A non-positive maxCount uses DefaultMaxCount.
func New(runner *bench.Runner, defaults bench.Options, maxCount int, logger *log.Logger) *Server {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Defaults: defaults, MaxCount: maxCount, Logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)

	r.Get("/", s.handleIndex)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/backends", s.handleBackends)
		r.Get("/render", s.handleRender)
		r.Post("/bench", s.handleBench)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Delete("/runs/{id}", s.handleDeleteRun)
	})
	return r
}

// Config holds the listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
