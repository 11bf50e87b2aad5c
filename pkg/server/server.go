// Package server exposes the pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	GET  /version          build information
//	POST /v1/encode        pattern document in the body, rendered rows out
//	POST /v1/encode/{row}  pattern document in the body, one row as JSON
//	POST /v1/check/{row}   compare ?instruction= with the row
//
// The encode and check endpoints take their options from the query string: loader,
// filename, format, rows, purl, tolerance, cell_size and refresh. Unset
// options fall back to the server defaults.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stitchrow/pkg/httputil"
	"github.com/matzehuels/stitchrow/pkg/observability"
	"github.com/matzehuels/stitchrow/pkg/pipeline"
)

// DefaultMaxUploadBytes caps request bodies when Options leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Options configures a Server.
type Options struct {
	Addr           string
	MaxUploadBytes int64

	// Defaults holds the palette, cell size and format applied when a
	// request does not override them.
	Defaults pipeline.Options
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// New creates a server that runs requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	return &Server{runner: runner, logger: logger.WithPrefix("server"), opts: opts}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequestSize(s.opts.MaxUploadBytes))
		r.Post("/encode", s.handleEncode)
		r.Post("/encode/{row}", s.handleEncodeRow)
		r.Post("/check/{row}", s.handleCheck)
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Microsecond),
			"request_id", httputil.RequestIDFromContext(ctx))
	})
}
