// Package api provides the HTTP JSON API for graph analysis.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/leapgraph/internal/analyzer"
	"golang.org/x/sync/errgroup"
)

// Server serves graph analysis over HTTP.
type Server struct {
	manifestPath string
	port         int
	watch        bool
	logger       *slog.Logger

	mu       sync.RWMutex
	analyzer *analyzer.Analyzer
}

// Config holds configuration for the API server.
type Config struct {
	ManifestPath string
	Port         int
	Watch        bool
	Logger       *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		manifestPath: cfg.ManifestPath,
		port:         cfg.Port,
		watch:        cfg.Watch,
		logger:       logger,
	}
}

// Load parses the manifest and builds the analyzer. Must be called
// before Serve.
func (s *Server) Load() error {
	a := analyzer.New(analyzer.Config{
		ManifestPath: s.manifestPath,
		Logger:       s.logger,
	})
	if err := a.Load(); err != nil {
		return err
	}
	s.swap(a)
	return nil
}

// current returns the analyzer for the most recently loaded manifest.
func (s *Server) current() *analyzer.Analyzer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer
}

// swap replaces the served analyzer. In-flight requests keep the one
// they already hold.
func (s *Server) swap(a *analyzer.Analyzer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzer = a
}

// Routes builds the HTTP handler. Exposed for tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/nodes", s.handleNodes)
		r.Get("/nodes/{id}", s.handleNode)
		r.Get("/nodes/{id}/dot", s.handleNodeDOT)
	})

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start manifest watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchManifest(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchManifest watches the manifest file for changes and reloads the
// analyzer when it is rewritten.
func (s *Server) watchManifest(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: dbt replaces the manifest
	// atomically, which retires the old inode.
	if err := watcher.Add(filepath.Dir(s.manifestPath)); err != nil {
		s.logger.Error("failed to watch manifest directory", "error", err)
		// Don't fail - continue without watching
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.manifestPath) {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("manifest changed, reloading", "file", event.Name)

				a := analyzer.New(analyzer.Config{
					ManifestPath: s.manifestPath,
					Logger:       s.logger,
				})
				if err := a.Load(); err != nil {
					s.logger.Error("manifest reload failed", "error", err)
					return
				}
				s.swap(a)
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
