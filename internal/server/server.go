// Package server runs the local preview server: it serves the built site,
// watches the source trees, rebuilds on change, and pushes live reloads to
// connected browsers over SSE.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/logfields"
	"github.com/inkwell-press/inkwell/internal/metrics"
	"github.com/inkwell-press/inkwell/internal/site"
)

// Rebuilder runs one site build and reports its outcome. *site.Builder
// satisfies it.
type Rebuilder interface {
	Build(ctx context.Context) (*site.Report, error)
}

// Server is the preview server.
type Server struct {
	cfg      *config.Config
	builder  Rebuilder
	recorder metrics.Recorder
	hub      *LiveReloadHub

	mu       sync.Mutex
	building bool
}

// New wires a preview server around an existing builder.
func New(cfg *config.Config, builder Rebuilder, recorder metrics.Recorder) *Server {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Server{
		cfg:      cfg,
		builder:  builder,
		recorder: recorder,
		hub:      NewLiveReloadHub(recorder),
	}
}

// Run performs an initial build, then serves the output directory while
// watching the source trees until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	report, err := s.builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	s.hub.Broadcast(report.BuildID)

	debouncer, err := NewDebouncer(DebouncerConfig{
		QuietWindow: config.Duration(s.cfg.Server.QuietWindow, 200*time.Millisecond),
		MaxDelay:    config.Duration(s.cfg.Server.MaxDelay, 2*time.Second),
	})
	if err != nil {
		return err
	}

	watcher, err := NewWatcher([]string{
		s.cfg.Dirs.Content,
		s.cfg.Dirs.Layouts,
		s.cfg.Dirs.Static,
	}, debouncer)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go debouncer.Run(ctx)
	go watcher.Run(ctx)
	go s.rebuildLoop(ctx, debouncer)

	scheduler, err := s.startScheduler(debouncer)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Error("Scheduler shutdown", logfields.Error(err))
			}
		}()
	}

	if s.cfg.Server.Metrics {
		go s.serveMetrics(ctx)
	}

	return s.servePreview(ctx)
}

// rebuildLoop consumes coalesced triggers and runs builds one at a time.
func (s *Server) rebuildLoop(ctx context.Context, debouncer *Debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case trig := <-debouncer.C():
			slog.Info("Rebuilding site",
				slog.String("cause", trig.Cause),
				logfields.Count(trig.RequestCount),
				logfields.Path(trig.LastPath))

			s.setBuilding(true)
			report, err := s.builder.Build(ctx)
			s.setBuilding(false)

			if err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			s.hub.Broadcast(report.BuildID)
		}
	}
}

func (s *Server) setBuilding(v bool) {
	s.mu.Lock()
	s.building = v
	s.mu.Unlock()
}

// Building reports whether a rebuild is currently in flight.
func (s *Server) Building() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.building
}

// startScheduler sets up the optional periodic full rebuild.
func (s *Server) startScheduler(debouncer *Debouncer) (gocron.Scheduler, error) {
	interval := config.Duration(s.cfg.Server.RebuildEvery, 0)
	if interval <= 0 {
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { debouncer.Notify("scheduled") }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("every", interval))
	return scheduler, nil
}

func (s *Server) servePreview(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/livereload", s.hub)
	mux.HandleFunc("/livereload.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(LiveReloadScript))
	})
	mux.Handle("/", noCache(http.FileServer(http.Dir(s.cfg.Dirs.Output))))

	addr := s.cfg.Server.Addr
	if addr == "" {
		addr = "127.0.0.1:1414"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.String("addr", "http://"+strings.TrimPrefix(addr, "http://")))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.hub.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown preview server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server: %w", err)
	}
}

func (s *Server) serveMetrics(ctx context.Context) {
	pr, ok := s.recorder.(*metrics.PrometheusRecorder)
	if !ok {
		slog.Warn("Metrics endpoint requested but recorder is not Prometheus-backed")
		return
	}

	addr := s.cfg.Server.MetricsAddr
	if addr == "" {
		addr = "127.0.0.1:9414"
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(pr.Registry()))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Metrics server listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server", logfields.Error(err))
	}
}

// noCache disables browser caching so edits show up on plain refresh too.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
