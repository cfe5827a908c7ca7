package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/config"
	"launchcanvas/atlas/pkg/gateway/handlers"
	"launchcanvas/atlas/pkg/gateway/middleware"
	"launchcanvas/atlas/pkg/journey"
	"launchcanvas/atlas/pkg/secrets"
	"launchcanvas/atlas/pkg/telemetry/metrics"
)

// Dependencies holds the collaborators the server wires into its handlers.
type Dependencies struct {
	// Upstream issues completion requests to the upstream API.
	Upstream handlers.Completer

	// Secrets resolves the server-held upstream credential.
	Secrets secrets.Resolver

	// Storage persists analysis records.
	Storage analysis.Storage

	// Limitations is the per-model limitations table.
	Limitations *journey.LimitationsTable

	// Metrics records gateway traffic. Nil disables recording.
	Metrics *metrics.GatewayMetrics

	// MetricsHandler serves the metrics endpoint. Nil disables the route.
	MetricsHandler http.Handler

	// Logger is the base logger; component loggers are derived from it.
	Logger *slog.Logger
}

// Server is the HTTP gateway server.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new gateway server.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Gateway.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Gateway.ReadTimeout,
		WriteTimeout:   s.config.Gateway.WriteTimeout,
		IdleTimeout:    s.config.Gateway.IdleTimeout,
		MaxHeaderBytes: s.config.Gateway.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("starting gateway server",
			"address", s.config.Gateway.ListenAddress,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		s.deps.Logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.deps.Logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.deps.Logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.deps.Logger.Info("initiating graceful shutdown",
			"timeout", s.config.Gateway.ShutdownTimeout.String(),
		)

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Gateway.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.deps.Logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.deps.Logger.Info("gateway server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	completionsHandler := handlers.NewCompletionsHandler(
		s.deps.Upstream,
		s.deps.Secrets,
		s.config.Secrets.UpstreamCredential,
		s.deps.Metrics,
		s.deps.Logger,
	)
	probeHandler := handlers.NewProbeHandler(
		s.deps.Upstream,
		s.deps.Secrets,
		s.config.Secrets.UpstreamCredential,
		s.config.Upstream.ProbeModel,
		s.deps.Metrics,
		s.deps.Logger,
	)
	analysesHandler := handlers.NewAnalysesHandler(
		s.deps.Storage,
		s.deps.Limitations,
		s.deps.Logger,
	)
	healthHandler := handlers.NewHealthHandler()

	mux.Handle("/v1/chat/completions", completionsHandler)
	mux.Handle("/v1/chat/probe", probeHandler)
	mux.Handle("/v1/analyses", analysesHandler)
	mux.Handle("/v1/analyses/", analysesHandler)
	mux.Handle("/healthz", healthHandler)

	if s.deps.MetricsHandler != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.deps.MetricsHandler)
	}

	var handler http.Handler = mux

	handler = middleware.CORSMiddleware(&s.config.Gateway.CORS)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
