// Package gateway assembles the HTTP surface of the platform: the static
// route table, the middleware chain, and the server lifecycle.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/behark/ai/pkg/audit"
	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/dashboard"
	"github.com/behark/ai/pkg/frontend"
	"github.com/behark/ai/pkg/gateway/handlers"
	"github.com/behark/ai/pkg/platform"
	"github.com/behark/ai/pkg/sessions"
	"github.com/behark/ai/pkg/telemetry/logging"
	"github.com/behark/ai/pkg/telemetry/metrics"
)

// Deps carries the collaborators the server wires into its routes.
// Recorder and Tracker may be nil when the respective subsystem is
// disabled; every other field is required.
type Deps struct {
	Logger    *logging.Logger
	Collector *metrics.Collector
	State     *platform.State
	Providers handlers.ProviderManager
	Frontend  *frontend.Proxy
	Bridge    handlers.ChatBridge
	Recorder  *audit.Recorder
	Tracker   *sessions.Tracker
}

// Server is the platform's HTTP server. The route table is built once at
// startup; nothing mutates it afterwards.
type Server struct {
	config   *config.Config
	deps     Deps
	renderer *dashboard.Renderer

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	stopOnce     sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates the gateway server. A nil logger is replaced with a
// no-op logger.
func NewServer(cfg *config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &Server{
		config:       cfg,
		deps:         deps,
		renderer:     dashboard.NewRenderer(deps.Frontend.BaseURL()),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown. Shutdown is
// triggered by context cancellation, SIGINT/SIGTERM, a call to Stop, or a
// listener error.
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
		Addr:           s.config.Server.ListenAddress(),
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("starting gateway server",
			"address", s.config.Server.ListenAddress(),
			"frontend", s.deps.Frontend.BaseURL(),
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

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

// Stop asks a blocked Start to shut the server down. Safe to call more
// than once and before Start.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.shutdownChan)
	})
}

// Shutdown gracefully shuts down the server, draining in-flight requests
// up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.deps.State.SetStatus(platform.StatusStopping)
		s.deps.Logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
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

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, including the full
// middleware chain. Intended for tests driving the surface through
// httptest.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
