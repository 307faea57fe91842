package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mentorly-hq/triton/pkg/ai"
	"mentorly-hq/triton/pkg/config"
	"mentorly-hq/triton/pkg/gateway/middleware"
	"mentorly-hq/triton/pkg/handlers"
	"mentorly-hq/triton/pkg/ratelimit"
	"mentorly-hq/triton/pkg/telemetry/metrics"
)

// Server is the gateway HTTP server.
type Server struct {
	config     *config.Config
	store      handlers.DocumentStore
	completer  ai.Completer
	collector  *metrics.Collector
	httpServer *http.Server

	globalLimiter *ratelimit.Limiter
	aiLimiter     *ratelimit.Limiter

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates the gateway server. collector may be nil when metrics
// are disabled.
func NewServer(cfg *config.Config, store handlers.DocumentStore, completer ai.Completer, collector *metrics.Collector) *Server {
	return &Server{
		config:       cfg,
		store:        store,
		completer:    completer,
		collector:    collector,
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

	s.globalLimiter = ratelimit.New(limiterConfig(s.config.Limits.Global))
	s.aiLimiter = ratelimit.New(limiterConfig(s.config.Limits.AI))
	defer s.globalLimiter.Close()
	defer s.aiLimiter.Close()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server",
			"address", s.config.Server.ListenAddress,
			"trust_proxy_hops", s.config.Server.TrustProxyHops,
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
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop requests an asynchronous shutdown of a running server.
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
	})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	slog.Info("gateway server stopped")
	return nil
}

// setupRoutes builds the route table and wraps it in the middleware
// pipeline.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler()
	planHandler := handlers.NewPlanHandler(s.completer)
	curationHandler := handlers.NewCurationHandler(s.completer)
	pdfHandler := handlers.NewPDFHandler(s.store, s.completer)

	// Every sub-path of an AI prefix passes through the AI limiter, even
	// ones that end up 404 inside the group, so gating is uniform across
	// the whole subtree.
	aiGate := middleware.RateLimitMiddleware(s.aiLimiter, "ai", s.collector)

	planGroup := http.NewServeMux()
	planGroup.Handle("POST /generate-plan", middleware.ErrorHandler(planHandler.Generate))
	planGroup.Handle("/", handlers.NotFound())

	curationGroup := http.NewServeMux()
	curationGroup.Handle("POST /curate-resources", middleware.ErrorHandler(curationHandler.Curate))
	curationGroup.Handle("/", handlers.NotFound())

	pdfGroup := http.NewServeMux()
	pdfGroup.Handle("POST /pdf/upload", middleware.ErrorHandler(pdfHandler.Upload))
	pdfGroup.Handle("POST /pdf/chat", middleware.ErrorHandler(pdfHandler.Chat))
	pdfGroup.Handle("GET /pdf/documents", middleware.ErrorHandler(pdfHandler.List))
	pdfGroup.Handle("GET /pdf/documents/{id}/history", middleware.ErrorHandler(pdfHandler.History))
	pdfGroup.Handle("/", handlers.NotFound())

	mux.Handle("GET /{$}", healthHandler.Status())
	mux.Handle("GET /health", healthHandler.Health())

	for prefix, group := range map[string]http.Handler{
		"/generate-plan":    planGroup,
		"/curate-resources": curationGroup,
		"/pdf":              pdfGroup,
	} {
		gated := aiGate(group)
		mux.Handle(prefix, gated)
		mux.Handle(prefix+"/", gated)
	}

	if s.collector != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	// Everything the route table does not claim gets the JSON 404.
	mux.Handle("/", handlers.NotFound())

	var handler http.Handler = mux

	handler = middleware.RateLimitMiddleware(s.globalLimiter, "global", s.collector)(handler)
	handler = middleware.CORSMiddleware(s.config.CORS)(handler)
	handler = middleware.RealIPMiddleware(s.config.Server.TrustProxyHops)(handler)
	if s.collector != nil {
		handler = middleware.MetricsMiddleware(s.collector)(handler)
	}
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// limiterConfig maps a config section onto a limiter instance config.
func limiterConfig(cfg config.RateLimitConfig) ratelimit.Config {
	return ratelimit.Config{
		Window:      cfg.Window,
		MaxRequests: cfg.MaxRequests,
		Message:     cfg.Message,
		Headers:     ratelimit.HeaderMode(cfg.Headers),
	}
}
