package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	mw "github.com/tphakala/video-enrichment-api/internal/api/middleware"
	v1 "github.com/tphakala/video-enrichment-api/internal/api/v1"
	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/observability"
)

// Server is the HTTP server of the video enrichment API.
// It manages the Echo framework instance, middleware, and all HTTP routes.
type Server struct {
	// Core components
	echo     *echo.Echo
	config   *Config
	settings *conf.Settings
	logger   logger.Logger

	// Dependencies
	managers *domain.Managers
	metrics  *observability.Metrics

	// API controller
	apiController *v1.Controller

	// Lifecycle management
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startTime time.Time
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics sets the shared Prometheus metrics.
func WithMetrics(m *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a new HTTP server serving the domain managers.
func New(settings *conf.Settings, managers *domain.Managers, opts ...ServerOption) (*Server, error) {
	config := ConfigFromSettings(settings)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	// Create context for lifecycle management
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		config:    config,
		settings:  settings,
		managers:  managers,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = GetLogger()
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true

	// Configure Echo server timeouts
	s.echo.Server.ReadTimeout = config.ReadTimeout
	s.echo.Server.WriteTimeout = config.WriteTimeout
	s.echo.Server.IdleTimeout = config.IdleTimeout

	s.setupMiddleware()

	if err := s.setupRoutes(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}

	s.logger.Info("HTTP server initialized",
		logger.String("listen", config.Listen),
		logger.String("prefix", settings.API.Prefix),
		logger.Bool("metrics", config.MetricsEnabled))

	return s, nil
}

// setupMiddleware configures the Echo middleware stack.
func (s *Server) setupMiddleware() {
	// Recovery middleware - should be first
	s.echo.Use(echomw.Recover())

	s.echo.Use(mw.NewRequestID())

	// Request logging, scrapes excluded
	s.echo.Use(mw.NewRequestLoggerWithSkipper(s.logger, func(c echo.Context) bool {
		return c.Path() == s.config.MetricsPath
	}))

	if s.metrics != nil {
		s.echo.Use(mw.NewHTTPMetrics(s.metrics.HTTP))
	}

	s.echo.Use(mw.NewCORS(s.config.CORS))
	s.echo.Use(mw.NewBodyLimit(s.config.BodyLimit))
	s.echo.Use(mw.NewSecureHeaders())
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() error {
	opts := []v1.Option{v1.WithLogger(s.logger)}
	if s.metrics != nil {
		opts = append(opts, v1.WithMetrics(s.metrics.HTTP))
	}

	apiController, err := v1.New(s.echo, s.managers, s.settings, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize API v1: %w", err)
	}
	s.apiController = apiController
	s.echo.HTTPErrorHandler = apiController.ErrorHandler

	if s.config.MetricsEnabled && s.metrics != nil {
		s.echo.GET(s.config.MetricsPath, echo.WrapHandler(s.metrics.Handler()))
	}

	s.logger.Info("Routes initialized",
		logger.String("api_version", "v1"),
		logger.String("metrics_path", s.config.MetricsPath))

	return nil
}

// Start begins serving HTTP requests in a background goroutine and returns
// immediately. Use Shutdown() to stop the server.
func (s *Server) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.startBlocking(); err != nil {
			s.logger.Error("Server error", logger.Error(err))
		}
	}()

	s.logger.Info("HTTP server starting", logger.String("listen", s.config.Listen))
}

// startBlocking begins serving HTTP requests and blocks until the server is shut down.
func (s *Server) startBlocking() error {
	err := s.echo.Start(s.config.Listen)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartWithGracefulShutdown starts the server and handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	s.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("Shutdown signal received, initiating graceful shutdown",
			logger.String("signal", sig.String()))
	case <-s.ctx.Done():
		// Shutdown was called directly
		return nil
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server, letting in-flight requests finish
// within the shutdown timeout.
func (s *Server) Shutdown() error {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("Error during server shutdown", logger.Error(err))
		return fmt.Errorf("shutdown error: %w", err)
	}

	// Wait for the serve goroutine to return
	s.wg.Wait()

	s.logger.Info("Server shutdown complete",
		logger.Duration("uptime", time.Since(s.startTime)))
	return nil
}

// Addr returns the bound listener address, or nil before the server is listening.
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

// APIController returns the v1 API controller.
func (s *Server) APIController() *v1.Controller {
	return s.apiController
}

// Echo returns the underlying Echo instance.
// This is useful for testing or advanced configuration.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
