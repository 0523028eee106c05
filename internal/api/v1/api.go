// Package api implements the versioned JSON endpoints of the video
// enrichment service. The HTTP server infrastructure lives in the parent
// package.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/api/auth"
	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
	"github.com/tphakala/video-enrichment-api/internal/validation"
)

// Controller manages the API routes and handlers
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	Settings *conf.Settings

	managers  *domain.Managers
	validator *validation.Validator
	logger    logger.Logger
	metrics   *metrics.HTTPMetrics

	// authMiddleware guards every route except the healthcheck
	authMiddleware echo.MiddlewareFunc
}

// Option is a functional option for configuring the Controller.
type Option func(*Controller)

// WithAuthMiddleware replaces the shared-secret gate built from settings.
func WithAuthMiddleware(mw echo.MiddlewareFunc) Option {
	return func(c *Controller) {
		c.authMiddleware = mw
	}
}

// WithMetrics records error and auth outcomes in m.
func WithMetrics(m *metrics.HTTPMetrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithLogger sets the controller logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates the API controller and registers its routes under the
// configured prefix.
func New(e *echo.Echo, managers *domain.Managers, settings *conf.Settings, opts ...Option) (*Controller, error) {
	if e == nil {
		return nil, fmt.Errorf("echo instance is required")
	}
	if managers == nil {
		return nil, fmt.Errorf("domain managers are required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings are required")
	}

	c := &Controller{
		Echo:      e,
		Settings:  settings,
		managers:  managers,
		validator: validation.Default(),
		logger:    logger.Global().Module("api"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.authMiddleware == nil {
		gate := auth.NewMiddleware(settings.Auth.HeaderKey, settings.Auth.SecretKey, c.metrics, c.logger)
		c.authMiddleware = gate.Authenticate
	}
	if e.Validator == nil {
		e.Validator = c.validator
	}

	c.Group = e.Group(settings.API.Prefix)
	c.initRoutes()

	return c, nil
}

// initRoutes registers all API endpoints
func (c *Controller) initRoutes() {
	// Health check endpoint - publicly accessible
	c.Group.GET("/healthcheck", c.HealthCheck)

	routeInitializers := []struct {
		name string
		fn   func()
	}{
		{"video routes", c.initVideoRoutes},
		{"taxonomy routes", c.initTaxonomyRoutes},
		{"entity routes", c.initEntityRoutes},
		{"entity media gallery routes", c.initGalleryRoutes},
		{"segment detection routes", c.initSegmentDetectionRoutes},
		{"detection routes", c.initDetectionRoutes},
	}

	for _, initializer := range routeInitializers {
		c.logger.Debug("initializing routes", logger.String("group", initializer.name))

		// Use a deferred function to recover from panics during route initialization
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("panic during route initialization",
						logger.String("group", initializer.name),
						logger.Any("panic", r))
				}
			}()

			initializer.fn()
		}()
	}
}

// protected creates a route group behind the authorization gate
func (c *Controller) protected(prefix string) *echo.Group {
	return c.Group.Group(prefix, c.authMiddleware)
}

// HealthCheck reports the service name and database availability. A failed
// database ping answers 503 so load balancers take the instance out.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	health := c.managers.Health.Status(ctx.Request().Context())
	if health.Status == domain.StatusDown {
		return ctx.JSON(http.StatusServiceUnavailable, health)
	}
	return ctx.JSON(http.StatusOK, health)
}
