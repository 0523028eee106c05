// Package api provides the HTTP server infrastructure of the video
// enrichment service. The JSON endpoints are organized in the v1
// subpackage.
package api

import (
	"fmt"
	"time"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// GetLogger returns the api package logger.
func GetLogger() logger.Logger {
	return logger.Global().Module("api")
}

// Default constants for the HTTP server.
const (
	DefaultListen          = ":8000"
	DefaultReadTimeout     = 5 * time.Minute
	DefaultWriteTimeout    = 5 * time.Minute
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultBodyLimit       = "512M"
	DefaultMetricsPath     = "/metrics"
)

// Config holds the HTTP server configuration.
// It consolidates settings from various sources into a single structure
// for easy server initialization.
type Config struct {
	Listen string // host:port to bind to

	// Timeouts
	ReadTimeout     time.Duration // Maximum duration for reading request, uploads included
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum time to wait for next request
	ShutdownTimeout time.Duration // Maximum time to wait for graceful shutdown

	// Limits
	BodyLimit string // Maximum request body size (e.g., "512M")

	CORS conf.CORSSettings

	// Metrics endpoint, mounted outside the API prefix
	MetricsEnabled bool
	MetricsPath    string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:          DefaultListen,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		BodyLimit:       DefaultBodyLimit,
		CORS:            conf.CORSSettings{Origins: []string{"*"}, Methods: []string{"*"}, Headers: []string{"*"}},
		MetricsPath:     DefaultMetricsPath,
	}
}

// ConfigFromSettings creates a Config from the application settings.
// Zero values in settings keep the defaults.
func ConfigFromSettings(settings *conf.Settings) *Config {
	cfg := DefaultConfig()

	if settings.API.Listen != "" {
		cfg.Listen = settings.API.Listen
	}
	if settings.API.BodyLimit != "" {
		cfg.BodyLimit = settings.API.BodyLimit
	}
	if settings.API.ReadTimeout > 0 {
		cfg.ReadTimeout = settings.API.ReadTimeout
	}
	if settings.API.WriteTimeout > 0 {
		cfg.WriteTimeout = settings.API.WriteTimeout
	}
	if settings.API.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = settings.API.ShutdownTimeout
	}

	cfg.CORS = settings.CORS
	cfg.MetricsEnabled = settings.Metrics.Enabled
	if settings.Metrics.Path != "" {
		cfg.MetricsPath = settings.Metrics.Path
	}

	return cfg
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	// Validate timeouts
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

// String returns a human-readable representation of the config.
func (c *Config) String() string {
	metrics := "disabled"
	if c.MetricsEnabled {
		metrics = c.MetricsPath
	}
	return fmt.Sprintf("Server Config: listen=%s, body_limit=%s, metrics=%s",
		c.Listen, c.BodyLimit, metrics)
}
