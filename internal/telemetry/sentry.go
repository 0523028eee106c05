// Package telemetry wires Sentry error reporting into the errors package.
package telemetry

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tphakala/video-enrichment-api/internal/buildinfo"
	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

const flushTimeout = 2 * time.Second

var sentryInitialized atomic.Bool

// Option customizes Sentry initialization
type Option func(*sentry.ClientOptions)

// WithTransport replaces the HTTP transport, used by tests
func WithTransport(t sentry.Transport) Option {
	return func(o *sentry.ClientOptions) {
		o.Transport = t
	}
}

// Init configures Sentry from settings and installs the error reporter.
// It is a no-op when telemetry is disabled.
func Init(settings *conf.Settings, log logger.Logger, opts ...Option) error {
	if !settings.Telemetry.Enabled {
		errors.SetTelemetryReporter(nil)
		return nil
	}

	options := sentry.ClientOptions{
		Dsn:              settings.Telemetry.DSN,
		SampleRate:       1.0,
		AttachStacktrace: false,
		Environment:      settings.Main.Environment,
		ServerName:       "",
		Release:          fmt.Sprintf("%s@%s", settings.Main.Name, buildinfo.Version()),
		BeforeSend:       beforeSend,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if err := sentry.Init(options); err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	sentryInitialized.Store(true)

	errors.SetTelemetryReporter(errors.NewSentryReporter(true))

	if log != nil {
		log.Info("sentry telemetry enabled", logger.String("environment", settings.Main.Environment))
	}
	return nil
}

// beforeSend strips request data and credentials before events leave the process
func beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.ServerName = ""
	event.Request = nil
	event.User = sentry.User{}
	event.Message = logger.RedactSensitiveData(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = logger.RedactSensitiveData(event.Exception[i].Value)
	}
	return event
}

// Flush waits for queued events, called on shutdown
func Flush() {
	if sentryInitialized.Load() {
		sentry.Flush(flushTimeout)
	}
}
