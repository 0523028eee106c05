// Package auth implements the shared-secret header gate in front of the API.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

// Context keys for authentication values stored in echo.Context.
// These keys are prefixed with "auth:" to prevent collisions with other packages.
const (
	// CtxKeyIsAuthenticated indicates whether the request passed the gate.
	CtxKeyIsAuthenticated = "auth:isAuthenticated"
	// CtxKeyAuthMethod indicates the authentication method used.
	CtxKeyAuthMethod = "auth:authMethod"
)

// AuthMethodSharedSecret is the only method the gate knows
const AuthMethodSharedSecret = "shared_secret"

// Outcome labels recorded in metrics
const (
	outcomeSuccess  = "success"
	outcomeMissing  = "missing"
	outcomeMismatch = "mismatch"
)

// ForbiddenResponse is the body returned for rejected requests
type ForbiddenResponse struct {
	Detail string `json:"detail"`
}

// Middleware admits requests whose configured header equals the secret
type Middleware struct {
	headerKey string
	secret    []byte
	metrics   *metrics.HTTPMetrics
	log       logger.Logger
}

// NewMiddleware creates the gate. m may be nil.
func NewMiddleware(headerKey, secret string, m *metrics.HTTPMetrics, log logger.Logger) *Middleware {
	return &Middleware{
		headerKey: headerKey,
		secret:    []byte(secret),
		metrics:   m,
		log:       log,
	}
}

// Authenticate rejects the request with 403 before any handler runs unless
// the header matches byte for byte
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		value := c.Request().Header.Get(m.headerKey)

		outcome := outcomeSuccess
		switch {
		case value == "" || len(m.secret) == 0:
			outcome = outcomeMissing
		case subtle.ConstantTimeCompare([]byte(value), m.secret) != 1:
			outcome = outcomeMismatch
		}
		m.record(outcome)

		if outcome != outcomeSuccess {
			m.log.Info("request rejected by shared secret gate",
				logger.String("reason", outcome),
				logger.String("method", c.Request().Method),
				logger.String("path", c.Request().URL.Path),
				logger.String("ip", c.RealIP()))
			return c.JSON(http.StatusForbidden, ForbiddenResponse{Detail: "Forbidden"})
		}

		c.Set(CtxKeyIsAuthenticated, true)
		c.Set(CtxKeyAuthMethod, AuthMethodSharedSecret)
		return next(c)
	}
}

func (m *Middleware) record(outcome string) {
	if m.metrics != nil {
		m.metrics.RecordAuthOperation(outcome)
	}
}
