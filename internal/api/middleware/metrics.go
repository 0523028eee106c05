package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping
// label cardinality bounded
const unmatchedRoute = "unmatched"

// NewHTTPMetrics records request count, latency and response size per route
// template
func NewHTTPMetrics(m *metrics.HTTPMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the response so the status is known
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method
			status := c.Response().Status

			m.RecordHTTPRequest(method, route, status, time.Since(start).Seconds())
			m.RecordHTTPResponseSize(method, route, c.Response().Size)
			return nil
		}
	}
}
