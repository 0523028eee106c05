package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

const headerKey = "X-Api-Key"

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     *string
		wantStatus int
		wantCalled bool
	}{
		{"matching secret", ptr("s3cret"), http.StatusOK, true},
		{"missing header", nil, http.StatusForbidden, false},
		{"empty header", ptr(""), http.StatusForbidden, false},
		{"wrong secret", ptr("s3cret2"), http.StatusForbidden, false},
		{"prefix of secret", ptr("s3c"), http.StatusForbidden, false},
		{"case differs", ptr("S3CRET"), http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mw := NewMiddleware(headerKey, "s3cret", nil, logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/video", http.NoBody)
			if tt.header != nil {
				req.Header.Set(headerKey, *tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			err := mw.Authenticate(func(c echo.Context) error {
				called = true
				assert.Equal(t, true, c.Get(CtxKeyIsAuthenticated))
				assert.Equal(t, AuthMethodSharedSecret, c.Get(CtxKeyAuthMethod))
				return c.NoContent(http.StatusOK)
			})(c)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"detail":"Forbidden"}`, rec.Body.String())
			}
		})
	}
}

func TestAuthenticate_RecordsOutcome(t *testing.T) {
	t.Parallel()
	registry := prometheus.NewRegistry()
	m, err := metrics.NewHTTPMetrics(registry)
	require.NoError(t, err)
	mw := NewMiddleware(headerKey, "s3cret", m, logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil))

	e := echo.New()
	for _, value := range []string{"s3cret", "", "nope", "nope"} {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		if value != "" {
			req.Header.Set(headerKey, value)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		require.NoError(t, mw.Authenticate(func(c echo.Context) error { return nil })(c))
	}

	expected := `
# HELP http_auth_operations_total Total number of shared-secret header checks
# TYPE http_auth_operations_total counter
http_auth_operations_total{status="mismatch"} 2
http_auth_operations_total{status="missing"} 1
http_auth_operations_total{status="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "http_auth_operations_total"))
}

func ptr(s string) *string { return &s }
