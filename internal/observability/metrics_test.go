package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesFamilies(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	m.HTTP.RecordHTTPRequest(http.MethodGet, "/video-enrichment-api/v1/healthcheck", http.StatusOK, 0.001)
	m.ObjectStore.RecordOperation("memory", "upload", "success", 0.001)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), "objectstore_operations_total")
	assert.Contains(t, string(body), "go_goroutines")
}
