package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore"
	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
	"github.com/tphakala/video-enrichment-api/internal/observability"
	"github.com/tphakala/video-enrichment-api/internal/videoprobe"
)

const testPrefix = "/video-enrichment-api/v1"

func discardLogger() logger.Logger {
	return logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil)
}

func testSettings() *conf.Settings {
	return &conf.Settings{
		Main:    conf.MainSettings{Name: "video-enrichment-api"},
		API:     conf.APISettings{Prefix: testPrefix, Listen: "127.0.0.1:0", ShutdownTimeout: 5 * time.Second},
		Auth:    conf.AuthSettings{HeaderKey: "X-Api-Key", SecretKey: "s3cret"},
		Metrics: conf.MetricsSettings{Enabled: true},
	}
}

// newManagers wires the domain over an in-memory database. The returned
// func closes the database.
func newManagers(t *testing.T) (*domain.Managers, func()) {
	t.Helper()
	log := discardLogger()

	mgr, err := datastore.NewSQLiteManager(":memory:", datastore.Options{Logger: log, Actor: "server-test"})
	require.NoError(t, err)
	require.NoError(t, mgr.Initialize(context.Background()))

	managers := domain.New(domain.Deps{
		Name:   "video-enrichment-api",
		Repos:  domain.NewRepositories(mgr.DB()),
		Store:  objectstore.NewFSStore(afero.NewMemMapFs(), conf.StorageMemory),
		Prober: videoprobe.NewFFmpegProber("ffprobe", "ffmpeg", time.Second, log),
		DB:     mgr,
		Log:    log,
	})
	return managers, func() { _ = mgr.Close() }
}

func TestConfigFromSettings(t *testing.T) {
	t.Parallel()

	cfg := ConfigFromSettings(&conf.Settings{})
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, DefaultBodyLimit, cfg.BodyLimit)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultMetricsPath, cfg.MetricsPath)
	assert.False(t, cfg.MetricsEnabled)
	require.NoError(t, cfg.Validate())

	cfg = ConfigFromSettings(&conf.Settings{
		API:     conf.APISettings{Listen: ":9000", BodyLimit: "1M", ReadTimeout: time.Second},
		Metrics: conf.MetricsSettings{Enabled: true, Path: "/prom"},
	})
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "1M", cfg.BodyLimit)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
	assert.Equal(t, "/prom", cfg.MetricsPath)
	assert.Contains(t, cfg.String(), "metrics=/prom")

	cfg.Listen = ""
	require.Error(t, cfg.Validate())
}

func TestServerRoutes(t *testing.T) {
	t.Parallel()
	managers, closeDB := newManagers(t)
	t.Cleanup(closeDB)

	m, err := observability.NewMetrics()
	require.NoError(t, err)

	s, err := New(testSettings(), managers, WithLogger(discardLogger()), WithMetrics(m))
	require.NoError(t, err)
	require.NotNil(t, s.APIController())

	// healthcheck is open, everything else behind the gate
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, testPrefix+"/healthcheck", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, testPrefix+"/video", http.NoBody))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, testPrefix+"/taxonomy/missing", http.NoBody))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, testPrefix+"/taxonomy/missing", http.NoBody)
	req.Header.Set("X-Api-Key", "s3cret")
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the metrics endpoint lives outside the prefix and sees route templates
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="`+testPrefix+`/taxonomy/:uuid",status_code="404"} 1`)

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTP, "http_request_errors_total"))
}

func TestServerCORSPreflight(t *testing.T) {
	t.Parallel()
	managers, closeDB := newManagers(t)
	t.Cleanup(closeDB)

	settings := testSettings()
	settings.CORS = conf.CORSSettings{Origins: []string{"https://app.example"}, Methods: []string{"*"}, Headers: []string{"*"}, AllowCredentials: true}
	s, err := New(settings, managers, WithLogger(discardLogger()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, testPrefix+"/video", http.NoBody)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Api-Key")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "X-Api-Key", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestServerLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("testing.(*T).Run"),
		goleak.IgnoreTopFunction("runtime.gopark"),
	)

	managers, closeDB := newManagers(t)
	defer closeDB()

	s, err := New(testSettings(), managers, WithLogger(discardLogger()))
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return s.Addr() != nil }, 5*time.Second, 10*time.Millisecond)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + s.Addr().String() + testPrefix + "/healthcheck")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `"status":"UP"`), string(body))

	require.NoError(t, s.Shutdown())
}
