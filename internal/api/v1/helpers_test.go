package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore"
	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
	"github.com/tphakala/video-enrichment-api/internal/videoprobe"
)

const (
	prefix    = "/video-enrichment-api/v1"
	headerKey = "X-Api-Key"
	secret    = "s3cret"
)

// stubProber reports a fixed 10 second clip
type stubProber struct{}

func (stubProber) Probe(context.Context, string) (videoprobe.Info, error) {
	return videoprobe.Info{Frames: 250, FPS: 25}, nil
}

func (stubProber) Thumbnail(context.Context, string) ([]byte, error) {
	return []byte("jpeg-bytes"), nil
}

type testAPI struct {
	e     *echo.Echo
	db    *gorm.DB
	store objectstore.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil)

	mgr, err := datastore.NewSQLiteManager(":memory:", datastore.Options{Logger: log, Actor: "api-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })
	require.NoError(t, mgr.Initialize(context.Background()))

	store := objectstore.NewFSStore(afero.NewMemMapFs(), conf.StorageMemory)
	scratch := afero.NewMemMapFs()
	require.NoError(t, scratch.MkdirAll("/scratch", 0o755))

	s3 := conf.S3Settings{Bucket: "media", GalleryPath: "gallery", VideoPath: "videos"}
	managers := domain.New(domain.Deps{
		Name:       "video-enrichment-api",
		Repos:      domain.NewRepositories(mgr.DB()),
		Store:      store,
		Prober:     stubProber{},
		DB:         mgr,
		Scratch:    scratch,
		ScratchDir: "/scratch",
		Paths:      domain.PathsFromSettings(&s3),
		Log:        log,
	})

	settings := &conf.Settings{
		Main: conf.MainSettings{Name: "video-enrichment-api"},
		API:  conf.APISettings{Prefix: prefix},
		Auth: conf.AuthSettings{HeaderKey: headerKey, SecretKey: secret},
		S3:   s3,
	}

	e := echo.New()
	c, err := New(e, managers, settings, WithLogger(log))
	require.NoError(t, err)
	e.HTTPErrorHandler = c.ErrorHandler

	return &testAPI{e: e, db: mgr.DB(), store: store}
}

// do sends an authenticated request and returns the recorder
func (a *testAPI) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = http.NoBody
	}
	req := httptest.NewRequest(method, prefix+path, body)
	req.Header.Set(headerKey, secret)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, method, path, strings.NewReader(body), echo.MIMEApplicationJSON)
}

// formFile is a file part of a multipart request
type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// multipartBody encodes fields and an optional file
func multipartBody(t *testing.T, fields map[string]string, file *formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// createTaxonomy creates a taxonomy through the API
func (a *testAPI) createTaxonomy(t *testing.T, label string) map[string]any {
	t.Helper()
	rec := a.doJSON(t, http.MethodPost, "/taxonomy", `{"label":"`+label+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)
}

// createEntity creates an enabled entity through the API
func (a *testAPI) createEntity(t *testing.T, taxonomyID int64) map[string]any {
	t.Helper()
	body, err := json.Marshal(map[string]any{"taxonomy_id": taxonomyID, "alias": []string{"home"}})
	require.NoError(t, err)
	rec := a.doJSON(t, http.MethodPost, "/entity", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)
}

// id extracts a numeric id from a decoded JSON object
func id(obj map[string]any) int64 {
	return int64(obj["id"].(float64))
}
