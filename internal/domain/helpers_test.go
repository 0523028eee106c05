package domain

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore"
	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
	"github.com/tphakala/video-enrichment-api/internal/videoprobe"
)

const scratchDir = "/scratch"

// recordingStore wraps a memory store, counting deletes and optionally
// failing uploads.
type recordingStore struct {
	objectstore.Store

	mu        sync.Mutex
	deletes   []objectstore.Path
	uploadErr error
}

func (s *recordingStore) Upload(ctx context.Context, p objectstore.Path, data []byte, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	return s.Store.Upload(ctx, p, data, contentType)
}

func (s *recordingStore) Delete(ctx context.Context, p objectstore.Path) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, p)
	s.mu.Unlock()
	return s.Store.Delete(ctx, p)
}

func (s *recordingStore) deleted() []objectstore.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]objectstore.Path(nil), s.deletes...)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Probe(ctx context.Context, path string) (videoprobe.Info, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(videoprobe.Info), args.Error(1)
}

func (m *mockProber) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type testEnv struct {
	managers *Managers
	db       *gorm.DB
	store    *recordingStore
	prober   *mockProber
	scratch  afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil)

	mgr, err := datastore.NewSQLiteManager(":memory:", datastore.Options{Logger: log, Actor: "domain-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })
	require.NoError(t, mgr.Initialize(context.Background()))

	store := &recordingStore{Store: objectstore.NewFSStore(afero.NewMemMapFs(), conf.StorageMemory)}
	prober := &mockProber{}
	scratch := afero.NewMemMapFs()
	require.NoError(t, scratch.MkdirAll(scratchDir, 0o755))

	managers := New(Deps{
		Name:       "video-enrichment-api",
		Repos:      NewRepositories(mgr.DB()),
		Store:      store,
		Prober:     prober,
		DB:         mgr,
		Scratch:    scratch,
		ScratchDir: scratchDir,
		Paths: PathsFromSettings(&conf.S3Settings{
			Bucket:      "media",
			GalleryPath: "gallery",
			VideoPath:   "videos",
		}),
		Log: log,
	})

	return &testEnv{managers: managers, db: mgr.DB(), store: store, prober: prober, scratch: scratch}
}

func (e *testEnv) seedTaxonomy(t *testing.T, label string) *entities.Taxonomy {
	t.Helper()
	tax := &entities.Taxonomy{UUID: uuid.NewString(), Label: label}
	require.NoError(t, e.db.Create(tax).Error)
	return tax
}

func (e *testEnv) seedEntity(t *testing.T, taxonomyID int64, enabled bool) *entities.Entity {
	t.Helper()
	ent := &entities.Entity{UUID: uuid.NewString(), Alias: []string{"alias"}, Enabled: enabled, TaxonomyID: taxonomyID}
	require.NoError(t, e.db.Create(ent).Error)
	return ent
}

// seedVideo creates a video row and stores its object
func (e *testEnv) seedVideo(t *testing.T, ext string) *entities.Video {
	t.Helper()
	id := uuid.NewString()
	v := &entities.Video{
		UUID:      id,
		Code:      "code-" + id[:8],
		Path:      fmt.Sprintf("media/videos/%s/clip%s", id, ext),
		Extension: ext,
		Frames:    250,
		Length:    10,
		FrameRate: 25,
	}
	require.NoError(t, e.db.Create(v).Error)
	require.NoError(t, e.store.Upload(context.Background(), objectstore.ParsePath(v.Path), []byte("video-bytes"), "video/mp4"))
	return v
}

func (e *testEnv) seedSegment(t *testing.T, videoID, taxonomyID, entityID, start int64) *entities.SegmentDetection {
	t.Helper()
	s := &entities.SegmentDetection{
		UUID:       uuid.NewString(),
		VideoID:    videoID,
		StartFrame: start,
		EndFrame:   start + 25,
		TaxonomyID: taxonomyID,
		EntityID:   entityID,
	}
	require.NoError(t, e.db.Create(s).Error)
	return s
}

// seedGallery creates a gallery row and, when withObject is set, its image
func (e *testEnv) seedGallery(t *testing.T, entityID int64, name string, enabled, withObject bool) *entities.EntityMediaGallery {
	t.Helper()
	g := &entities.EntityMediaGallery{
		UUID:     uuid.NewString(),
		EntityID: entityID,
		Path:     "media/gallery/seed/" + name,
		Enabled:  enabled,
	}
	require.NoError(t, e.db.Create(g).Error)
	if withObject {
		require.NoError(t, e.store.Upload(context.Background(), objectstore.ParsePath(g.Path), []byte("img-"+name), "image/jpeg"))
	}
	return g
}

// assertCategory checks the error category and the client-facing message
func assertCategory(t *testing.T, err error, category errors.ErrorCategory, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, category), "want %s, got %s (%v)", category, errors.CategoryOf(err), err)
	if msg != "" {
		assert.Equal(t, msg, err.Error())
	}
}
