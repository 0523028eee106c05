package repository

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore"
	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

const testActor = "repository-test"

// setupTestDB opens a migrated in-memory database closed on test cleanup.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	mgr, err := datastore.NewSQLiteManager(":memory:", datastore.Options{
		Logger: logger.NewSlogLogger(io.Discard, logger.LogLevelInfo, nil),
		Actor:  testActor,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })
	require.NoError(t, mgr.Initialize(context.Background()))
	return mgr.DB()
}

func seedTaxonomy(t *testing.T, db *gorm.DB, label string) *entities.Taxonomy {
	t.Helper()
	tax := &entities.Taxonomy{UUID: uuid.NewString(), Label: label}
	require.NoError(t, db.Create(tax).Error)
	return tax
}

func seedEntity(t *testing.T, db *gorm.DB, taxonomyID int64, enabled bool, alias ...string) *entities.Entity {
	t.Helper()
	ent := &entities.Entity{UUID: uuid.NewString(), Alias: alias, Enabled: enabled, TaxonomyID: taxonomyID}
	require.NoError(t, db.Create(ent).Error)
	return ent
}

func seedVideo(t *testing.T, db *gorm.DB, code string) *entities.Video {
	t.Helper()
	id := uuid.NewString()
	v := &entities.Video{
		UUID:      id,
		Code:      code,
		Path:      fmt.Sprintf("media/videos/%s/%s.mp4", id, code),
		Extension: ".mp4",
		Frames:    300,
		Length:    10,
		FrameRate: 30,
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

func seedSegment(t *testing.T, db *gorm.DB, videoID, taxonomyID, entityID, start int64) *entities.SegmentDetection {
	t.Helper()
	s := &entities.SegmentDetection{
		UUID:       uuid.NewString(),
		VideoID:    videoID,
		StartFrame: start,
		EndFrame:   start + 50,
		TaxonomyID: taxonomyID,
		EntityID:   entityID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}
