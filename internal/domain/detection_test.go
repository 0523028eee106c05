package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/errors"
)

func TestSegmentDetectionManager(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	segments := env.managers.Segments

	team := env.seedTaxonomy(t, "team")
	player := env.seedTaxonomy(t, "player")
	ent := env.seedEntity(t, team.ID, true)
	v := env.seedVideo(t, ".mp4")
	env.seedSegment(t, v.ID, team.ID, ent.ID, 100)
	env.seedSegment(t, v.ID, team.ID, ent.ID, 0)
	env.seedSegment(t, v.ID, player.ID, ent.ID, 50)

	list, err := segments.ListByVideo(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(0), list[0].StartFrame)

	list, err = segments.ListByVideoAndTaxonomy(ctx, v.ID, team.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = segments.ListByVideo(ctx, 999)
	assertCategory(t, err, errors.CategoryNotFound, "Video 999 not found")

	// video is checked before taxonomy
	_, err = segments.ListByVideoAndTaxonomy(ctx, 999, 888)
	assertCategory(t, err, errors.CategoryNotFound, "Video 999 not found")

	_, err = segments.ListByVideoAndTaxonomy(ctx, v.ID, 888)
	assertCategory(t, err, errors.CategoryNotFound, "Taxonomy 888 not found")
}

func TestDetectionManager(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	detections := env.managers.Detections

	tax := env.seedTaxonomy(t, "team")
	ent := env.seedEntity(t, tax.ID, true)
	v := env.seedVideo(t, ".mp4")
	seg := env.seedSegment(t, v.ID, tax.ID, ent.ID, 0)
	for _, frame := range []int64{7, 3} {
		d := &entities.Detection{
			UUID:               uuid.NewString(),
			VideoID:            v.ID,
			Frame:              frame,
			SegmentDetectionID: seg.ID,
			DetectionScore:     0.9,
			EntityScore:        0.8,
			BBoxXMin:           0.1,
			BBoxYMin:           0.1,
			BBoxXMax:           0.5,
			BBoxYMax:           0.5,
		}
		require.NoError(t, env.db.Create(d).Error)
	}

	list, err := detections.ListByVideo(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].Frame)

	list, err = detections.ListBySegmentDetection(ctx, seg.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = detections.ListByVideo(ctx, 42)
	assertCategory(t, err, errors.CategoryNotFound, "Video 42 not found")

	_, err = detections.ListBySegmentDetection(ctx, 43)
	assertCategory(t, err, errors.CategoryNotFound, "Segment detection 43 not found")
}

func TestHealthManager_Status(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	status := env.managers.Health.Status(ctx)
	assert.Equal(t, HealthStatus{Name: "video-enrichment-api", Status: StatusUp}, status)

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status = env.managers.Health.Status(ctx)
	assert.Equal(t, StatusDown, status.Status)
}
