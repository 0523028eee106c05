package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

func TestGalleryRepository_HasEmbeddingDerived(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGalleryRepository(db)
	ctx := context.Background()
	tax := seedTaxonomy(t, db, "Clubs")
	ent := seedEntity(t, db, tax.ID, true, "Madrid")

	plain := &entities.EntityMediaGallery{UUID: "9a1e0000-0000-4000-8000-000000000001", EntityID: ent.ID, Path: "media/gallery/a.jpg", Enabled: true}
	embedded := &entities.EntityMediaGallery{
		UUID: "9a1e0000-0000-4000-8000-000000000002", EntityID: ent.ID, Path: "media/gallery/b.jpg", Enabled: true,
		Embedding: []float32{0.1, 0.2, 0.3},
	}
	require.NoError(t, repo.Create(ctx, plain))
	require.NoError(t, repo.Create(ctx, embedded))
	assert.False(t, plain.HasEmbedding)
	assert.True(t, embedded.HasEmbedding)

	got, err := repo.GetByUUID(ctx, plain.UUID)
	require.NoError(t, err)
	assert.False(t, got.HasEmbedding)
	assert.Nil(t, got.Embedding)

	got, err = repo.GetByUUID(ctx, embedded.UUID)
	require.NoError(t, err)
	assert.True(t, got.HasEmbedding)
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3}, got.Embedding, 1e-6)
}

func TestGalleryRepository_EnabledAndEntityFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGalleryRepository(db)
	ctx := context.Background()
	tax := seedTaxonomy(t, db, "Clubs")
	a := seedEntity(t, db, tax.ID, true, "Madrid")
	b := seedEntity(t, db, tax.ID, true, "Barcelona")

	rows := []*entities.EntityMediaGallery{
		{UUID: "9a1e0000-0000-4000-8000-00000000000a", EntityID: a.ID, Path: "media/gallery/a1.jpg", Enabled: true},
		{UUID: "9a1e0000-0000-4000-8000-00000000000b", EntityID: a.ID, Path: "media/gallery/a2.jpg", Enabled: false},
		{UUID: "9a1e0000-0000-4000-8000-00000000000c", EntityID: b.ID, Path: "media/gallery/b1.jpg", Enabled: true},
	}
	for _, r := range rows {
		require.NoError(t, repo.Create(ctx, r))
	}

	enabled, err := repo.GetAllEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	byEntity, err := repo.GetEnabledByEntity(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byEntity, 1)
	assert.Equal(t, "media/gallery/a1.jpg", byEntity[0].Path)

	allOfA, err := repo.GetAllByEntity(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, allOfA, 2)

	require.NoError(t, repo.SoftDelete(ctx, rows[0].ID))
	allOfA, err = repo.GetAllByEntity(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, allOfA, 2)
	assert.Equal(t, rows[0].UUID, allOfA[0].UUID)
	assert.True(t, allOfA[0].DeletedAt.Valid)
}

func TestGalleryRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGalleryRepository(db)
	ctx := context.Background()
	tax := seedTaxonomy(t, db, "Clubs")
	ent := seedEntity(t, db, tax.ID, true, "Madrid")
	g := &entities.EntityMediaGallery{UUID: "9a1e0000-0000-4000-8000-000000000003", EntityID: ent.ID, Path: "media/gallery/a.jpg", Enabled: true}
	require.NoError(t, repo.Create(ctx, g))

	require.NoError(t, repo.Update(ctx, g.ID, map[string]any{"enabled": false, "path": "media/gallery/z.jpg"}))
	got, err := repo.GetByUUID(ctx, g.UUID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Equal(t, "media/gallery/z.jpg", got.Path)

	require.NoError(t, repo.SoftDelete(ctx, g.ID))
	_, err = repo.GetByUUID(ctx, g.UUID)
	require.ErrorIs(t, err, ErrGalleryNotFound)

	require.NoError(t, repo.Delete(ctx, g.ID), "hard delete still reaches soft-deleted rows")
	require.ErrorIs(t, repo.Delete(ctx, g.ID), ErrGalleryNotFound)
}
