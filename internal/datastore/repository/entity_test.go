package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

func TestEntityRepository_AliasRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)
	tax := seedTaxonomy(t, db, "Clubs")
	ent := seedEntity(t, db, tax.ID, true, "Barcelona", "Barça")

	got, err := repo.GetByUUID(context.Background(), ent.UUID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Barcelona", "Barça"}, []string(got.Alias))
}

func TestEntityRepository_EnabledFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)
	ctx := context.Background()

	clubs := seedTaxonomy(t, db, "Clubs")
	people := seedTaxonomy(t, db, "People")
	madrid := seedEntity(t, db, clubs.ID, true, "Real Madrid")
	seedEntity(t, db, clubs.ID, false, "Manchester United")
	seedEntity(t, db, people.ID, true, "Presenter")

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	enabled, err := repo.GetAllEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	byTax, err := repo.GetEnabledByTaxonomy(ctx, clubs.ID)
	require.NoError(t, err)
	require.Len(t, byTax, 1)
	assert.Equal(t, madrid.ID, byTax[0].ID)
}

func TestEntityRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)
	ctx := context.Background()
	tax := seedTaxonomy(t, db, "Clubs")
	ent := seedEntity(t, db, tax.ID, true, "Madrid")

	require.NoError(t, repo.Update(ctx, ent.ID, map[string]any{
		"alias":   datatypes.JSONSlice[string]{"Real Madrid CF"},
		"enabled": false,
	}))

	got, err := repo.GetByID(ctx, ent.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Real Madrid CF"}, []string(got.Alias))
	assert.False(t, got.Enabled)
}

func TestEntityRepository_SoftDeleteHidesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)
	ctx := context.Background()
	tax := seedTaxonomy(t, db, "Clubs")
	ent := seedEntity(t, db, tax.ID, true, "Madrid")

	require.NoError(t, repo.SoftDelete(ctx, ent.ID))

	_, err := repo.GetByUUID(ctx, ent.UUID)
	require.ErrorIs(t, err, ErrEntityNotFound)
	exists, err := repo.Exists(ctx, ent.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	var raw int64
	require.NoError(t, db.Unscoped().Model(&entities.Entity{}).Where("id = ?", ent.ID).Count(&raw).Error)
	assert.Equal(t, int64(1), raw)

	require.ErrorIs(t, repo.SoftDelete(ctx, ent.ID), ErrEntityNotFound)
}

func TestEntityRepository_DeleteCascadesGalleries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntityRepository(db)
	ctx := context.Background()
	tax := seedTaxonomy(t, db, "Clubs")
	ent := seedEntity(t, db, tax.ID, true, "Madrid")
	require.NoError(t, db.Create(&entities.EntityMediaGallery{
		UUID: "9a1e0000-0000-4000-8000-000000000001", EntityID: ent.ID, Path: "media/gallery/a.jpg", Enabled: true,
	}).Error)

	require.NoError(t, repo.Delete(ctx, ent.ID))

	var galleries int64
	require.NoError(t, db.Unscoped().Model(&entities.EntityMediaGallery{}).Count(&galleries).Error)
	assert.Zero(t, galleries)
	require.ErrorIs(t, repo.Delete(ctx, ent.ID), ErrEntityNotFound)
}
