package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
)

func TestEntityManager_CreateAndList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	ents := env.managers.Entities

	tax := env.seedTaxonomy(t, "team")
	other := env.seedTaxonomy(t, "player")

	created, err := ents.Create(ctx, &CreateEntityRequest{Alias: []string{"FCB", "Barça"}, TaxonomyID: tax.ID})
	require.NoError(t, err)
	assert.True(t, created.Enabled)
	assert.Equal(t, []string{"FCB", "Barça"}, []string(created.Alias))

	disabled := false
	_, err = ents.Create(ctx, &CreateEntityRequest{TaxonomyID: tax.ID, Enabled: &disabled})
	require.NoError(t, err)
	env.seedEntity(t, other.ID, true)

	_, err = ents.Create(ctx, &CreateEntityRequest{TaxonomyID: 12345})
	assertCategory(t, err, errors.CategoryNotFound, "Taxonomy with id 12345 not found")

	all, err := ents.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	enabled, err := ents.ListEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	byTax, err := ents.ListEnabledByTaxonomy(ctx, tax.ID)
	require.NoError(t, err)
	require.Len(t, byTax, 1)
	assert.Equal(t, created.UUID, byTax[0].UUID)

	_, err = ents.ListEnabledByTaxonomy(ctx, 555)
	assertCategory(t, err, errors.CategoryNotFound, "Taxonomy with id 555 not found")

	got, err := ents.GetByUUID(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, []string{"FCB", "Barça"}, []string(got.Alias))

	_, err = ents.GetByID(ctx, 0)
	assertCategory(t, err, errors.CategoryNotFound, "Entity 0 not found")
}

func TestEntityManager_UpdateByUUID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	ents := env.managers.Entities

	tax := env.seedTaxonomy(t, "team")
	moved := env.seedTaxonomy(t, "club")
	ent := env.seedEntity(t, tax.ID, true)

	alias := []string{"new"}
	off := false
	got, err := ents.UpdateByUUID(ctx, ent.UUID, &UpdateEntityRequest{Alias: &alias, Enabled: &off, TaxonomyID: &moved.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, []string(got.Alias))
	assert.False(t, got.Enabled)
	assert.Equal(t, moved.ID, got.TaxonomyID)

	missing := int64(31337)
	_, err = ents.UpdateByUUID(ctx, ent.UUID, &UpdateEntityRequest{TaxonomyID: &missing})
	assertCategory(t, err, errors.CategoryNotFound, "Taxonomy with id 31337 not found")

	_, err = ents.UpdateByUUID(ctx, "ghost", &UpdateEntityRequest{Enabled: &off})
	assertCategory(t, err, errors.CategoryNotFound, "Entity ghost not found")
}

func TestEntityManager_DeleteCascade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		del      func(m *EntityManager, e *entities.Entity) error
		softGone bool
	}{
		{"by uuid", func(m *EntityManager, e *entities.Entity) error { return m.DeleteByUUID(ctx, e.UUID) }, false},
		{"by id", func(m *EntityManager, e *entities.Entity) error { return m.DeleteByID(ctx, e.ID) }, false},
		{"soft", func(m *EntityManager, e *entities.Entity) error { return m.SoftDeleteByUUID(ctx, e.UUID) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			tax := env.seedTaxonomy(t, "team")
			ent := env.seedEntity(t, tax.ID, true)
			keep := env.seedEntity(t, tax.ID, true)

			g1 := env.seedGallery(t, ent.ID, "a.jpg", true, true)
			g2 := env.seedGallery(t, ent.ID, "b.jpg", false, true)
			g3 := env.seedGallery(t, ent.ID, "c.jpg", true, false)
			other := env.seedGallery(t, keep.ID, "d.jpg", true, true)

			require.NoError(t, tt.del(env.managers.Entities, ent))

			deleted := env.store.deleted()
			require.Len(t, deleted, 3)
			paths := []string{deleted[0].String(), deleted[1].String(), deleted[2].String()}
			assert.ElementsMatch(t, []string{g1.Path, g2.Path, g3.Path}, paths)
			assert.True(t, env.store.Exists(ctx, objectstore.ParsePath(other.Path)))

			_, err := env.managers.Entities.GetByUUID(ctx, ent.UUID)
			assertCategory(t, err, errors.CategoryNotFound, "")

			var galleries int64
			require.NoError(t, env.db.Model(&entities.EntityMediaGallery{}).Where("entity_id = ?", ent.ID).Count(&galleries).Error)
			if tt.softGone {
				assert.Equal(t, int64(3), galleries)
			} else {
				assert.Zero(t, galleries)
			}
		})
	}

	t.Run("soft-deleted gallery objects", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		tax := env.seedTaxonomy(t, "team")
		ent := env.seedEntity(t, tax.ID, true)

		g1 := env.seedGallery(t, ent.ID, "a.jpg", true, true)
		g2 := env.seedGallery(t, ent.ID, "b.jpg", true, true)
		require.NoError(t, env.managers.Galleries.SoftDeleteByUUID(ctx, g2.UUID))
		require.True(t, env.store.Exists(ctx, objectstore.ParsePath(g2.Path)))

		require.NoError(t, env.managers.Entities.DeleteByUUID(ctx, ent.UUID))

		var paths []string
		for _, p := range env.store.deleted() {
			paths = append(paths, p.String())
		}
		assert.ElementsMatch(t, []string{g1.Path, g2.Path}, paths)
		assert.False(t, env.store.Exists(ctx, objectstore.ParsePath(g2.Path)))

		var rows int64
		require.NoError(t, env.db.Unscoped().Model(&entities.EntityMediaGallery{}).Where("entity_id = ?", ent.ID).Count(&rows).Error)
		assert.Zero(t, rows)
	})

	t.Run("unknown uuid", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		err := env.managers.Entities.SoftDeleteByUUID(ctx, "ghost")
		assertCategory(t, err, errors.CategoryNotFound, "Entity ghost not found")
		assert.Empty(t, env.store.deleted())
	})
}
