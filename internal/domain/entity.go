package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/datastore/repository"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
)

// EntityManager handles entities and the cleanup of their gallery objects
type EntityManager struct {
	entities   repository.EntityRepository
	taxonomies repository.TaxonomyRepository
	galleries  repository.GalleryRepository
	store      objectstore.Store
	log        logger.Logger
}

// List returns every entity
func (m *EntityManager) List(ctx context.Context) ([]*entities.Entity, error) {
	list, err := m.entities.GetAll(ctx)
	if err != nil {
		return nil, dbError(err, "Entity")
	}
	return list, nil
}

// ListEnabled returns the enabled entities
func (m *EntityManager) ListEnabled(ctx context.Context) ([]*entities.Entity, error) {
	list, err := m.entities.GetAllEnabled(ctx)
	if err != nil {
		return nil, dbError(err, "Entity")
	}
	return list, nil
}

// GetByID returns one entity
func (m *EntityManager) GetByID(ctx context.Context, id int64) (*entities.Entity, error) {
	entity, err := m.entities.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrEntityNotFound, "Entity", "Entity %d not found", id)
	}
	return entity, nil
}

// GetByUUID returns one entity
func (m *EntityManager) GetByUUID(ctx context.Context, id string) (*entities.Entity, error) {
	entity, err := m.entities.GetByUUID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrEntityNotFound, "Entity", "Entity %s not found", id)
	}
	return entity, nil
}

// ListEnabledByTaxonomy returns the enabled entities of an existing taxonomy
func (m *EntityManager) ListEnabledByTaxonomy(ctx context.Context, taxonomyID int64) ([]*entities.Entity, error) {
	if err := m.requireTaxonomy(ctx, taxonomyID); err != nil {
		return nil, err
	}
	list, err := m.entities.GetEnabledByTaxonomy(ctx, taxonomyID)
	if err != nil {
		return nil, dbError(err, "Entity")
	}
	return list, nil
}

// Create adds an entity under an existing taxonomy
func (m *EntityManager) Create(ctx context.Context, req *CreateEntityRequest) (*entities.Entity, error) {
	if err := m.requireTaxonomy(ctx, req.TaxonomyID); err != nil {
		return nil, err
	}

	entity := &entities.Entity{
		UUID:       req.UUID,
		Alias:      datatypes.JSONSlice[string](req.Alias),
		Enabled:    boolOr(req.Enabled, true),
		TaxonomyID: req.TaxonomyID,
	}
	if entity.UUID == "" {
		entity.UUID = uuid.NewString()
	}
	if entity.Alias == nil {
		entity.Alias = datatypes.JSONSlice[string]{}
	}
	if err := m.entities.Create(ctx, entity); err != nil {
		return nil, dbError(err, "Entity")
	}
	return entity, nil
}

// UpdateByUUID applies the non-nil fields of req
func (m *EntityManager) UpdateByUUID(ctx context.Context, id string, req *UpdateEntityRequest) (*entities.Entity, error) {
	entity, err := m.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Alias != nil {
		alias := datatypes.JSONSlice[string](*req.Alias)
		if alias == nil {
			alias = datatypes.JSONSlice[string]{}
		}
		fields["alias"] = alias
	}
	if req.Enabled != nil {
		fields["enabled"] = *req.Enabled
	}
	if req.TaxonomyID != nil {
		if err := m.requireTaxonomy(ctx, *req.TaxonomyID); err != nil {
			return nil, err
		}
		fields["taxonomy_id"] = *req.TaxonomyID
	}
	if len(fields) == 0 {
		return entity, nil
	}

	if err := m.entities.Update(ctx, entity.ID, fields); err != nil {
		return nil, dbError(err, "Entity")
	}
	return m.GetByUUID(ctx, id)
}

// DeleteByID removes the entity's gallery objects and then the entity.
// Gallery rows follow through the foreign key cascade.
func (m *EntityManager) DeleteByID(ctx context.Context, id int64) error {
	entity, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return m.delete(ctx, entity, false)
}

// DeleteByUUID is DeleteByID addressed by UUID
func (m *EntityManager) DeleteByUUID(ctx context.Context, id string) error {
	entity, err := m.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	return m.delete(ctx, entity, false)
}

// SoftDeleteByUUID removes the entity's gallery objects and marks the
// entity deleted
func (m *EntityManager) SoftDeleteByUUID(ctx context.Context, id string) error {
	entity, err := m.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	return m.delete(ctx, entity, true)
}

func (m *EntityManager) delete(ctx context.Context, entity *entities.Entity, soft bool) error {
	galleries, err := m.galleries.GetAllByEntity(ctx, entity.ID)
	if err != nil {
		return dbError(err, "Entity media gallery")
	}
	for _, g := range galleries {
		removeObject(ctx, m.store, m.log, objectstore.ParsePath(g.Path))
	}

	if soft {
		err = m.entities.SoftDelete(ctx, entity.ID)
	} else {
		err = m.entities.Delete(ctx, entity.ID)
	}
	if err != nil {
		return lookup(err, repository.ErrEntityNotFound, "Entity", "Entity %s not found", entity.UUID)
	}

	m.log.Info("entity deleted",
		logger.String("uuid", entity.UUID),
		logger.Int("gallery_objects", len(galleries)),
		logger.Bool("soft", soft))
	return nil
}

func (m *EntityManager) requireTaxonomy(ctx context.Context, id int64) error {
	ok, err := m.taxonomies.Exists(ctx, id)
	if err != nil {
		return dbError(err, "Taxonomy")
	}
	if !ok {
		return notFoundf("Taxonomy with id %d not found", id)
	}
	return nil
}
