package repository

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// EntityRepository provides access to the entities table.
// Soft-deleted entities are invisible to every read.
type EntityRepository interface {
	// GetAll retrieves every entity ordered by id.
	GetAll(ctx context.Context) ([]*entities.Entity, error)

	// GetAllEnabled retrieves the enabled entities.
	GetAllEnabled(ctx context.Context) ([]*entities.Entity, error)

	// GetEnabledByTaxonomy retrieves the enabled entities of a taxonomy.
	GetEnabledByTaxonomy(ctx context.Context, taxonomyID int64) ([]*entities.Entity, error)

	// GetByID retrieves an entity by its ID.
	// Returns ErrEntityNotFound if not found.
	GetByID(ctx context.Context, id int64) (*entities.Entity, error)

	// GetByUUID retrieves an entity by its UUID.
	// Returns ErrEntityNotFound if not found.
	GetByUUID(ctx context.Context, uuid string) (*entities.Entity, error)

	// Create inserts an entity. Returns ErrDuplicateKey on a UUID collision.
	Create(ctx context.Context, entity *entities.Entity) error

	// Update applies column updates to the entity with the given ID.
	Update(ctx context.Context, id int64, fields map[string]any) error

	// Delete permanently removes an entity by ID.
	// Returns ErrEntityNotFound if not found.
	Delete(ctx context.Context, id int64) error

	// SoftDelete marks an entity deleted.
	// Returns ErrEntityNotFound if not found.
	SoftDelete(ctx context.Context, id int64) error

	// Exists checks if a live entity with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
