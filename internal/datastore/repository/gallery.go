package repository

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// GalleryRepository provides access to the entity_media_galleries table.
// Soft-deleted rows are invisible to every read.
type GalleryRepository interface {
	// GetAllEnabled retrieves the enabled galleries.
	GetAllEnabled(ctx context.Context) ([]*entities.EntityMediaGallery, error)

	// GetEnabledByEntity retrieves the enabled galleries of an entity.
	GetEnabledByEntity(ctx context.Context, entityID int64) ([]*entities.EntityMediaGallery, error)

	// GetAllByEntity retrieves every gallery of an entity regardless of state,
	// soft-deleted rows included.
	GetAllByEntity(ctx context.Context, entityID int64) ([]*entities.EntityMediaGallery, error)

	// GetByUUID retrieves a gallery by its UUID.
	// Returns ErrGalleryNotFound if not found.
	GetByUUID(ctx context.Context, uuid string) (*entities.EntityMediaGallery, error)

	// Create inserts a gallery. Returns ErrDuplicateKey on a UUID collision.
	Create(ctx context.Context, gallery *entities.EntityMediaGallery) error

	// Update applies column updates to the gallery with the given ID.
	Update(ctx context.Context, id int64, fields map[string]any) error

	// Delete permanently removes a gallery by ID.
	// Returns ErrGalleryNotFound if not found.
	Delete(ctx context.Context, id int64) error

	// SoftDelete marks a gallery deleted.
	// Returns ErrGalleryNotFound if not found.
	SoftDelete(ctx context.Context, id int64) error
}
