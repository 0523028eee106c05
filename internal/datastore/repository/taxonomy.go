package repository

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// TaxonomyRepository provides access to the taxonomies table.
type TaxonomyRepository interface {
	// GetAll retrieves every taxonomy ordered by id.
	GetAll(ctx context.Context) ([]*entities.Taxonomy, error)

	// GetByID retrieves a taxonomy by its ID.
	// Returns ErrTaxonomyNotFound if not found.
	GetByID(ctx context.Context, id int64) (*entities.Taxonomy, error)

	// GetByUUID retrieves a taxonomy by its UUID.
	// Returns ErrTaxonomyNotFound if not found.
	GetByUUID(ctx context.Context, uuid string) (*entities.Taxonomy, error)

	// Create inserts a taxonomy. Returns ErrDuplicateKey on a UUID collision.
	Create(ctx context.Context, taxonomy *entities.Taxonomy) error

	// Update applies column updates to the taxonomy with the given ID.
	Update(ctx context.Context, id int64, fields map[string]any) error

	// Delete removes a taxonomy by ID.
	// Returns ErrTaxonomyNotFound if not found and ErrReferenced when
	// entities or child taxonomies still point at it.
	Delete(ctx context.Context, id int64) error

	// Exists checks if a taxonomy with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
