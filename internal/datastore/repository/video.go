package repository

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// VideoRepository provides access to the videos table.
type VideoRepository interface {
	// GetAll retrieves every video ordered by id.
	GetAll(ctx context.Context) ([]*entities.Video, error)

	// GetByID retrieves a video by its ID.
	// Returns ErrVideoNotFound if not found.
	GetByID(ctx context.Context, id int64) (*entities.Video, error)

	// GetByUUID retrieves a video by its UUID.
	// Returns ErrVideoNotFound if not found.
	GetByUUID(ctx context.Context, uuid string) (*entities.Video, error)

	// GetByIDs retrieves the videos with the given IDs. Unknown IDs are ignored.
	GetByIDs(ctx context.Context, ids []int64) ([]*entities.Video, error)

	// Create inserts a video. Returns ErrDuplicateKey on a UUID collision.
	Create(ctx context.Context, video *entities.Video) error

	// Delete removes a video by ID.
	// Returns ErrVideoNotFound if not found.
	Delete(ctx context.Context, id int64) error

	// Exists checks if a video with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
