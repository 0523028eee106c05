package repository

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// SegmentDetectionRepository provides access to the segment_detections table.
type SegmentDetectionRepository interface {
	// GetByID retrieves a segment detection by its ID.
	// Returns ErrSegmentDetectionNotFound if not found.
	GetByID(ctx context.Context, id int64) (*entities.SegmentDetection, error)

	// GetByVideo retrieves the segment detections of a video ordered by start frame.
	GetByVideo(ctx context.Context, videoID int64) ([]*entities.SegmentDetection, error)

	// GetByVideoAndTaxonomy narrows GetByVideo to one taxonomy.
	GetByVideoAndTaxonomy(ctx context.Context, videoID, taxonomyID int64) ([]*entities.SegmentDetection, error)

	// GetByEntityIDs retrieves every segment detection referencing one of the entities.
	GetByEntityIDs(ctx context.Context, entityIDs []int64) ([]*entities.SegmentDetection, error)

	// Create inserts a segment detection.
	Create(ctx context.Context, segment *entities.SegmentDetection) error

	// Exists checks if a segment detection with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
