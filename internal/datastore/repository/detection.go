package repository

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// DetectionRepository provides access to the detections table.
type DetectionRepository interface {
	// GetByVideo retrieves the detections of a video ordered by frame.
	GetByVideo(ctx context.Context, videoID int64) ([]*entities.Detection, error)

	// GetBySegmentDetection retrieves the detections of a segment ordered by frame.
	GetBySegmentDetection(ctx context.Context, segmentDetectionID int64) ([]*entities.Detection, error)

	// Create inserts a detection. Bounding boxes are validated before write.
	Create(ctx context.Context, detection *entities.Detection) error
}
