package domain

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/datastore/repository"
)

// SegmentDetectionManager serves segment detections read-only
type SegmentDetectionManager struct {
	segments   repository.SegmentDetectionRepository
	videos     repository.VideoRepository
	taxonomies repository.TaxonomyRepository
}

// ListByVideo returns the segment detections of an existing video
func (m *SegmentDetectionManager) ListByVideo(ctx context.Context, videoID int64) ([]*entities.SegmentDetection, error) {
	if err := requireVideo(ctx, m.videos, videoID); err != nil {
		return nil, err
	}
	list, err := m.segments.GetByVideo(ctx, videoID)
	if err != nil {
		return nil, dbError(err, "Segment detection")
	}
	return list, nil
}

// ListByVideoAndTaxonomy narrows ListByVideo to one taxonomy. The video is
// checked before the taxonomy.
func (m *SegmentDetectionManager) ListByVideoAndTaxonomy(ctx context.Context, videoID, taxonomyID int64) ([]*entities.SegmentDetection, error) {
	if err := requireVideo(ctx, m.videos, videoID); err != nil {
		return nil, err
	}

	ok, err := m.taxonomies.Exists(ctx, taxonomyID)
	if err != nil {
		return nil, dbError(err, "Taxonomy")
	}
	if !ok {
		return nil, notFoundf("Taxonomy %d not found", taxonomyID)
	}

	list, err := m.segments.GetByVideoAndTaxonomy(ctx, videoID, taxonomyID)
	if err != nil {
		return nil, dbError(err, "Segment detection")
	}
	return list, nil
}

// DetectionManager serves detections read-only
type DetectionManager struct {
	detections repository.DetectionRepository
	videos     repository.VideoRepository
	segments   repository.SegmentDetectionRepository
}

// ListByVideo returns the detections of an existing video
func (m *DetectionManager) ListByVideo(ctx context.Context, videoID int64) ([]*entities.Detection, error) {
	if err := requireVideo(ctx, m.videos, videoID); err != nil {
		return nil, err
	}
	list, err := m.detections.GetByVideo(ctx, videoID)
	if err != nil {
		return nil, dbError(err, "Detection")
	}
	return list, nil
}

// ListBySegmentDetection returns the detections of an existing segment
// detection
func (m *DetectionManager) ListBySegmentDetection(ctx context.Context, segmentID int64) ([]*entities.Detection, error) {
	ok, err := m.segments.Exists(ctx, segmentID)
	if err != nil {
		return nil, dbError(err, "Segment detection")
	}
	if !ok {
		return nil, notFoundf("Segment detection %d not found", segmentID)
	}

	list, err := m.detections.GetBySegmentDetection(ctx, segmentID)
	if err != nil {
		return nil, dbError(err, "Detection")
	}
	return list, nil
}

func requireVideo(ctx context.Context, videos repository.VideoRepository, id int64) error {
	ok, err := videos.Exists(ctx, id)
	if err != nil {
		return dbError(err, "Video")
	}
	if !ok {
		return notFoundf("Video %d not found", id)
	}
	return nil
}
