package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// detectionRepository implements DetectionRepository.
type detectionRepository struct {
	db *gorm.DB
}

// NewDetectionRepository creates a new DetectionRepository.
func NewDetectionRepository(db *gorm.DB) DetectionRepository {
	return &detectionRepository{db: db}
}

func (r *detectionRepository) GetByVideo(ctx context.Context, videoID int64) ([]*entities.Detection, error) {
	var list []*entities.Detection
	err := r.db.WithContext(ctx).Where("video_id = ?", videoID).Order("frame ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *detectionRepository) GetBySegmentDetection(ctx context.Context, segmentDetectionID int64) ([]*entities.Detection, error) {
	var list []*entities.Detection
	err := r.db.WithContext(ctx).
		Where("segment_detection_id = ?", segmentDetectionID).
		Order("frame ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *detectionRepository) Create(ctx context.Context, detection *entities.Detection) error {
	return translate(r.db.WithContext(ctx).Create(detection).Error, ErrDetectionNotFound)
}
