package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// segmentDetectionRepository implements SegmentDetectionRepository.
type segmentDetectionRepository struct {
	db *gorm.DB
}

// NewSegmentDetectionRepository creates a new SegmentDetectionRepository.
func NewSegmentDetectionRepository(db *gorm.DB) SegmentDetectionRepository {
	return &segmentDetectionRepository{db: db}
}

func (r *segmentDetectionRepository) GetByID(ctx context.Context, id int64) (*entities.SegmentDetection, error) {
	var segment entities.SegmentDetection
	if err := r.db.WithContext(ctx).First(&segment, id).Error; err != nil {
		return nil, translate(err, ErrSegmentDetectionNotFound)
	}
	return &segment, nil
}

func (r *segmentDetectionRepository) GetByVideo(ctx context.Context, videoID int64) ([]*entities.SegmentDetection, error) {
	var list []*entities.SegmentDetection
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("start_frame ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *segmentDetectionRepository) GetByVideoAndTaxonomy(ctx context.Context, videoID, taxonomyID int64) ([]*entities.SegmentDetection, error) {
	var list []*entities.SegmentDetection
	err := r.db.WithContext(ctx).
		Where("video_id = ? AND taxonomy_id = ?", videoID, taxonomyID).
		Order("start_frame ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *segmentDetectionRepository) GetByEntityIDs(ctx context.Context, entityIDs []int64) ([]*entities.SegmentDetection, error) {
	list := make([]*entities.SegmentDetection, 0)
	if len(entityIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("entity_id IN ?", entityIDs).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *segmentDetectionRepository) Create(ctx context.Context, segment *entities.SegmentDetection) error {
	return translate(r.db.WithContext(ctx).Create(segment).Error, ErrSegmentDetectionNotFound)
}

func (r *segmentDetectionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.SegmentDetection{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
