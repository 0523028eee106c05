package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// videoRepository implements VideoRepository.
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) GetAll(ctx context.Context) ([]*entities.Video, error) {
	var videos []*entities.Video
	err := r.db.WithContext(ctx).Order("id ASC").Find(&videos).Error
	return videos, err
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, translate(err, ErrVideoNotFound)
	}
	return &video, nil
}

func (r *videoRepository) GetByUUID(ctx context.Context, uuid string) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&video).Error; err != nil {
		return nil, translate(err, ErrVideoNotFound)
	}
	return &video, nil
}

func (r *videoRepository) GetByIDs(ctx context.Context, ids []int64) ([]*entities.Video, error) {
	videos := make([]*entities.Video, 0, len(ids))
	if len(ids) == 0 {
		return videos, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Create(ctx context.Context, video *entities.Video) error {
	return translate(r.db.WithContext(ctx).Create(video).Error, ErrVideoNotFound)
}

func (r *videoRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&entities.Video{}, id), ErrVideoNotFound)
}

func (r *videoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Video{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
