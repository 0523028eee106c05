package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// galleryRepository implements GalleryRepository.
type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new GalleryRepository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) GetAllEnabled(ctx context.Context) ([]*entities.EntityMediaGallery, error) {
	var list []*entities.EntityMediaGallery
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *galleryRepository) GetEnabledByEntity(ctx context.Context, entityID int64) ([]*entities.EntityMediaGallery, error) {
	var list []*entities.EntityMediaGallery
	err := r.db.WithContext(ctx).
		Where("entity_id = ? AND enabled = ?", entityID, true).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *galleryRepository) GetAllByEntity(ctx context.Context, entityID int64) ([]*entities.EntityMediaGallery, error) {
	var list []*entities.EntityMediaGallery
	// soft-deleted rows still own their image object
	err := r.db.WithContext(ctx).Unscoped().Where("entity_id = ?", entityID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *galleryRepository) GetByUUID(ctx context.Context, uuid string) (*entities.EntityMediaGallery, error) {
	var gallery entities.EntityMediaGallery
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&gallery).Error; err != nil {
		return nil, translate(err, ErrGalleryNotFound)
	}
	return &gallery, nil
}

func (r *galleryRepository) Create(ctx context.Context, gallery *entities.EntityMediaGallery) error {
	return translate(r.db.WithContext(ctx).Create(gallery).Error, ErrGalleryNotFound)
}

func (r *galleryRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&entities.EntityMediaGallery{ID: id}).Updates(fields).Error
	return translate(err, ErrGalleryNotFound)
}

func (r *galleryRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Unscoped().Delete(&entities.EntityMediaGallery{}, id), ErrGalleryNotFound)
}

func (r *galleryRepository) SoftDelete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&entities.EntityMediaGallery{}, id), ErrGalleryNotFound)
}
