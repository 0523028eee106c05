package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// entityRepository implements EntityRepository.
type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

func (r *entityRepository) GetAll(ctx context.Context) ([]*entities.Entity, error) {
	var list []*entities.Entity
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *entityRepository) GetAllEnabled(ctx context.Context) ([]*entities.Entity, error) {
	var list []*entities.Entity
	err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *entityRepository) GetEnabledByTaxonomy(ctx context.Context, taxonomyID int64) ([]*entities.Entity, error) {
	var list []*entities.Entity
	err := r.db.WithContext(ctx).
		Where("taxonomy_id = ? AND enabled = ?", taxonomyID, true).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *entityRepository) GetByID(ctx context.Context, id int64) (*entities.Entity, error) {
	var entity entities.Entity
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, translate(err, ErrEntityNotFound)
	}
	return &entity, nil
}

func (r *entityRepository) GetByUUID(ctx context.Context, uuid string) (*entities.Entity, error) {
	var entity entities.Entity
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&entity).Error; err != nil {
		return nil, translate(err, ErrEntityNotFound)
	}
	return &entity, nil
}

func (r *entityRepository) Create(ctx context.Context, entity *entities.Entity) error {
	return translate(r.db.WithContext(ctx).Create(entity).Error, ErrEntityNotFound)
}

func (r *entityRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&entities.Entity{ID: id}).Updates(fields).Error
	return translate(err, ErrEntityNotFound)
}

func (r *entityRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Unscoped().Delete(&entities.Entity{}, id), ErrEntityNotFound)
}

func (r *entityRepository) SoftDelete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&entities.Entity{}, id), ErrEntityNotFound)
}

func (r *entityRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Entity{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
