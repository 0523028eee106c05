package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
)

// taxonomyRepository implements TaxonomyRepository.
type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) GetAll(ctx context.Context) ([]*entities.Taxonomy, error) {
	var taxonomies []*entities.Taxonomy
	err := r.db.WithContext(ctx).Order("id ASC").Find(&taxonomies).Error
	return taxonomies, err
}

func (r *taxonomyRepository) GetByID(ctx context.Context, id int64) (*entities.Taxonomy, error) {
	var taxonomy entities.Taxonomy
	if err := r.db.WithContext(ctx).First(&taxonomy, id).Error; err != nil {
		return nil, translate(err, ErrTaxonomyNotFound)
	}
	return &taxonomy, nil
}

func (r *taxonomyRepository) GetByUUID(ctx context.Context, uuid string) (*entities.Taxonomy, error) {
	var taxonomy entities.Taxonomy
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&taxonomy).Error; err != nil {
		return nil, translate(err, ErrTaxonomyNotFound)
	}
	return &taxonomy, nil
}

func (r *taxonomyRepository) Create(ctx context.Context, taxonomy *entities.Taxonomy) error {
	return translate(r.db.WithContext(ctx).Create(taxonomy).Error, ErrTaxonomyNotFound)
}

func (r *taxonomyRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&entities.Taxonomy{ID: id}).Updates(fields).Error
	return translate(err, ErrTaxonomyNotFound)
}

func (r *taxonomyRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&entities.Taxonomy{}, id), ErrTaxonomyNotFound)
}

func (r *taxonomyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Taxonomy{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
