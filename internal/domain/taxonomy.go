package domain

import (
	"context"

	"github.com/google/uuid"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/datastore/repository"
	"github.com/tphakala/video-enrichment-api/internal/errors"
)

// TaxonomyManager handles the taxonomy tree
type TaxonomyManager struct {
	taxonomies repository.TaxonomyRepository
}

// List returns every taxonomy
func (m *TaxonomyManager) List(ctx context.Context) ([]*entities.Taxonomy, error) {
	taxonomies, err := m.taxonomies.GetAll(ctx)
	if err != nil {
		return nil, dbError(err, "Taxonomy")
	}
	return taxonomies, nil
}

// GetByID returns one taxonomy
func (m *TaxonomyManager) GetByID(ctx context.Context, id int64) (*entities.Taxonomy, error) {
	taxonomy, err := m.taxonomies.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrTaxonomyNotFound, "Taxonomy", "Taxonomy with id %d not found", id)
	}
	return taxonomy, nil
}

// GetByUUID returns one taxonomy
func (m *TaxonomyManager) GetByUUID(ctx context.Context, id string) (*entities.Taxonomy, error) {
	taxonomy, err := m.taxonomies.GetByUUID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrTaxonomyNotFound, "Taxonomy", "Taxonomy %s not found", id)
	}
	return taxonomy, nil
}

// Create adds a taxonomy. A parent, when given, must exist.
func (m *TaxonomyManager) Create(ctx context.Context, req *CreateTaxonomyRequest) (*entities.Taxonomy, error) {
	if req.TaxonomyID != nil {
		if _, err := m.GetByID(ctx, *req.TaxonomyID); err != nil {
			return nil, err
		}
	}

	taxonomy := &entities.Taxonomy{
		UUID:       req.UUID,
		Label:      req.Label,
		TaxonomyID: req.TaxonomyID,
	}
	if taxonomy.UUID == "" {
		taxonomy.UUID = uuid.NewString()
	}
	if err := m.taxonomies.Create(ctx, taxonomy); err != nil {
		return nil, dbError(err, "Taxonomy")
	}
	return taxonomy, nil
}

// UpdateByUUID applies the non-nil fields of req
func (m *TaxonomyManager) UpdateByUUID(ctx context.Context, id string, req *UpdateTaxonomyRequest) (*entities.Taxonomy, error) {
	taxonomy, err := m.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Label != nil {
		fields["label"] = *req.Label
	}
	if req.TaxonomyID != nil {
		if *req.TaxonomyID == taxonomy.ID {
			return nil, errors.InvalidInput(component, "Taxonomy %s cannot be its own parent", id)
		}
		if _, err := m.GetByID(ctx, *req.TaxonomyID); err != nil {
			return nil, err
		}
		fields["taxonomy_id"] = *req.TaxonomyID
	}
	if len(fields) == 0 {
		return taxonomy, nil
	}

	if err := m.taxonomies.Update(ctx, taxonomy.ID, fields); err != nil {
		return nil, dbError(err, "Taxonomy")
	}
	return m.GetByUUID(ctx, id)
}

// DeleteByID removes a taxonomy
func (m *TaxonomyManager) DeleteByID(ctx context.Context, id int64) error {
	if err := m.taxonomies.Delete(ctx, id); err != nil {
		return lookup(err, repository.ErrTaxonomyNotFound, "Taxonomy", "Taxonomy with id %d not found", id)
	}
	return nil
}

// DeleteByUUID removes a taxonomy
func (m *TaxonomyManager) DeleteByUUID(ctx context.Context, id string) error {
	taxonomy, err := m.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	if err := m.taxonomies.Delete(ctx, taxonomy.ID); err != nil {
		return lookup(err, repository.ErrTaxonomyNotFound, "Taxonomy", "Taxonomy %s not found", id)
	}
	return nil
}
