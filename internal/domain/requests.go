package domain

import "io"

// Upload is a file received from a multipart form
type Upload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreateTaxonomyRequest creates a taxonomy. An empty UUID is generated.
type CreateTaxonomyRequest struct {
	UUID       string `json:"uuid" validate:"omitempty,uuid"`
	Label      string `json:"label" validate:"required,max=255"`
	TaxonomyID *int64 `json:"taxonomy_id"`
}

// UpdateTaxonomyRequest patches a taxonomy; nil fields are left alone
type UpdateTaxonomyRequest struct {
	Label      *string `json:"label" validate:"omitempty,min=1,max=255"`
	TaxonomyID *int64  `json:"taxonomy_id"`
}

// CreateEntityRequest creates an entity. Enabled defaults to true.
type CreateEntityRequest struct {
	UUID       string   `json:"uuid" validate:"omitempty,uuid"`
	Alias      []string `json:"alias" validate:"dive,max=255"`
	Enabled    *bool    `json:"enabled"`
	TaxonomyID int64    `json:"taxonomy_id" validate:"required"`
}

// UpdateEntityRequest patches an entity; nil fields are left alone
type UpdateEntityRequest struct {
	Alias      *[]string `json:"alias"`
	Enabled    *bool     `json:"enabled"`
	TaxonomyID *int64    `json:"taxonomy_id"`
}

// CreateGalleryRequest registers an image already present in the object
// store. Enabled defaults to true.
type CreateGalleryRequest struct {
	UUID     string `json:"uuid" validate:"omitempty,uuid"`
	EntityID int64  `json:"entity_id" validate:"required"`
	Path     string `json:"path" validate:"required,max=1024"`
	Enabled  *bool  `json:"enabled"`
}

// UpdateGalleryRequest patches a gallery; nil fields are left alone
type UpdateGalleryRequest struct {
	Path    *string `json:"path" validate:"omitempty,min=1,max=1024"`
	Enabled *bool   `json:"enabled"`
}

// VideosByEntitiesRequest selects videos by the entities detected in them
type VideosByEntitiesRequest struct {
	EntityIDs []int64 `json:"entity_ids"`
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
