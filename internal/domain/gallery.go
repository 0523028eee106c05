package domain

import (
	"context"
	"encoding/base64"
	"io"
	"mime"

	"github.com/google/uuid"

	"github.com/tphakala/video-enrichment-api/internal/datastore/entities"
	"github.com/tphakala/video-enrichment-api/internal/datastore/repository"
	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
)

// GalleryImage is one gallery image embedded in a JSON response
type GalleryImage struct {
	UUID        string `json:"uuid"`
	ImageBase64 string `json:"image_base64"`
	ContentType string `json:"content_type"`
}

// GalleryManager handles entity media galleries and their images
type GalleryManager struct {
	galleries repository.GalleryRepository
	entities  repository.EntityRepository
	store     objectstore.Store
	root      objectstore.Path
	log       logger.Logger
}

// ListEnabled returns the enabled galleries
func (m *GalleryManager) ListEnabled(ctx context.Context) ([]*entities.EntityMediaGallery, error) {
	list, err := m.galleries.GetAllEnabled(ctx)
	if err != nil {
		return nil, dbError(err, "Entity media gallery")
	}
	return list, nil
}

// GetByUUID returns one gallery
func (m *GalleryManager) GetByUUID(ctx context.Context, id string) (*entities.EntityMediaGallery, error) {
	gallery, err := m.galleries.GetByUUID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrGalleryNotFound, "Entity media gallery", "Entity media gallery %s not found", id)
	}
	return gallery, nil
}

// ListEnabledByEntity returns the enabled galleries of an existing entity
func (m *GalleryManager) ListEnabledByEntity(ctx context.Context, entityID int64) ([]*entities.EntityMediaGallery, error) {
	if _, err := m.entity(ctx, entityID); err != nil {
		return nil, err
	}
	list, err := m.galleries.GetEnabledByEntity(ctx, entityID)
	if err != nil {
		return nil, dbError(err, "Entity media gallery")
	}
	return list, nil
}

// Create records an image that is already in the object store
func (m *GalleryManager) Create(ctx context.Context, req *CreateGalleryRequest) (*entities.EntityMediaGallery, error) {
	if !m.store.Exists(ctx, objectstore.ParsePath(req.Path)) {
		return nil, errors.InvalidInput(component, "media gallery %s not exists", req.Path)
	}
	if _, err := m.entity(ctx, req.EntityID); err != nil {
		return nil, err
	}

	gallery := &entities.EntityMediaGallery{
		UUID:     req.UUID,
		EntityID: req.EntityID,
		Path:     req.Path,
		Enabled:  boolOr(req.Enabled, true),
	}
	if gallery.UUID == "" {
		gallery.UUID = uuid.NewString()
	}
	if err := m.galleries.Create(ctx, gallery); err != nil {
		return nil, dbError(err, "Entity media gallery")
	}
	return gallery, nil
}

// CreateFromUpload stores an uploaded image under
// {gallery}/{entity uuid}/{filename} and records it enabled without an
// embedding.
func (m *GalleryManager) CreateFromUpload(ctx context.Context, entityID int64, up Upload) (*entities.EntityMediaGallery, error) {
	entity, err := m.entity(ctx, entityID)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(up.Content)
	if err != nil {
		return nil, errors.New(err).
			Component(component).
			Category(errors.CategoryFileIO).
			Context("operation", "read_upload").
			Build()
	}

	p := m.root.Join(entity.UUID, up.Filename)
	contentType := up.ContentType
	if contentType == "" {
		contentType = guessContentType(p)
	}
	if err := m.store.Upload(ctx, p, data, contentType); err != nil {
		return nil, errors.Upstream(component, err, "Failed to upload file to S3")
	}

	gallery := &entities.EntityMediaGallery{
		UUID:     uuid.NewString(),
		EntityID: entity.ID,
		Path:     p.String(),
		Enabled:  true,
	}
	if err := m.galleries.Create(ctx, gallery); err != nil {
		return nil, dbError(err, "Entity media gallery")
	}

	m.log.Info("gallery image uploaded",
		logger.String("uuid", gallery.UUID),
		logger.String("entity_uuid", entity.UUID),
		logger.String("path", gallery.Path))
	return gallery, nil
}

// UpdateByUUID applies the non-nil fields of req
func (m *GalleryManager) UpdateByUUID(ctx context.Context, id string, req *UpdateGalleryRequest) (*entities.EntityMediaGallery, error) {
	gallery, err := m.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Path != nil {
		fields["path"] = *req.Path
	}
	if req.Enabled != nil {
		fields["enabled"] = *req.Enabled
	}
	if len(fields) == 0 {
		return gallery, nil
	}

	if err := m.galleries.Update(ctx, gallery.ID, fields); err != nil {
		return nil, dbError(err, "Entity media gallery")
	}
	return m.GetByUUID(ctx, id)
}

// DeleteByUUID removes the image object and then the record
func (m *GalleryManager) DeleteByUUID(ctx context.Context, id string) error {
	gallery, err := m.mediaGallery(ctx, id)
	if err != nil {
		return err
	}

	removeObject(ctx, m.store, m.log, objectstore.ParsePath(gallery.Path))
	if err := m.galleries.Delete(ctx, gallery.ID); err != nil {
		return lookup(err, repository.ErrGalleryNotFound, "Entity media gallery", "Media gallery %s not found", id)
	}
	return nil
}

// SoftDeleteByUUID marks the record deleted and keeps the object
func (m *GalleryManager) SoftDeleteByUUID(ctx context.Context, id string) error {
	gallery, err := m.mediaGallery(ctx, id)
	if err != nil {
		return err
	}
	if err := m.galleries.SoftDelete(ctx, gallery.ID); err != nil {
		return lookup(err, repository.ErrGalleryNotFound, "Entity media gallery", "Media gallery %s not found", id)
	}
	return nil
}

// Image returns the gallery image with a content type guessed from its key
func (m *GalleryManager) Image(ctx context.Context, id string) (*Blob, *entities.EntityMediaGallery, error) {
	gallery, err := m.GetByUUID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	p := objectstore.ParsePath(gallery.Path)
	data, err := download(ctx, m.store, p, "Image not found in S3")
	if err != nil {
		return nil, nil, err
	}
	return &Blob{Data: data, ContentType: guessContentType(p)}, gallery, nil
}

// ImagesByEntity returns the enabled gallery images of an entity, base64
// encoded. Images that cannot be downloaded are left out.
func (m *GalleryManager) ImagesByEntity(ctx context.Context, entityID int64) ([]GalleryImage, error) {
	galleries, err := m.ListEnabledByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}

	images := make([]GalleryImage, 0, len(galleries))
	for _, g := range galleries {
		p := objectstore.ParsePath(g.Path)
		data, err := m.store.Download(ctx, p)
		if err != nil || len(data) == 0 {
			m.log.Debug("skipping gallery image",
				logger.String("uuid", g.UUID),
				logger.String("path", g.Path),
				logger.Error(err))
			continue
		}
		images = append(images, GalleryImage{
			UUID:        g.UUID,
			ImageBase64: base64.StdEncoding.EncodeToString(data),
			ContentType: guessContentType(p),
		})
	}
	return images, nil
}

// mediaGallery resolves a gallery for the delete paths, which report a
// shorter not-found message
func (m *GalleryManager) mediaGallery(ctx context.Context, id string) (*entities.EntityMediaGallery, error) {
	gallery, err := m.galleries.GetByUUID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrGalleryNotFound, "Entity media gallery", "Media gallery %s not found", id)
	}
	return gallery, nil
}

func (m *GalleryManager) entity(ctx context.Context, id int64) (*entities.Entity, error) {
	entity, err := m.entities.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, repository.ErrEntityNotFound, "Entity", "Entity %d not found", id)
	}
	return entity, nil
}

func guessContentType(p objectstore.Path) string {
	if ct := mime.TypeByExtension(p.Ext()); ct != "" {
		return ct
	}
	return mimeOctetStream
}
