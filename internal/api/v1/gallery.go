package api

import (
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// initGalleryRoutes registers the entity media gallery endpoints
func (c *Controller) initGalleryRoutes() {
	g := c.protected("/entity-media-gallery")

	g.GET("", c.ListGalleries)
	g.POST("", c.CreateGallery)
	g.GET("/by-entity/:entity_id", c.ListGalleriesByEntity)
	g.GET("/by-entity/:entity_id/images", c.ListGalleryImagesByEntity)
	g.GET("/:uuid", c.GetGallery)
	g.PUT("/:uuid", c.UpdateGallery)
	g.DELETE("/:uuid", c.DeleteGallery)
	g.GET("/:uuid/image", c.GetGalleryImage)
}

// ListGalleries returns the enabled galleries
func (c *Controller) ListGalleries(ctx echo.Context) error {
	list, err := c.managers.Galleries.ListEnabled(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) GetGallery(ctx echo.Context) error {
	gallery, err := c.managers.Galleries.GetByUUID(ctx.Request().Context(), ctx.Param("uuid"))
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, gallery)
}

// ListGalleriesByEntity returns the enabled galleries of an entity
func (c *Controller) ListGalleriesByEntity(ctx echo.Context) error {
	entityID, err := int64Param(ctx, "entity_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	list, err := c.managers.Galleries.ListEnabledByEntity(ctx.Request().Context(), entityID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

// ListGalleryImagesByEntity returns the enabled gallery images of an entity,
// base64 encoded
func (c *Controller) ListGalleryImagesByEntity(ctx echo.Context) error {
	entityID, err := int64Param(ctx, "entity_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	images, err := c.managers.Galleries.ImagesByEntity(ctx.Request().Context(), entityID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, images)
}

// CreateGallery accepts either a multipart image upload (entity_id + file)
// or a JSON body referencing an object already in the store.
func (c *Controller) CreateGallery(ctx echo.Context) error {
	if isMultipart(ctx) {
		return c.uploadGallery(ctx)
	}

	var req domain.CreateGalleryRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	gallery, err := c.managers.Galleries.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, gallery)
}

func (c *Controller) uploadGallery(ctx echo.Context) error {
	entityID, err := formInt64(ctx, "entity_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	upload, f, err := formUpload(ctx, "file")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			c.logger.Warn("failed to close multipart file", logger.Error(cerr))
		}
	}()

	gallery, err := c.managers.Galleries.CreateFromUpload(ctx.Request().Context(), entityID, upload)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, gallery)
}

func (c *Controller) UpdateGallery(ctx echo.Context) error {
	var req domain.UpdateGalleryRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	gallery, err := c.managers.Galleries.UpdateByUUID(ctx.Request().Context(), ctx.Param("uuid"), &req)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, gallery)
}

// DeleteGallery removes a gallery and its image. With ?soft=true the row is
// only marked deleted and the image is kept.
func (c *Controller) DeleteGallery(ctx echo.Context) error {
	soft, err := softParam(ctx)
	if err != nil {
		return c.HandleError(ctx, err)
	}

	id := ctx.Param("uuid")
	reqCtx := ctx.Request().Context()
	if soft {
		err = c.managers.Galleries.SoftDeleteByUUID(reqCtx, id)
	} else {
		err = c.managers.Galleries.DeleteByUUID(reqCtx, id)
	}
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}

// GetGalleryImage streams the image of a gallery
func (c *Controller) GetGalleryImage(ctx echo.Context) error {
	blob, gallery, err := c.managers.Galleries.Image(ctx.Request().Context(), ctx.Param("uuid"))
	if err != nil {
		return c.HandleError(ctx, err)
	}
	inline(ctx, path.Base(gallery.Path))
	return ctx.Blob(http.StatusOK, blob.ContentType, blob.Data)
}
