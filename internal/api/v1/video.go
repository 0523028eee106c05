package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// initVideoRoutes registers the video endpoints
func (c *Controller) initVideoRoutes() {
	g := c.protected("/video")

	g.GET("", c.ListVideos)
	g.POST("", c.UploadVideo)
	g.POST("/by-entities", c.ListVideosByEntities)
	g.GET("/by-id/:id", c.GetVideoByID)
	g.DELETE("/by-id/:id", c.DeleteVideoByID)
	g.GET("/:uuid", c.GetVideo)
	g.GET("/:uuid/thumbnail", c.GetVideoThumbnail)
	g.GET("/:uuid/bytes", c.GetVideoBytes)
	g.DELETE("/:uuid", c.DeleteVideo)
}

// ListVideos returns every video
func (c *Controller) ListVideos(ctx echo.Context) error {
	videos, err := c.managers.Videos.List(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, videos)
}

// UploadVideo stores a multipart video upload and records its metadata
func (c *Controller) UploadVideo(ctx echo.Context) error {
	code, err := formValue(ctx, "code")
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

	video, err := c.managers.Videos.CreateFromUpload(ctx.Request().Context(), code, upload)
	if err != nil {
		return c.HandleError(ctx, err)
	}

	c.logger.Info("video uploaded",
		logger.String("uuid", video.UUID),
		logger.String("code", video.Code),
		logger.Int64("frames", video.Frames))
	return ctx.JSON(http.StatusOK, video)
}

// ListVideosByEntities returns the videos in which any of the entities was detected
func (c *Controller) ListVideosByEntities(ctx echo.Context) error {
	var req domain.VideosByEntitiesRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	videos, err := c.managers.Videos.ListByEntityIDs(ctx.Request().Context(), req.EntityIDs)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, videos)
}

// GetVideoByID returns a video by numeric id
func (c *Controller) GetVideoByID(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	video, err := c.managers.Videos.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, video)
}

// GetVideo returns a video by uuid
func (c *Controller) GetVideo(ctx echo.Context) error {
	video, err := c.managers.Videos.GetByUUID(ctx.Request().Context(), ctx.Param("uuid"))
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, video)
}

// GetVideoThumbnail streams the JPEG thumbnail taken at upload time
func (c *Controller) GetVideoThumbnail(ctx echo.Context) error {
	id := ctx.Param("uuid")
	blob, err := c.managers.Videos.Thumbnail(ctx.Request().Context(), id)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	inline(ctx, "thumbnail_"+id+".jpg")
	return ctx.Blob(http.StatusOK, blob.ContentType, blob.Data)
}

// GetVideoBytes streams the stored video file
func (c *Controller) GetVideoBytes(ctx echo.Context) error {
	id := ctx.Param("uuid")
	blob, video, err := c.managers.Videos.Bytes(ctx.Request().Context(), id)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	inline(ctx, "video_"+id+video.Extension)
	return ctx.Blob(http.StatusOK, blob.ContentType, blob.Data)
}

// DeleteVideoByID removes a video by numeric id
func (c *Controller) DeleteVideoByID(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	if err := c.managers.Videos.DeleteByID(ctx.Request().Context(), id); err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}

// DeleteVideo removes a video by uuid
func (c *Controller) DeleteVideo(ctx echo.Context) error {
	if err := c.managers.Videos.DeleteByUUID(ctx.Request().Context(), ctx.Param("uuid")); err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}
