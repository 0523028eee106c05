package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initSegmentDetectionRoutes registers the read-only segment detection endpoints
func (c *Controller) initSegmentDetectionRoutes() {
	g := c.protected("/segment-detection")

	g.GET("/by-video/:video_id", c.ListSegmentDetectionsByVideo)
	g.GET("/by-video/:video_id/taxonomy/:taxonomy_id", c.ListSegmentDetectionsByVideoAndTaxonomy)
}

// initDetectionRoutes registers the read-only detection endpoints
func (c *Controller) initDetectionRoutes() {
	g := c.protected("/detection")

	g.GET("/by-video/:video_id", c.ListDetectionsByVideo)
	g.GET("/by-segment-detection/:segment_detection_id", c.ListDetectionsBySegmentDetection)
}

func (c *Controller) ListSegmentDetectionsByVideo(ctx echo.Context) error {
	videoID, err := int64Param(ctx, "video_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	list, err := c.managers.Segments.ListByVideo(ctx.Request().Context(), videoID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) ListSegmentDetectionsByVideoAndTaxonomy(ctx echo.Context) error {
	videoID, err := int64Param(ctx, "video_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	taxonomyID, err := int64Param(ctx, "taxonomy_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	list, err := c.managers.Segments.ListByVideoAndTaxonomy(ctx.Request().Context(), videoID, taxonomyID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) ListDetectionsByVideo(ctx echo.Context) error {
	videoID, err := int64Param(ctx, "video_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	list, err := c.managers.Detections.ListByVideo(ctx.Request().Context(), videoID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

// ListDetectionsBySegmentDetection returns the per-frame boxes of a segment
func (c *Controller) ListDetectionsBySegmentDetection(ctx echo.Context) error {
	segmentID, err := int64Param(ctx, "segment_detection_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	list, err := c.managers.Detections.ListBySegmentDetection(ctx.Request().Context(), segmentID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}
