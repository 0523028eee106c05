package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/domain"
)

// initTaxonomyRoutes registers the taxonomy endpoints
func (c *Controller) initTaxonomyRoutes() {
	g := c.protected("/taxonomy")

	g.GET("", c.ListTaxonomies)
	g.POST("", c.CreateTaxonomy)
	g.GET("/by-id/:id", c.GetTaxonomyByID)
	g.DELETE("/by-id/:id", c.DeleteTaxonomyByID)
	g.GET("/:uuid", c.GetTaxonomy)
	g.PUT("/:uuid", c.UpdateTaxonomy)
	g.DELETE("/:uuid", c.DeleteTaxonomy)
}

func (c *Controller) ListTaxonomies(ctx echo.Context) error {
	taxonomies, err := c.managers.Taxonomies.List(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, taxonomies)
}

func (c *Controller) CreateTaxonomy(ctx echo.Context) error {
	var req domain.CreateTaxonomyRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	taxonomy, err := c.managers.Taxonomies.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, taxonomy)
}

func (c *Controller) GetTaxonomyByID(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	taxonomy, err := c.managers.Taxonomies.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, taxonomy)
}

func (c *Controller) GetTaxonomy(ctx echo.Context) error {
	taxonomy, err := c.managers.Taxonomies.GetByUUID(ctx.Request().Context(), ctx.Param("uuid"))
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, taxonomy)
}

// UpdateTaxonomy patches the label and parent of a taxonomy
func (c *Controller) UpdateTaxonomy(ctx echo.Context) error {
	var req domain.UpdateTaxonomyRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	taxonomy, err := c.managers.Taxonomies.UpdateByUUID(ctx.Request().Context(), ctx.Param("uuid"), &req)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, taxonomy)
}

func (c *Controller) DeleteTaxonomyByID(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	if err := c.managers.Taxonomies.DeleteByID(ctx.Request().Context(), id); err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}

func (c *Controller) DeleteTaxonomy(ctx echo.Context) error {
	if err := c.managers.Taxonomies.DeleteByUUID(ctx.Request().Context(), ctx.Param("uuid")); err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}
