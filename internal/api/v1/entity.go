package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/domain"
)

// initEntityRoutes registers the entity endpoints
func (c *Controller) initEntityRoutes() {
	g := c.protected("/entity")

	g.GET("", c.ListEntities)
	g.POST("", c.CreateEntity)
	g.GET("/enabled", c.ListEnabledEntities)
	g.GET("/by-taxonomy/:taxonomy_id", c.ListEntitiesByTaxonomy)
	g.GET("/by-id/:id", c.GetEntityByID)
	g.DELETE("/by-id/:id", c.DeleteEntityByID)
	g.GET("/:uuid", c.GetEntity)
	g.PUT("/:uuid", c.UpdateEntity)
	g.DELETE("/:uuid", c.DeleteEntity)
}

// ListEntities returns all entities, enabled or not
func (c *Controller) ListEntities(ctx echo.Context) error {
	list, err := c.managers.Entities.List(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) ListEnabledEntities(ctx echo.Context) error {
	list, err := c.managers.Entities.ListEnabled(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

// ListEntitiesByTaxonomy returns the enabled entities of a taxonomy
func (c *Controller) ListEntitiesByTaxonomy(ctx echo.Context) error {
	taxonomyID, err := int64Param(ctx, "taxonomy_id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	list, err := c.managers.Entities.ListEnabledByTaxonomy(ctx.Request().Context(), taxonomyID)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) GetEntityByID(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	entity, err := c.managers.Entities.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *Controller) GetEntity(ctx echo.Context) error {
	entity, err := c.managers.Entities.GetByUUID(ctx.Request().Context(), ctx.Param("uuid"))
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *Controller) CreateEntity(ctx echo.Context) error {
	var req domain.CreateEntityRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	entity, err := c.managers.Entities.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *Controller) UpdateEntity(ctx echo.Context) error {
	var req domain.UpdateEntityRequest
	if err := c.bindJSON(ctx, &req); err != nil {
		return c.HandleError(ctx, err)
	}
	entity, err := c.managers.Entities.UpdateByUUID(ctx.Request().Context(), ctx.Param("uuid"), &req)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, entity)
}

func (c *Controller) DeleteEntityByID(ctx echo.Context) error {
	id, err := int64Param(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err)
	}
	if err := c.managers.Entities.DeleteByID(ctx.Request().Context(), id); err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}

// DeleteEntity removes an entity with its galleries. With ?soft=true the
// rows are only marked deleted.
func (c *Controller) DeleteEntity(ctx echo.Context) error {
	soft, err := softParam(ctx)
	if err != nil {
		return c.HandleError(ctx, err)
	}

	id := ctx.Param("uuid")
	reqCtx := ctx.Request().Context()
	if soft {
		err = c.managers.Entities.SoftDeleteByUUID(reqCtx, id)
	} else {
		err = c.managers.Entities.DeleteByUUID(reqCtx, id)
	}
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, nil)
}
