package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/logger"
)

type createIndicatorResponse struct {
	Success   bool               `json:"success"`
	Indicator *domain.Indicator  `json:"indicator"`
	Sync      *domain.ItemResult `json:"sync"`
}

func (c *Controller) ListIndicators(ctx echo.Context) error {
	list, err := c.catalog.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) GetIndicator(ctx echo.Context) error {
	ind, err := c.catalog.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ind)
}

// CreateIndicator adds the indicator and syncs it right away. A failed sync
// does not undo the creation.
func (c *Controller) CreateIndicator(ctx echo.Context) error {
	ind := new(domain.Indicator)
	if err := ctx.Bind(ind); err != nil {
		return err
	}
	if err := ctx.Validate(ind); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	if err := c.catalog.Create(reqCtx, ind); err != nil {
		return err
	}

	res := c.sync.ProcessOne(reqCtx, ind.ID)
	if !res.Success {
		logger.Warnf(reqCtx, "auto-sync of new indicator %s failed: %s", ind.ID, res.Error)
	}
	c.dashboard.Invalidate()

	return ctx.JSON(http.StatusCreated, createIndicatorResponse{Success: true, Indicator: ind, Sync: res})
}

func (c *Controller) UpdateIndicator(ctx echo.Context) error {
	var upd domain.IndicatorUpdate
	if err := ctx.Bind(&upd); err != nil {
		return err
	}

	ind, err := c.catalog.Update(ctx.Request().Context(), ctx.Param("id"), upd)
	if err != nil {
		return err
	}
	c.dashboard.Invalidate()

	return ctx.JSON(http.StatusOK, ind)
}

func (c *Controller) DeleteIndicator(ctx echo.Context) error {
	if err := c.catalog.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	c.dashboard.Invalidate()

	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}
