package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetDashboard(ctx echo.Context) error {
	d, err := c.dashboard.Get(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (c *Controller) GetHome(ctx echo.Context) error {
	d, err := c.dashboard.Home(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (c *Controller) GetNavLinks(ctx echo.Context) error {
	links, err := c.dashboard.NavLinks(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, links)
}
