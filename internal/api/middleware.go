package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/utils"
)

const bearerPrefix = "Bearer "

// AdminMiddleware requires a token signed with the admin secret, taken from the
// admin cookie or a bearer header. An empty secret turns the check off.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if svc.adminSecret == "" {
			return next(ctx)
		}

		raw := ""
		if cookie, err := ctx.Cookie(constants.CookieKeySecretToken); err == nil {
			raw = cookie.Value
		} else if h := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, bearerPrefix) {
			raw = strings.TrimPrefix(h, bearerPrefix)
		}
		if raw == "" {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(raw, svc.adminSecret)
		if err != nil {
			return err
		}
		if token.Admin == "" {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

// RequestIDMiddleware tags the request context with an id for log correlation.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithFields(req.Context(), constants.CtxKeyRequestID, id)))
		return next(c)
	}
}
