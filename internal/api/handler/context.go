package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/api/middleware"
	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a populated role proves the middleware
// ran on this route.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Identity{ID: id, Role: role}, nil
}
