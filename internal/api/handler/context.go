package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/api/middleware"
	"github.com/gigboard/marketplace/internal/core/domain"
)

// identity is the caller as asserted by the bearer token.
type identity struct {
	ID   string
	Name string
	Role domain.Role
}

// ctxIdentity extracts the claims injected by the Auth middleware. An empty
// account id or unknown role means the middleware did not run, so the
// request is rejected before any service call.
func ctxIdentity(c echo.Context) (identity, error) {
	id, _ := c.Get(middleware.CtxAccountID).(string)
	name, _ := c.Get(middleware.CtxName).(string)
	role, _ := c.Get(middleware.CtxRole).(string)

	if id == "" || !domain.Role(role).Valid() {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity{ID: id, Name: name, Role: domain.Role(role)}, nil
}
