package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/techacademy/user-management-api/internal/api/middleware"
	"github.com/techacademy/user-management-api/internal/core/domain"
)

// callerID extracts the authenticated principal's id injected by the
// Auth middleware. An empty id means the middleware never ran, which on
// a protected route is an authentication failure, not a server bug.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", domain.Unauthorized("missing authentication claims")
	}
	return id, nil
}
