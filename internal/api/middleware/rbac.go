package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// RBAC enforces role-based access control on a route. The caller must
// hold at least one of the allowed roles; anyone authenticated but
// lacking them is rejected with a forbidden failure.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(CtxRoles).([]string)
			for _, r := range roles {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			return domain.Forbidden("access forbidden")
		}
	}
}
