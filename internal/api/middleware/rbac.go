package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// Require enforces that the authenticated role holds the given capability.
// Must run after Auth, which injects the role claim.
func Require(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.RoleCan(role, capability) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
