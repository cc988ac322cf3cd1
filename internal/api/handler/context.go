package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// fast-fails before any service call: both values being present proves the
// middleware ran for this route.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
