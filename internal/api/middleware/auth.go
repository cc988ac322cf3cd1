package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// SessionChecker verifies that a session id still refers to a live session.
// Logout and expiry invalidate tokens before their exp claim runs out.
type SessionChecker interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
}

// Auth validates the bearer token, confirms the session is still alive, and
// injects the identity claims into the request context.
func Auth(jwtSecret string, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sessionID, _ := claims["sid"].(string)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if _, err := sessions.Get(c.Request().Context(), sessionID); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set("session_id", sessionID)
			c.Set("user_id", claims["user_id"])
			c.Set("role", claims["role"])

			return next(c)
		}
	}
}
