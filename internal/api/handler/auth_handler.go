package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/api/metrics"
	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt,
		User:      result.User,
	})
}

// Logout discards the current session; the token stops working immediately.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, _ := c.Get("session_id").(string)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Renew extends the session another validity window and returns a new token.
//
// @Summary      Renew session
// @Tags         auth
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/renew [post]
func (h *AuthHandler) Renew(c echo.Context) error {
	sessionID, _ := c.Get("session_id").(string)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	result, err := h.authService.Renew(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt,
		User:      result.User,
	})
}
