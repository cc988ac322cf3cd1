package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

// UserHandler handles the admin roster endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=admin attendant technician helper"`
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin attendant technician helper"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Total int            `json:"total"`
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), ports.UpdateUserInput{
		UserID:   c.Param("id"),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// SetStatus handles PATCH /v1/users/:id/status.
//
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id}/status [patch]
func (h *UserHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Restrict to active users"
// @Success      200     {object}  userListResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	users, err := h.service.List(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users, Total: len(users)})
}
