package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/api/metrics"
	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

// OrderHandler handles HTTP requests for order lifecycle operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Open a new service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		Type: domain.OrderType(req.Type),
		Client: ports.ClientInput{
			Name:       req.Client.Name,
			Phone:      req.Client.Phone,
			Email:      req.Client.Email,
			Address:    req.Client.Address,
			PostalCode: req.Client.PostalCode,
		},
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
		CreatedBy:     userID,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Type)).Inc()
	return c.JSON(http.StatusCreated, orderResponse{Order: order})
}

// Accept handles POST /v1/orders/:id/accept.
//
// @Summary      Accept a pending order for execution
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      acceptOrderRequest  true  "Crew assignment"
// @Success      200   {object}  orderResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/orders/{id}/accept [post]
func (h *OrderHandler) Accept(c echo.Context) error {
	var req acceptOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.service.Accept(c.Request().Context(), ports.AcceptOrderInput{
		OrderID:      c.Param("id"),
		TechnicianID: req.TechnicianID,
		HelperID:     req.HelperID,
	})
	if err != nil {
		return err
	}

	metrics.OrdersAcceptedTotal.Inc()
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}

// Complete handles POST /v1/orders/:id/complete.
//
// @Summary      Complete an executing order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Order id"
// @Param        body  body      completeOrderRequest  true  "Completion report"
// @Success      200   {object}  orderResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c echo.Context) error {
	var req completeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	order, err := h.service.Complete(c.Request().Context(), ports.CompleteOrderInput{
		OrderID:         c.Param("id"),
		CompletionNotes: req.CompletionNotes,
		ExecutionTime:   req.ExecutionTime,
		EquipmentUsed:   req.EquipmentUsed,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCompletedTotal.WithLabelValues(string(order.Type)).Inc()
	metrics.PointsAwardedTotal.WithLabelValues(domain.RoleTechnician).Add(float64(order.Type.Points()))
	if order.Helper != "" {
		metrics.PointsAwardedTotal.WithLabelValues(domain.RoleHelper).Add(float64(order.Type.Points()))
	}
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}

// Return handles POST /v1/orders/:id/return.
//
// @Summary      Return an executing order to the pending queue
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      returnOrderRequest  true  "Justification"
// @Success      200   {object}  orderResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders/{id}/return [post]
func (h *OrderHandler) Return(c echo.Context) error {
	var req returnOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.service.ReturnToPending(c.Request().Context(), c.Param("id"), req.Justification)
	if err != nil {
		return err
	}

	metrics.OrdersReturnedTotal.Inc()
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}

// Reorder handles PUT /v1/orders/priorities.
//
// @Summary      Rewrite the pending queue order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reorderRequest  true  "Order ids in the desired queue order"
// @Success      200   {object}  orderListResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders/priorities [put]
func (h *OrderHandler) Reorder(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	orders, err := h.service.Reorder(c.Request().Context(), req.OrderIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders, Total: len(orders)})
}

// Next handles GET /v1/orders/next.
//
// @Summary      Peek the head of the pending queue
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/next [get]
func (h *OrderHandler) Next(c echo.Context) error {
	order, err := h.service.NextPending(c.Request().Context())
	if err != nil {
		return err
	}
	if order == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "pending queue is empty"})
	}
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get a single order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderResponse{Order: order})
}

// List handles GET /v1/orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"
// @Param        type         query     string  false  "Filter by order type"
// @Param        assigned_to  query     string  false  "Filter by assigned technician id"
// @Success      200          {object}  orderListResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.Request().Context(), ports.ListOrdersInput{
		Status:     domain.OrderStatus(c.QueryParam("status")),
		Type:       domain.OrderType(c.QueryParam("type")),
		AssignedTo: c.QueryParam("assigned_to"),
		ViewerID:   userID,
		ViewerRole: role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders, Total: len(orders)})
}
