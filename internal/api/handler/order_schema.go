package handler

import (
	"time"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type clientRequest struct {
	Name       string `json:"name"        validate:"required"`
	Phone      string `json:"phone"       validate:"required"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Address    string `json:"address"     validate:"required"`
	PostalCode string `json:"postal_code" validate:"omitempty"`
}

type createOrderRequest struct {
	Type          string        `json:"type"           validate:"required,oneof=installation support removal"`
	Client        clientRequest `json:"client"         validate:"required"`
	ScheduledDate time.Time     `json:"scheduled_date" validate:"required"`
	Notes         string        `json:"notes"`
}

type acceptOrderRequest struct {
	TechnicianID string `json:"technician_id" validate:"required"`
	HelperID     string `json:"helper_id"`
}

type completeOrderRequest struct {
	CompletionNotes string `json:"completion_notes"`
	ExecutionTime   string `json:"execution_time"`
	EquipmentUsed   string `json:"equipment_used"`
}

type returnOrderRequest struct {
	Justification string `json:"justification" validate:"required"`
}

type reorderRequest struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=1"`
}

type orderResponse struct {
	Order *domain.ServiceOrder `json:"order"`
}

type orderListResponse struct {
	Orders []*domain.ServiceOrder `json:"orders"`
	Total  int                    `json:"total"`
}
