package ports

import (
	"context"
	"time"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// ClientInput holds the customer contact details for a new order.
type ClientInput struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	PostalCode string
}

// CreateOrderInput carries all data needed to open a new service order.
type CreateOrderInput struct {
	Type          domain.OrderType
	Client        ClientInput
	ScheduledDate time.Time
	Notes         string
	// CreatedBy is the id of the attendant or admin opening the order.
	CreatedBy string
}

// AcceptOrderInput assigns a pending order to a crew.
type AcceptOrderInput struct {
	OrderID      string
	TechnicianID string
	// HelperID is optional; empty means the technician works alone.
	HelperID string
}

// CompleteOrderInput carries the free-text completion report.
type CompleteOrderInput struct {
	OrderID         string
	CompletionNotes string
	ExecutionTime   string
	EquipmentUsed   string
}

// ListOrdersInput carries the optional equality filters and the viewer
// identity used for role-aware projection.
type ListOrdersInput struct {
	Status     domain.OrderStatus // optional
	Type       domain.OrderType   // optional
	AssignedTo string             // optional
	ViewerID   string
	ViewerRole string
}

// OrderService defines the order lifecycle use cases.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.ServiceOrder, error)
	Accept(ctx context.Context, input AcceptOrderInput) (*domain.ServiceOrder, error)
	Complete(ctx context.Context, input CompleteOrderInput) (*domain.ServiceOrder, error)
	ReturnToPending(ctx context.Context, orderID, justification string) (*domain.ServiceOrder, error)
	// Reorder assigns priority = position+1 to the listed pending orders.
	// Pending orders not listed keep their relative order after the listed ones.
	Reorder(ctx context.Context, orderedIDs []string) ([]*domain.ServiceOrder, error)
	// NextPending returns the head of the pending queue, or nil when the
	// queue is empty.
	NextPending(ctx context.Context) (*domain.ServiceOrder, error)
	Get(ctx context.Context, orderID string) (*domain.ServiceOrder, error)
	List(ctx context.Context, input ListOrdersInput) ([]*domain.ServiceOrder, error)
}
