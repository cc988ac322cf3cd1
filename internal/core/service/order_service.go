package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
	"github.com/liketelecom/fieldservice/internal/core/state"
)

// OrderService owns the order lifecycle: creation, the pending priority
// queue, acceptance, completion with point accrual, and return-to-queue.
type OrderService struct {
	state    *state.AppState
	calendar ports.Calendar
	log      zerolog.Logger
}

func NewOrderService(st *state.AppState, calendar ports.Calendar, log zerolog.Logger) *OrderService {
	return &OrderService{state: st, calendar: calendar, log: log}
}

// Create opens a new order at the back of the pending queue.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.ServiceOrder, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrValidation, input.Type)
	}
	if input.Client.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", domain.ErrValidation)
	}
	if input.Client.Phone == "" {
		return nil, fmt.Errorf("%w: client phone is required", domain.ErrValidation)
	}
	if input.Client.Address == "" {
		return nil, fmt.Errorf("%w: client address is required", domain.ErrValidation)
	}
	if s.calendar.IsBlockedDate(input.ScheduledDate) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBlockedDate, input.ScheduledDate.Format("2006-01-02"))
	}

	var created *domain.ServiceOrder
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		now := time.Now().UTC()
		order := &domain.ServiceOrder{
			ID:   uuid.NewString(),
			Type: input.Type,
			Client: domain.Client{
				Name:       input.Client.Name,
				Phone:      input.Client.Phone,
				Email:      input.Client.Email,
				Address:    input.Client.Address,
				PostalCode: input.Client.PostalCode,
			},
			Status:        domain.StatusPending,
			Priority:      nextPriority(tx.Orders(), ""),
			CreatedAt:     now,
			ScheduledDate: input.ScheduledDate,
			CreatedBy:     input.CreatedBy,
			Notes:         input.Notes,
		}
		tx.PutOrder(order)
		created = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", created.ID).
		Str("type", string(created.Type)).
		Int("priority", created.Priority).
		Str("created_by", created.CreatedBy).
		Msg("order created")
	return created, nil
}

// Accept assigns a pending order to a technician, optionally with a helper,
// and moves it to executing. Any pending order may be accepted, not just the
// head of the queue; whether callers restrict themselves to the head is a
// policy of the calling surface.
func (s *OrderService) Accept(ctx context.Context, input ports.AcceptOrderInput) (*domain.ServiceOrder, error) {
	var accepted *domain.ServiceOrder
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		order := tx.Order(input.OrderID)
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.Status.CanTransitionTo(domain.StatusExecuting) {
			return fmt.Errorf("%w: cannot accept order in status %s", domain.ErrInvalidTransition, order.Status)
		}
		if tx.User(input.TechnicianID) == nil {
			return fmt.Errorf("%w: technician %s", domain.ErrUserNotFound, input.TechnicianID)
		}
		if input.HelperID != "" && tx.User(input.HelperID) == nil {
			return fmt.Errorf("%w: helper %s", domain.ErrUserNotFound, input.HelperID)
		}

		now := time.Now().UTC()
		order.Status = domain.StatusExecuting
		order.AssignedTo = input.TechnicianID
		order.Helper = input.HelperID
		order.StartedAt = &now
		accepted = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", accepted.ID).
		Str("technician", accepted.AssignedTo).
		Str("helper", accepted.Helper).
		Msg("order accepted")
	return accepted, nil
}

// Complete finishes an executing order, records the completion report, and
// credits the order type's point value to the technician's current-month
// bucket, and identically to the helper's when one is assigned.
func (s *OrderService) Complete(ctx context.Context, input ports.CompleteOrderInput) (*domain.ServiceOrder, error) {
	var completed *domain.ServiceOrder
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		order := tx.Order(input.OrderID)
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.Status.CanTransitionTo(domain.StatusCompleted) {
			return fmt.Errorf("%w: cannot complete order in status %s", domain.ErrInvalidTransition, order.Status)
		}

		now := time.Now().UTC()
		order.Status = domain.StatusCompleted
		order.CompletedAt = &now
		order.CompletionNotes = input.CompletionNotes
		order.ExecutionTime = input.ExecutionTime
		order.EquipmentUsed = input.EquipmentUsed

		bucket := domain.MonthKey(now)
		pts := order.Type.Points()
		if tech := tx.User(order.AssignedTo); tech != nil {
			tech.AddPoints(bucket, pts)
		}
		if order.Helper != "" {
			if helper := tx.User(order.Helper); helper != nil {
				helper.AddPoints(bucket, pts)
			}
		}
		completed = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", completed.ID).
		Str("technician", completed.AssignedTo).
		Int("points", completed.Type.Points()).
		Msg("order completed")
	return completed, nil
}

// ReturnToPending sends an executing order back to the end of the pending
// queue. The crew assignment is cleared and the justification recorded; the
// order never keeps its old queue position.
func (s *OrderService) ReturnToPending(ctx context.Context, orderID, justification string) (*domain.ServiceOrder, error) {
	if justification == "" {
		return nil, fmt.Errorf("%w: justification is required", domain.ErrValidation)
	}

	var returned *domain.ServiceOrder
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		order := tx.Order(orderID)
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !order.Status.CanTransitionTo(domain.StatusPending) {
			return fmt.Errorf("%w: cannot return order in status %s", domain.ErrInvalidTransition, order.Status)
		}

		now := time.Now().UTC()
		order.Status = domain.StatusPending
		order.Priority = nextPriority(tx.Orders(), order.ID)
		order.AssignedTo = ""
		order.Helper = ""
		order.ReturnedAt = &now
		order.Justification = justification
		returned = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", returned.ID).
		Int("priority", returned.Priority).
		Str("justification", justification).
		Msg("order returned to queue")
	return returned, nil
}

// Reorder rewrites the pending queue: the listed orders get priority 1..n in
// the order given. Pending orders not listed keep their relative order after
// the listed ones. Duplicate ids, unknown ids, and ids of non-pending orders
// are rejected.
func (s *OrderService) Reorder(ctx context.Context, orderedIDs []string) ([]*domain.ServiceOrder, error) {
	var result []*domain.ServiceOrder
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		pending := pendingOrders(tx.Orders())
		byID := make(map[string]*domain.ServiceOrder, len(pending))
		for _, o := range pending {
			byID[o.ID] = o
		}

		seen := make(map[string]struct{}, len(orderedIDs))
		for _, id := range orderedIDs {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate order id %s", domain.ErrValidation, id)
			}
			seen[id] = struct{}{}
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("%w: order %s is not in the pending queue", domain.ErrValidation, id)
			}
		}

		for i, id := range orderedIDs {
			byID[id].Priority = i + 1
		}

		// Unlisted pending orders follow, keeping their previous relative order.
		var rest []*domain.ServiceOrder
		for _, o := range pending {
			if _, listed := seen[o.ID]; !listed {
				rest = append(rest, o)
			}
		}
		sortPendingQueue(rest)
		for i, o := range rest {
			o.Priority = len(orderedIDs) + i + 1
		}

		result = make([]*domain.ServiceOrder, 0, len(pending))
		for _, o := range pending {
			result = append(result, o.Clone())
		}
		sortPendingQueue(result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("queue_size", len(result)).Msg("pending queue reordered")
	return result, nil
}

// NextPending returns the head of the pending queue, or nil when the queue
// is empty. Priority is unique by construction; ties are still broken by
// creation time and id so the head stays deterministic.
func (s *OrderService) NextPending(ctx context.Context) (*domain.ServiceOrder, error) {
	var head *domain.ServiceOrder
	s.state.View(func(v *state.View) {
		head = headOfQueue(v.Orders())
	})
	return head, nil
}

// Get returns a single order by id.
func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.ServiceOrder, error) {
	var order *domain.ServiceOrder
	s.state.View(func(v *state.View) {
		order = v.Order(orderID)
	})
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// List returns the role-aware, sorted order projection.
//
// Technicians see their own orders plus the current head of the pending
// queue, so they always see what they are entitled to claim next. Helpers
// see only orders they are assigned to as helper.
func (s *OrderService) List(ctx context.Context, input ports.ListOrdersInput) ([]*domain.ServiceOrder, error) {
	var result []*domain.ServiceOrder
	s.state.View(func(v *state.View) {
		all := v.Orders()

		var base []*domain.ServiceOrder
		switch input.ViewerRole {
		case domain.RoleTechnician:
			for _, o := range all {
				if o.AssignedTo == input.ViewerID && matchesFilters(o, input) {
					base = append(base, o)
				}
			}
			// The head of the queue is always visible, even when the
			// status/type filters would drop it.
			if head := headOfQueue(all); head != nil {
				present := false
				for _, o := range base {
					if o.ID == head.ID {
						present = true
						break
					}
				}
				if !present {
					base = append(base, head)
				}
			}
		case domain.RoleHelper:
			for _, o := range all {
				if o.Helper == input.ViewerID && matchesFilters(o, input) {
					base = append(base, o)
				}
			}
		default:
			for _, o := range all {
				if matchesFilters(o, input) {
					base = append(base, o)
				}
			}
		}

		sortOrderView(base)
		result = base
	})
	return result, nil
}

func matchesFilters(o *domain.ServiceOrder, input ports.ListOrdersInput) bool {
	if input.Status != "" && o.Status != input.Status {
		return false
	}
	if input.Type != "" && o.Type != input.Type {
		return false
	}
	if input.AssignedTo != "" && o.AssignedTo != input.AssignedTo {
		return false
	}
	return true
}

// sortOrderView applies the two-tier ordering: two pending orders compare by
// priority ascending, every other pair by creation time descending.
func sortOrderView(orders []*domain.ServiceOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.Status == domain.StatusPending && b.Status == domain.StatusPending {
			return a.Priority < b.Priority
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func pendingOrders(orders []*domain.ServiceOrder) []*domain.ServiceOrder {
	var pending []*domain.ServiceOrder
	for _, o := range orders {
		if o.Status == domain.StatusPending {
			pending = append(pending, o)
		}
	}
	return pending
}

// sortPendingQueue orders pending orders by priority, breaking ties by
// creation time and then id.
func sortPendingQueue(orders []*domain.ServiceOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func headOfQueue(orders []*domain.ServiceOrder) *domain.ServiceOrder {
	pending := pendingOrders(orders)
	if len(pending) == 0 {
		return nil
	}
	sortPendingQueue(pending)
	return pending[0]
}

// nextPriority computes the back-of-queue priority: one past the highest
// priority among pending orders, skipping excludeID.
func nextPriority(orders []*domain.ServiceOrder, excludeID string) int {
	max := 0
	for _, o := range orders {
		if o.Status != domain.StatusPending || o.ID == excludeID {
			continue
		}
		if o.Priority > max {
			max = o.Priority
		}
	}
	return max + 1
}
