package domain

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of a service order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusExecuting OrderStatus = "executing"
	StatusCompleted OrderStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
// Completed is terminal; executing may fall back to pending (return-to-queue).
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusExecuting},
	StatusExecuting: {StatusCompleted, StatusPending},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderType classifies the work a service order requests. Each type carries
// a fixed point value awarded to the crew on completion.
type OrderType string

const (
	TypeInstallation OrderType = "installation"
	TypeSupport      OrderType = "support"
	TypeRemoval      OrderType = "removal"
)

var orderPoints = map[OrderType]int{
	TypeInstallation: 5,
	TypeSupport:      3,
	TypeRemoval:      2,
}

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	_, ok := orderPoints[t]
	return ok
}

// Points returns the point value awarded for completing an order of this type.
// Unknown types are worth nothing.
func (t OrderType) Points() int {
	return orderPoints[t]
}

// Client is the customer a service order is opened for.
type Client struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code,omitempty"`
}

// ServiceOrder is the core aggregate root.
type ServiceOrder struct {
	ID     string      `json:"id"`
	Type   OrderType   `json:"type"`
	Client Client      `json:"client"`
	Status OrderStatus `json:"status"`
	// Priority orders the pending queue: lower value is served first.
	// It is only meaningful while Status is pending.
	Priority        int        `json:"priority"`
	CreatedAt       time.Time  `json:"created_at"`
	ScheduledDate   time.Time  `json:"scheduled_date"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	CreatedBy       string     `json:"created_by"`
	AssignedTo      string     `json:"assigned_to,omitempty"`
	Helper          string     `json:"helper,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
	ExecutionTime   string     `json:"execution_time,omitempty"`
	EquipmentUsed   string     `json:"equipment_used,omitempty"`
	Justification   string     `json:"justification,omitempty"`
}

// Clone returns an independent copy of the order.
func (o *ServiceOrder) Clone() *ServiceOrder {
	clone := *o
	clone.StartedAt = cloneTime(o.StartedAt)
	clone.CompletedAt = cloneTime(o.CompletedAt)
	clone.ReturnedAt = cloneTime(o.ReturnedAt)
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// MonthKey returns the point-ledger bucket for t, e.g. "2026-8" for
// September 2026. The month component is zero-based, matching the ledger
// format carried over from the original snapshot files.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month())-1)
}
