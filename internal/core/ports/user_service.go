package ports

import (
	"context"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// CreateUserInput carries the fields for a new user record.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries admin edits; empty fields are left unchanged.
type UpdateUserInput struct {
	UserID   string
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService manages the user roster. All operations are admin-only; the
// capability check happens at the call site.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	// SetStatus activates or deactivates a user. Users are never deleted.
	SetStatus(ctx context.Context, userID, status string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	// List returns users, optionally restricted to active ones.
	List(ctx context.Context, activeOnly bool) ([]*domain.User, error)
}
