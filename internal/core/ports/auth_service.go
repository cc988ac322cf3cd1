package ports

import (
	"context"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

// AuthService authenticates users and manages their sessions.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// Renew extends the session another full validity window and returns a
	// fresh token.
	Renew(ctx context.Context, sessionID string) (*LoginResult, error)
}

// SessionStore holds ephemeral sessions, keyed by session id.
type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound when the id is unknown.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
