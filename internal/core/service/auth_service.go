package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
	"github.com/liketelecom/fieldservice/internal/core/state"
)

// AuthService authenticates users against their stored bcrypt hash and
// manages the session lifecycle. Sessions are valid for a fixed window from
// login or last renewal.
type AuthService struct {
	state      *state.AppState
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(st *state.AppState, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	return &AuthService{
		state:      st,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var user *domain.User
	s.state.View(func(v *state.View) {
		user = v.UserByEmail(email)
	})
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != domain.UserActive {
		return nil, domain.ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		LoginTime: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &ports.LoginResult{Token: token, Session: session, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("logout")
	return nil
}

// Renew extends the session a full validity window from now and returns a
// fresh token. Expired sessions cannot be renewed.
func (s *AuthService) Renew(ctx context.Context, sessionID string) (*ports.LoginResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if session.Expired(now) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionExpired
	}

	var user *domain.User
	s.state.View(func(v *state.View) {
		user = v.User(session.UserID)
	})
	if user == nil || user.Status != domain.UserActive {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrUserInactive
	}

	session.ExpiresAt = now.Add(s.sessionTTL)
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, Session: session, User: user}, nil
}

func (s *AuthService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":     session.ID,
		"user_id": session.UserID,
		"role":    session.Role,
		"exp":     session.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
