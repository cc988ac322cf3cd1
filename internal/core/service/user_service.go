package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
	"github.com/liketelecom/fieldservice/internal/core/state"
)

// UserService maintains the user roster. Records are never deleted; status
// toggling is the deactivation mechanism.
type UserService struct {
	state *state.AppState
	log   zerolog.Logger
}

func NewUserService(st *state.AppState, log zerolog.Logger) *UserService {
	return &UserService{state: st, log: log}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var created *domain.User
	err = s.state.Commit(ctx, func(tx *state.Tx) error {
		if tx.UserByEmail(input.Email) != nil {
			return domain.ErrEmailTaken
		}
		now := time.Now().UTC()
		user := &domain.User{
			ID:           uuid.NewString(),
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: string(hash),
			Role:         input.Role,
			Status:       domain.UserActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		tx.PutUser(user)
		created = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update applies admin edits. Empty input fields leave the record unchanged.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if input.Role != "" && !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	var hash string
	if input.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	var updated *domain.User
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		user := tx.User(input.UserID)
		if user == nil {
			return domain.ErrUserNotFound
		}
		if input.Email != "" && input.Email != user.Email {
			if tx.UserByEmail(input.Email) != nil {
				return domain.ErrEmailTaken
			}
			user.Email = input.Email
		}
		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Role != "" {
			user.Role = input.Role
		}
		if hash != "" {
			user.PasswordHash = hash
		}
		user.UpdatedAt = time.Now().UTC()
		updated = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) SetStatus(ctx context.Context, userID, status string) (*domain.User, error) {
	if status != domain.UserActive && status != domain.UserInactive {
		return nil, fmt.Errorf("%w: status must be active or inactive", domain.ErrValidation)
	}

	var updated *domain.User
	err := s.state.Commit(ctx, func(tx *state.Tx) error {
		user := tx.User(userID)
		if user == nil {
			return domain.ErrUserNotFound
		}
		user.Status = status
		user.UpdatedAt = time.Now().UTC()
		updated = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("status", status).Msg("user status changed")
	return updated, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	var user *domain.User
	s.state.View(func(v *state.View) {
		user = v.User(userID)
	})
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, activeOnly bool) ([]*domain.User, error) {
	var users []*domain.User
	s.state.View(func(v *state.View) {
		for _, u := range v.Users() {
			if activeOnly && u.Status != domain.UserActive {
				continue
			}
			users = append(users, u)
		}
	})
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

// Bootstrap seeds a default admin when the roster is empty, so a fresh
// deployment is reachable.
func (s *UserService) Bootstrap(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var empty bool
	s.state.View(func(v *state.View) {
		empty = len(v.Users()) == 0
	})
	if !empty {
		return nil
	}

	if _, err := s.Create(ctx, ports.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
