package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/meeting-coordinator/internal/persistence"
)

// ProfileStore exposes user profile operations needed by the user service.
type ProfileStore interface {
	GetUser(ctx context.Context, id string) (persistence.User, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// UserService serves profile lookups and presence updates.
type UserService struct {
	users  ProfileStore
	logger *slog.Logger
}

// NewUserService wires dependencies for user profile operations.
func NewUserService(users ProfileStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: defaultLogger(logger)}
}

// GetUser retrieves a user profile by id.
func (s *UserService) GetUser(ctx context.Context, id string) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("profile store not configured")
	}

	user, err := s.users.GetUser(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return userFromPersistence(user), nil
}

// UpdateStatus sets the presence status on the principal's own profile.
func (s *UserService) UpdateStatus(ctx context.Context, principal Principal, status string) error {
	if s == nil || s.users == nil {
		return fmt.Errorf("profile store not configured")
	}
	if principal.UserID == "" {
		return ErrUnauthorized
	}

	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		vErr := &ValidationError{}
		vErr.add("status", "status is required")
		return vErr
	}

	logger := serviceLogger(ctx, s.logger, "UserService", "UpdateStatus", "user_id", principal.UserID)

	if err := s.users.UpdateStatus(ctx, principal.UserID, trimmed); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "status update failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "status updated", "status", trimmed)
	return nil
}
