package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// UserService exposes profile operations.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
