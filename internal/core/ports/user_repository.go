package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// A taken email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail expects an already normalised email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindIdentity loads only the non-sensitive identity fields.
	FindIdentity(ctx context.Context, id string) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context) ([]*domain.User, error)
}
