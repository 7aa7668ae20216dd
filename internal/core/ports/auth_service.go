package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// AuthService handles registration, login and credential changes.
type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// IdentityResolver turns a verified user id into the request identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (*domain.Identity, error)
}
