package ports

import (
	"context"

	"github.com/careerconnect/jobboard/internal/core/domain"
)

// IdentityCache keeps recently resolved identities close to the auth
// middleware. A miss returns (nil, nil).
type IdentityCache interface {
	Get(ctx context.Context, userID string) (*domain.Identity, error)
	Set(ctx context.Context, identity *domain.Identity) error
	Invalidate(ctx context.Context, userID string) error
}
