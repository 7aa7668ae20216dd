package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	cache  ports.IdentityCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.IdentityCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's account and drops
// the cached identity so renamed users are seen on the next request.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, domain.ErrInvalidUpdates
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("identity cache invalidation failed")
		}
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}
