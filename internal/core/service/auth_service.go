package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerconnect/jobboard/internal/core/domain"
	"github.com/careerconnect/jobboard/internal/core/ports"
)

// Compared against when the email is unknown so both login failures cost a
// bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService implements registration, login and password changes.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	cache  ports.IdentityCache
	cost   int
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, cache ports.IdentityCache, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cache: cache, cost: bcrypt.DefaultCost, logger: logger}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	if err := reg.Validate(); err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        domain.NormalizeEmail(reg.Email),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Role:         reg.Role,
		Location:     strings.TrimSpace(reg.Location),
		Profile:      reg.Profile,
		Company:      reg.Company,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword rehashes the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := domain.ValidatePassword(next); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// Resolve implements ports.IdentityResolver: cache first, then the store.
func (s *AuthService) Resolve(ctx context.Context, userID string) (*domain.Identity, error) {
	if s.cache != nil {
		id, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("identity cache read failed")
		} else if id != nil {
			return id, nil
		}
	}

	id, err := s.repo.FindIdentity(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("identity cache write failed")
		}
	}
	return id, nil
}
