package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/vetclinic-api/internal/model"
	"github.com/jwalitptl/vetclinic-api/internal/repository"
	"github.com/jwalitptl/vetclinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
	"github.com/jwalitptl/vetclinic-api/pkg/security"
)

type AuthServicer interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*model.Principal, error)
	Me(ctx context.Context, p *model.Principal) (*model.User, error)
}

type Service struct {
	users  repository.UserRepository
	tokens auth.TokenService
	hasher security.PasswordHasher
	now    func() time.Time
}

func NewService(users repository.UserRepository, tokens auth.TokenService, hasher security.PasswordHasher) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		now:    time.Now,
	}
}

// Login checks the operator's credentials and issues a session token. Unknown
// emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if apperrors.Is(err, apperrors.ErrNotFound) {
		log.Info().Str("email", req.Email).Msg("login with unknown email")
		return nil, apperrors.Unauthorized(model.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			log.Info().Int64("user_id", user.ID).Msg("login with wrong password")
			return nil, apperrors.Unauthorized(model.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &model.LoginResponse{
		Token:     token,
		ExpiresIn: int64(expiresAt.Sub(now).Seconds()),
		User:      user,
	}, nil
}

func (s *Service) Authenticate(_ context.Context, token string) (*model.Principal, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims.Principal(), nil
}

func (s *Service) Me(ctx context.Context, p *model.Principal) (*model.User, error) {
	if p == nil {
		return nil, apperrors.Unauthorized(model.ErrInvalidToken)
	}
	user, err := s.users.Get(ctx, p.UserID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthorized(model.ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
