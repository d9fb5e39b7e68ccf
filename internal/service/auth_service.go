package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ShabiGardezi/crm-hunfa/internal/auth"
	"github.com/ShabiGardezi/crm-hunfa/internal/config"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// AuthService coordinates login and password flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates a user by user name and password.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*domain.User, domain.Token, error) {
	user, err := s.users.GetByUserName(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, domain.Token{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, domain.Token{}, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// Me reloads the caller's user record.
func (s *AuthService) Me(ctx context.Context, caller Caller) (*domain.User, error) {
	if caller.Identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	user, err := s.users.GetByID(ctx, caller.Identity.ID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "user", map[string]any{"user_id": caller.Identity.ID})
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, caller Caller, currentPassword, newPassword string) error {
	if caller.Identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	user, err := s.users.GetByID(ctx, caller.Identity.ID)
	if err != nil {
		return apperrors.NotFoundOr(err, "user", map[string]any{"user_id": caller.Identity.ID})
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return apperrors.MapError(s.users.UpdatePassword(ctx, user.ID, hash))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
