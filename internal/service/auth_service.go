package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const passwordResetPrefix = "pwreset:"

// AuthService coordinates registration and login flows. Password reset
// tokens live in Redis with a TTL, so expiry needs no sweeper.
type AuthService struct {
	users      repository.UserRepository
	redis      *persistence.Redis
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, redisStore *persistence.Redis) *AuthService {
	return &AuthService{
		users:      users,
		redis:      redisStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   30 * time.Minute,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new requester account.
func (s *AuthService) Register(ctx context.Context, displayName, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		DisplayName:  strings.TrimSpace(displayName),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// EnsureSeedAdmin creates the configured bootstrap admin account when no
// account with that email exists yet. A fresh deployment has no other way
// to obtain an ADMIN role, Register only hands out USER.
func (s *AuthService) EnsureSeedAdmin(ctx context.Context, seed config.SeedConfig) (*domain.User, error) {
	if !seed.Enabled() {
		return nil, nil
	}
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(seed.AdminPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	admin := &domain.User{
		DisplayName:  strings.TrimSpace(seed.AdminName),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("account suspended")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// RequestPasswordReset stores a one-time token. The token is returned so
// the caller can hand it to the mailer; unknown emails return success to
// avoid account enumeration.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	token := uuid.NewString()
	if err := s.redis.Client.Set(ctx, passwordResetPrefix+token, user.ID, s.resetTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ConfirmPasswordReset consumes the token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	key := passwordResetPrefix + token
	userID, err := s.redis.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.NewValidationError("token expired or unknown", nil)
		}
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.redis.Client.Del(ctx, key).Err()
}
