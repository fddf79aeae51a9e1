package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiva-srivastav/zest-products/internal/auth"
	"github.com/shiva-srivastav/zest-products/internal/domain"
	"github.com/shiva-srivastav/zest-products/internal/event"
	"github.com/shiva-srivastav/zest-products/internal/repository"
	apperrors "github.com/shiva-srivastav/zest-products/pkg/errors"
)

const bcryptCost = 12

// AuthService implements registration, login, token refresh, and logout.
type AuthService struct {
	users         repository.UserRepository
	tokens        repository.RefreshTokenRepository
	jwt           *auth.JWTManager
	refreshExpiry time.Duration
	events        *event.Producer
	logger        *slog.Logger
}

// NewAuthService creates a new auth service. The event producer may be nil,
// in which case no events are published.
func NewAuthService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	jwtManager *auth.JWTManager,
	refreshExpiry time.Duration,
	events *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		jwt:           jwtManager,
		refreshExpiry: refreshExpiry,
		events:        events,
		logger:        logger,
	}
}

// RegisterInput holds the fields for a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Register creates a new account and signs it in, returning the same token
// pair a login would. The username is checked before the email, so a request
// colliding on both reports the username conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.AuthResult, error) {
	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperrors.DuplicateUsername(in.Username)
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperrors.DuplicateEmail(in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         domain.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID),
	)

	if s.events != nil {
		if err := s.events.PublishUserRegistered(ctx, user); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish user.registered event",
				slog.String("error", err.Error()),
			)
		}
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a new token pair. Unknown usernames,
// disabled accounts, and wrong passwords all fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.Enabled {
		return nil, apperrors.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
	)

	return result, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The presented
// token is always rotated; an expired token is removed on detection.
func (s *AuthService) Refresh(ctx context.Context, token string) (*domain.AuthResult, error) {
	stored, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.TokenNotFound()
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	if stored.Expired(time.Now().UTC()) {
		if err := s.tokens.Delete(ctx, stored.Token); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete expired refresh token",
				slog.String("error", err.Error()),
			)
		}
		return nil, apperrors.TokenExpired()
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.TokenNotFound()
		}
		return nil, fmt.Errorf("get user for refresh: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout removes the refresh token for the given user. It succeeds even when
// no token exists.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get user for logout: %w", err)
	}

	if err := s.tokens.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("username", username),
	)

	return nil
}

// ValidateAccessToken exposes token validation for the HTTP auth middleware.
func (s *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	return s.jwt.ValidateAccessToken(token)
}

// issueTokens generates an access token and rotates the refresh token,
// replacing any existing row for the user in one transaction.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.Username, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := auth.NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(s.refreshExpiry)
	if err := s.tokens.Replace(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwt.AccessExpiry().Seconds()),
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Roles:        []string{user.Role.String()},
	}, nil
}
