package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/encoding"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
	"github.com/klwxsrx/go-storefront/pkg/log"
	pkgtime "github.com/klwxsrx/go-storefront/pkg/time"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid or expired")
)

type (
	AccessTokens interface {
		Issue(subject, username string, roles []string) (string, time.Time, error)
		Parse(token string) (*auth.Claims, error)
	}

	TokenPair struct {
		AccessToken  string
		RefreshToken domain.RefreshToken
	}

	LoginResult struct {
		Tokens TokenPair
		User   domain.User
	}

	Authentication interface {
		auth.Provider[Principal]
		Login(ctx context.Context, username, password string) (*LoginResult, error)
		// Refresh exchanges a refresh token for a new pair; the old refresh token stops working.
		Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
		Logout(ctx context.Context, refreshToken string) error
		PruneRefreshTokens(ctx context.Context) error
	}

	authenticationService struct {
		users           domain.UserRepo
		refreshTokens   domain.RefreshTokenRepo
		accessTokens    AccessTokens
		passwordEncoder encoding.PasswordEncoder
		clock           pkgtime.Clock
		refreshTokenTTL time.Duration
		logger          log.Logger
	}
)

func NewAuthentication(
	users domain.UserRepo,
	refreshTokens domain.RefreshTokenRepo,
	accessTokens AccessTokens,
	passwordEncoder encoding.PasswordEncoder,
	clock pkgtime.Clock,
	refreshTokenTTL time.Duration,
	logger log.Logger,
) Authentication {
	return authenticationService{
		users:           users,
		refreshTokens:   refreshTokens,
		accessTokens:    accessTokens,
		passwordEncoder: passwordEncoder,
		clock:           clock,
		refreshTokenTTL: refreshTokenTTL,
		logger:          logger,
	}
}

func (s authenticationService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	if !s.passwordEncoder.CompareHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: *tokens, User: *user}, nil
}

func (s authenticationService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.refreshTokens.Take(ctx, refreshToken)
	if errors.Is(err, domain.ErrRefreshTokenNotFound) {
		return nil, ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("take refresh token: %w", err)
	}
	if token.IsExpired(s.clock.Now(ctx)) {
		return nil, ErrRefreshTokenInvalid
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s authenticationService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	_, err := s.refreshTokens.Take(ctx, refreshToken)
	if err != nil && !errors.Is(err, domain.ErrRefreshTokenNotFound) {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

func (s authenticationService) Authenticate(_ context.Context, token auth.Token) (auth.Authentication[Principal], error) {
	bearer, ok := token.(auth.BearerToken)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported token type %s", auth.ErrUnauthenticated, token.Type())
	}

	claims, err := s.accessTokens.Parse(string(bearer))
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject: %w", auth.ErrUnauthenticated, err)
	}

	principal := NewPrincipal(domain.UserID{UUID: userID}, claims.Username, claims.Roles)
	return auth.Auth[Principal]{AuthPrincipal: &principal}, nil
}

func (s authenticationService) PruneRefreshTokens(ctx context.Context) error {
	deleted, err := s.refreshTokens.DeleteExpired(ctx, s.clock.Now(ctx))
	if err != nil {
		return fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	if deleted > 0 {
		s.logger.WithField("count", deleted).Info(ctx, "expired refresh tokens deleted")
	}

	return nil
}

func (s authenticationService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, _, err := s.accessTokens.Issue(user.ID.String(), user.Username, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken := domain.RefreshToken{
		Value:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.clock.Now(ctx).Add(s.refreshTokenTTL),
	}
	err = s.refreshTokens.Store(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
