package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Auth interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type authService struct {
	api     backend.AuthAPI
	manager session.Manager
	logger  log.Logger
}

func NewAuth(api backend.AuthAPI, manager session.Manager, logger log.Logger) Auth {
	return authService{
		api:     api,
		manager: manager,
		logger:  logger,
	}
}

func (s authService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidCredentials)
	}

	result, err := s.api.Login(ctx, username, password)
	if errors.Is(err, backend.ErrUnauthorized) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	err = s.manager.Start(ctx, result.Token, identityFromUser(result.User))
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	return &result.User, nil
}

// Logout ends the local session even if the backend call fails.
func (s authService) Logout(ctx context.Context) error {
	apiErr := s.api.Logout(ctx)
	if apiErr != nil {
		s.logger.WithError(apiErr).Warn(ctx, "backend logout failed, ending local session anyway")
	}

	err := s.manager.End(ctx, session.ErrLoggedOut)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	return nil
}

func (s authService) CurrentUser(ctx context.Context) (*domain.User, error) {
	identity, err := s.manager.Identity(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session identity: %w", err)
	}
	if identity == nil {
		return nil, ErrNotLoggedIn
	}

	return userFromIdentity(*identity), nil
}
