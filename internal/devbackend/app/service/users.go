package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
)

type (
	Users interface {
		Current(ctx context.Context) (*domain.User, error)
		UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.User, error)
		List(ctx context.Context) ([]domain.User, error)
	}

	usersService struct {
		users       domain.UserRepo
		permissions auth.PermissionService[Principal]
	}
)

func NewUsers(users domain.UserRepo, permissions auth.PermissionService[Principal]) Users {
	return usersService{
		users:       users,
		permissions: permissions,
	}
}

func (s usersService) Current(ctx context.Context) (*domain.User, error) {
	principal, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, principal.UserID)
}

func (s usersService) UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	profile.FullName = strings.TrimSpace(profile.FullName)
	if profile.FullName == "" {
		return nil, fmt.Errorf("%w: full name must be not empty", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(profile.Email); err != nil {
		return nil, fmt.Errorf("%w: email: %w", ErrInvalidInput, err)
	}

	user, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	user.Profile = profile
	err = s.users.Store(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	return user, nil
}

func (s usersService) List(ctx context.Context) ([]domain.User, error) {
	err := requireAdmin(ctx, s.permissions)
	if err != nil {
		return nil, err
	}

	return s.users.List(ctx)
}
