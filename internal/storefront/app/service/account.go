package service

import (
	"context"
	"fmt"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
)

type Account interface {
	Profile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error)
}

type accountService struct {
	api backend.AccountAPI
}

func NewAccount(api backend.AccountAPI) Account {
	return accountService{api: api}
}

func (s accountService) Profile(ctx context.Context) (*domain.Profile, error) {
	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

func (s accountService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidProfile)
	}

	current, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	changed, err := update.ApplyTo(*current)
	if err != nil {
		return nil, err
	}

	profile, err := s.api.UpdateProfile(ctx, changed)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return profile, nil
}
