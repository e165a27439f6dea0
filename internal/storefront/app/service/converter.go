package service

import (
	"slices"

	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

func identityFromUser(user domain.User) *session.Identity {
	return &session.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    slices.Clone(user.Roles),
	}
}

func userFromIdentity(identity session.Identity) *domain.User {
	return &domain.User{
		ID:       identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
		Roles:    slices.Clone(identity.Roles),
	}
}
