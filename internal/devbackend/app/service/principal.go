package service

import (
	"context"
	"slices"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
)

type Principal struct {
	UserID   domain.UserID
	Username string
	roles    []string
}

func NewPrincipal(userID domain.UserID, username string, roles []string) Principal {
	return Principal{
		UserID:   userID,
		Username: username,
		roles:    slices.Clone(roles),
	}
}

func (p Principal) ID() string {
	return p.UserID.String()
}

func (p Principal) Roles() []string {
	return p.roles
}

func currentPrincipal(ctx context.Context) (Principal, error) {
	authentication, ok := auth.GetAuthentication[Principal](ctx)
	if !ok || !authentication.IsAuthenticated() {
		return Principal{}, auth.ErrUnauthenticated
	}

	return *authentication.Principal(), nil
}

func requireAdmin(ctx context.Context, permissions auth.PermissionService[Principal]) error {
	return permissions.Check(ctx, auth.RoleRequired[Principal](domain.RoleAdmin))
}
