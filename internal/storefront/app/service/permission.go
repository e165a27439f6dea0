package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/klwxsrx/go-storefront/pkg/auth"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

type principal struct {
	identity session.Identity
}

func (p principal) ID() string {
	return p.identity.ID
}

func (p principal) Roles() []string {
	return p.identity.Roles
}

// permissionChecker evaluates permissions against the identity cached at login.
type permissionChecker struct {
	manager     session.Manager
	permissions auth.PermissionService[principal]
}

func newPermissionChecker(manager session.Manager) permissionChecker {
	return permissionChecker{
		manager:     manager,
		permissions: auth.NewPermissionService[principal](),
	}
}

func (c permissionChecker) Check(ctx context.Context, permission auth.Permission[principal]) error {
	identity, err := c.manager.Identity(ctx)
	if err != nil {
		return fmt.Errorf("get session identity: %w", err)
	}

	var p *principal
	if identity != nil {
		p = &principal{identity: *identity}
	}

	ctx = auth.WithAuthentication[principal](ctx, auth.Auth[principal]{AuthPrincipal: p})
	err = c.permissions.Check(ctx, permission)
	if errors.Is(err, auth.ErrUnauthenticated) {
		return fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
	}

	return err
}
