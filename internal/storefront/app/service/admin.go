package service

import (
	"context"
	"fmt"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

// Admin manages the catalog and lists users; every call requires the admin role.
type Admin interface {
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id domain.ProductID, update domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id domain.ProductID) error
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type adminService struct {
	catalog     backend.CatalogAPI
	account     backend.AccountAPI
	permissions permissionChecker
}

func NewAdmin(catalog backend.CatalogAPI, account backend.AccountAPI, manager session.Manager) Admin {
	return adminService{
		catalog:     catalog,
		account:     account,
		permissions: newPermissionChecker(manager),
	}
}

func (s adminService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	err = product.Validate()
	if err != nil {
		return nil, err
	}

	created, err := s.catalog.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return created, nil
}

func (s adminService) UpdateProduct(ctx context.Context, id domain.ProductID, update domain.ProductUpdate) (*domain.Product, error) {
	err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidProduct)
	}

	current, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %v: %w", id, err)
	}

	changed, err := update.ApplyTo(*current)
	if err != nil {
		return nil, err
	}

	updated, err := s.catalog.UpdateProduct(ctx, changed)
	if err != nil {
		return nil, fmt.Errorf("update product %v: %w", id, err)
	}

	return updated, nil
}

func (s adminService) DeleteProduct(ctx context.Context, id domain.ProductID) error {
	err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	err = s.catalog.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %v: %w", id, err)
	}

	return nil
}

func (s adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.account.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (s adminService) requireAdmin(ctx context.Context) error {
	return s.permissions.Check(ctx, auth.RoleRequired[principal](domain.RoleAdmin))
}
