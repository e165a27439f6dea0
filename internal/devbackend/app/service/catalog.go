package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
)

var ErrInvalidInput = errors.New("invalid input")

type (
	ProductData struct {
		Name        string
		Description string
		Category    string
		PriceCents  int64
		Stock       int
	}

	Catalog interface {
		List(ctx context.Context) ([]domain.Product, error)
		Get(ctx context.Context, id domain.ProductID) (*domain.Product, error)
		Create(ctx context.Context, data ProductData) (*domain.Product, error)
		Update(ctx context.Context, id domain.ProductID, data ProductData) (*domain.Product, error)
		Delete(ctx context.Context, id domain.ProductID) error
	}

	catalogService struct {
		products    domain.ProductRepo
		permissions auth.PermissionService[Principal]
	}
)

func NewCatalog(products domain.ProductRepo, permissions auth.PermissionService[Principal]) Catalog {
	return catalogService{
		products:    products,
		permissions: permissions,
	}
}

func (s catalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s catalogService) Get(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s catalogService) Create(ctx context.Context, data ProductData) (*domain.Product, error) {
	err := requireAdmin(ctx, s.permissions)
	if err != nil {
		return nil, err
	}

	err = data.validate()
	if err != nil {
		return nil, err
	}

	product := data.toProduct(domain.ProductID{UUID: uuid.New()})
	err = s.products.Store(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("store product: %w", err)
	}

	return &product, nil
}

func (s catalogService) Update(ctx context.Context, id domain.ProductID, data ProductData) (*domain.Product, error) {
	err := requireAdmin(ctx, s.permissions)
	if err != nil {
		return nil, err
	}

	err = data.validate()
	if err != nil {
		return nil, err
	}

	_, err = s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product := data.toProduct(id)
	err = s.products.Store(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("store product: %w", err)
	}

	return &product, nil
}

func (s catalogService) Delete(ctx context.Context, id domain.ProductID) error {
	err := requireAdmin(ctx, s.permissions)
	if err != nil {
		return err
	}

	return s.products.Delete(ctx, id)
}

func (d ProductData) validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("%w: name must be not empty", ErrInvalidInput)
	case d.PriceCents < 0:
		return fmt.Errorf("%w: price must be not negative", ErrInvalidInput)
	case d.Stock < 0:
		return fmt.Errorf("%w: stock must be not negative", ErrInvalidInput)
	default:
		return nil
	}
}

func (d ProductData) toProduct(id domain.ProductID) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Category:    strings.TrimSpace(d.Category),
		PriceCents:  d.PriceCents,
		Stock:       d.Stock,
	}
}
