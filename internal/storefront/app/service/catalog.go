package service

import (
	"context"
	"fmt"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
)

type Catalog interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
}

type catalogService struct {
	api backend.CatalogAPI
}

func NewCatalog(api backend.CatalogAPI) Catalog {
	return catalogService{api: api}
}

// ListProducts fetches the whole catalog and filters it locally.
func (s catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return filter.Apply(products), nil
}

func (s catalogService) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %v: %w", id, err)
	}

	return product, nil
}
