package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
)

type productRepo struct {
	mu       sync.RWMutex
	products map[domain.ProductID]domain.Product
}

func NewProductRepo() domain.ProductRepo {
	return &productRepo{products: make(map[domain.ProductID]domain.Product)}
}

func (r *productRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, product)
	}
	slices.SortFunc(result, func(a, b domain.Product) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r *productRepo) FindByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *productRepo) Store(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product
	return nil
}

func (r *productRepo) Delete(_ context.Context, id domain.ProductID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *productRepo) Reserve(_ context.Context, reservations []domain.StockReservation) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requested := make(map[domain.ProductID]int, len(reservations))
	for _, reservation := range reservations {
		requested[reservation.ProductID] += reservation.Quantity
	}
	for id, quantity := range requested {
		product, ok := r.products[id]
		if !ok {
			return nil, fmt.Errorf("%w: %v", domain.ErrProductNotFound, id)
		}
		if product.Stock < quantity {
			return nil, fmt.Errorf("%w: %s has %d in stock, requested %d", domain.ErrInsufficientStock, product.Name, product.Stock, quantity)
		}
	}

	result := make([]domain.Product, 0, len(reservations))
	for id, quantity := range requested {
		product := r.products[id]
		product.Stock -= quantity
		r.products[id] = product
	}
	for _, reservation := range reservations {
		result = append(result, r.products[reservation.ProductID])
	}
	return result, nil
}

// Release returns stock of products that still exist.
func (r *productRepo) Release(_ context.Context, reservations []domain.StockReservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reservation := range reservations {
		product, ok := r.products[reservation.ProductID]
		if !ok {
			continue
		}
		product.Stock += reservation.Quantity
		r.products[reservation.ProductID] = product
	}
	return nil
}
