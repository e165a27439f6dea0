package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/worker"
)

type Checkout interface {
	// BuildCart loads the requested products and checks their stock.
	BuildCart(ctx context.Context, items []backend.OrderItem) (*domain.Cart, error)
	PlaceOrder(ctx context.Context, cart *domain.Cart) (*domain.Order, error)
}

type checkoutService struct {
	catalog backend.CatalogAPI
	orders  backend.OrderAPI
}

func NewCheckout(catalog backend.CatalogAPI, orders backend.OrderAPI) Checkout {
	return checkoutService{
		catalog: catalog,
		orders:  orders,
	}
}

func (s checkoutService) BuildCart(ctx context.Context, items []backend.OrderItem) (*domain.Cart, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("product %v: %w", item.ProductID, domain.ErrInvalidQuantity)
		}
	}

	var mu sync.Mutex
	products := make(map[domain.ProductID]domain.Product, len(items))
	group := worker.NewFailFastGroup(ctx)
	for _, item := range items {
		group.Do(func(ctx context.Context) error {
			product, err := s.catalog.GetProduct(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("get product %v: %w", item.ProductID, err)
			}

			mu.Lock()
			defer mu.Unlock()
			products[item.ProductID] = *product
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		return nil, err
	}

	cart := domain.NewCart()
	for _, item := range items {
		err = cart.Add(products[item.ProductID], item.Quantity)
		if err != nil {
			return nil, err
		}
	}

	return cart, nil
}

func (s checkoutService) PlaceOrder(ctx context.Context, cart *domain.Cart) (*domain.Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	lines := cart.Lines()
	items := make([]backend.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, backend.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := s.orders.CreateOrder(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	cart.Clear()
	return order, nil
}
