package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	pkgtime "github.com/klwxsrx/go-storefront/pkg/time"
)

type (
	Orders interface {
		Create(ctx context.Context, items []domain.StockReservation) (*domain.Order, error)
		List(ctx context.Context) ([]domain.Order, error)
		Get(ctx context.Context, id domain.OrderID) (*domain.Order, error)
		Cancel(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	}

	ordersService struct {
		orders   domain.OrderRepo
		products domain.ProductRepo
		clock    pkgtime.Clock
	}
)

func NewOrders(orders domain.OrderRepo, products domain.ProductRepo, clock pkgtime.Clock) Orders {
	return ordersService{
		orders:   orders,
		products: products,
		clock:    clock,
	}
}

func (s ordersService) Create(ctx context.Context, items []domain.StockReservation) (*domain.Order, error) {
	principal, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain items", ErrInvalidInput)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
	}

	products, err := s.products.Reserve(ctx, items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:        domain.OrderID{UUID: uuid.New()},
		UserID:    principal.UserID,
		Status:    domain.OrderStatusPending,
		Items:     make([]domain.OrderItem, 0, len(items)),
		CreatedAt: s.clock.Now(ctx),
	}
	for i, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      item.ProductID,
			Name:           products[i].Name,
			UnitPriceCents: products[i].PriceCents,
			Quantity:       item.Quantity,
		})
		order.TotalCents += products[i].PriceCents * int64(item.Quantity)
	}

	err = s.orders.Store(ctx, order)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("store order: %w", err),
			s.products.Release(ctx, items),
		)
	}

	return order, nil
}

func (s ordersService) List(ctx context.Context) ([]domain.Order, error) {
	principal, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	return s.orders.ListByUser(ctx, principal.UserID)
}

// Get hides orders of other users behind ErrOrderNotFound.
func (s ordersService) Get(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	principal, err := currentPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != principal.UserID {
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}

func (s ordersService) Cancel(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = order.Cancel()
	if err != nil {
		return nil, err
	}

	err = s.orders.Store(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	err = s.products.Release(ctx, order.Reservations())
	if err != nil {
		return nil, fmt.Errorf("release stock: %w", err)
	}

	return order, nil
}
