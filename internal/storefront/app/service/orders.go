package service

import (
	"context"
	"fmt"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
)

type Orders interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	Cancel(ctx context.Context, id domain.OrderID) (*domain.Order, error)
}

type ordersService struct {
	api backend.OrderAPI
}

func NewOrders(api backend.OrderAPI) Orders {
	return ordersService{api: api}
}

func (s ordersService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (s ordersService) Get(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %v: %w", id, err)
	}

	return order, nil
}

func (s ordersService) Cancel(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, fmt.Errorf("%w: order %v is %s", domain.ErrOrderNotCancellable, id, order.Status)
	}

	order, err = s.api.CancelOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cancel order %v: %w", id, err)
	}

	return order, nil
}
