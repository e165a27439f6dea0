package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
)

type orderRepo struct {
	mu     sync.RWMutex
	orders map[domain.OrderID]domain.Order
}

func NewOrderRepo() domain.OrderRepo {
	return &orderRepo{orders: make(map[domain.OrderID]domain.Order)}
}

func (r *orderRepo) FindByID(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID domain.UserID) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, *cloneOrder(order))
		}
	}
	slices.SortFunc(result, func(a, b domain.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (r *orderRepo) Store(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = *cloneOrder(*order)
	return nil
}

func cloneOrder(order domain.Order) *domain.Order {
	order.Items = slices.Clone(order.Items)
	return &order
}
