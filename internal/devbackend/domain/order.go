package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order can not be cancelled")
)

type (
	OrderID struct{ uuid.UUID }

	OrderStatus string

	OrderItem struct {
		ProductID      ProductID
		Name           string
		UnitPriceCents int64
		Quantity       int
	}

	Order struct {
		ID         OrderID
		UserID     UserID
		Status     OrderStatus
		Items      []OrderItem
		TotalCents int64
		CreatedAt  time.Time
	}

	OrderRepo interface {
		FindByID(ctx context.Context, id OrderID) (*Order, error)
		ListByUser(ctx context.Context, userID UserID) ([]Order, error)
		Store(ctx context.Context, order *Order) error
	}
)

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusPaid {
		return ErrOrderNotCancellable
	}

	o.Status = OrderStatusCancelled
	return nil
}

func (o *Order) Reservations() []StockReservation {
	result := make([]StockReservation, 0, len(o.Items))
	for _, item := range o.Items {
		result = append(result, StockReservation{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return result
}
