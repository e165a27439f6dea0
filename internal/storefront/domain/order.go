package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrOrderNotCancellable = errors.New("order can not be cancelled")

type (
	OrderID struct{ uuid.UUID }

	OrderStatus string

	OrderLine struct {
		ProductID      ProductID
		Name           string
		UnitPriceCents int64
		Quantity       int
	}

	Order struct {
		ID         OrderID
		Status     OrderStatus
		Lines      []OrderLine
		TotalCents int64
		CreatedAt  time.Time
	}
)

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func ParseOrderID(value string) (OrderID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return OrderID{}, fmt.Errorf("parse order id %q: %w", value, err)
	}
	return OrderID{id}, nil
}

// CanCancel reports whether the order has not been shipped or cancelled yet.
func (o Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPaid
}
