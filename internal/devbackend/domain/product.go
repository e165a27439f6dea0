package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type (
	ProductID struct{ uuid.UUID }

	Product struct {
		ID          ProductID
		Name        string
		Description string
		Category    string
		PriceCents  int64
		Stock       int
	}

	StockReservation struct {
		ProductID ProductID
		Quantity  int
	}

	ProductRepo interface {
		List(ctx context.Context) ([]Product, error)
		FindByID(ctx context.Context, id ProductID) (*Product, error)
		Store(ctx context.Context, product *Product) error
		Delete(ctx context.Context, id ProductID) error
		// Reserve decreases stock of all products at once or of none of them.
		Reserve(ctx context.Context, reservations []StockReservation) ([]Product, error)
		Release(ctx context.Context, reservations []StockReservation) error
	}
)
