//go:generate ${TOOLS_BIN}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "AuthAPI=AuthAPI,CatalogAPI=CatalogAPI,OrderAPI=OrderAPI,AccountAPI=AccountAPI"
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type (
	LoginResult struct {
		Token session.Token
		User  domain.User
	}

	OrderItem struct {
		ProductID domain.ProductID
		Quantity  int
	}

	AuthAPI interface {
		Login(ctx context.Context, username, password string) (*LoginResult, error)
		Refresh(ctx context.Context) (session.Token, error)
		Logout(ctx context.Context) error
	}

	CatalogAPI interface {
		ListProducts(ctx context.Context) ([]domain.Product, error)
		GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
		CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
		UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
		DeleteProduct(ctx context.Context, id domain.ProductID) error
	}

	OrderAPI interface {
		CreateOrder(ctx context.Context, items []OrderItem) (*domain.Order, error)
		ListOrders(ctx context.Context) ([]domain.Order, error)
		GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error)
		CancelOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	}

	AccountAPI interface {
		GetProfile(ctx context.Context) (*domain.Profile, error)
		UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
		ListUsers(ctx context.Context) ([]domain.User, error)
	}
)

// Error is a non-success backend response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}
