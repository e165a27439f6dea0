package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	storefrontbackendmock "github.com/klwxsrx/go-storefront/internal/storefront/app/backend/mock"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
)

var (
	keyboard = domain.Product{ID: domain.ProductID{UUID: uuid.New()}, Name: "Keyboard", Category: "peripherals", PriceCents: 4999, Stock: 3}
	mouse    = domain.Product{ID: domain.ProductID{UUID: uuid.New()}, Name: "Mouse", Category: "peripherals", PriceCents: 1999, Stock: 0}
	monitor  = domain.Product{ID: domain.ProductID{UUID: uuid.New()}, Name: "Monitor", Category: "displays", PriceCents: 19999, Stock: 5}
)

func TestCatalog_ListProducts_FiltersLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontbackendmock.NewCatalogAPI(ctrl)
	api.EXPECT().ListProducts(gomock.Any()).Return([]domain.Product{keyboard, mouse, monitor}, nil)

	products, err := service.NewCatalog(api).ListProducts(context.Background(), domain.ProductFilter{
		InStockOnly: true,
		Sort:        domain.ProductSortPriceDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{monitor, keyboard}, products)
}

func TestCatalog_GetProduct_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontbackendmock.NewCatalogAPI(ctrl)
	api.EXPECT().GetProduct(gomock.Any(), keyboard.ID).Return(nil, &backend.Error{StatusCode: 404, Message: "product not found"})

	_, err := service.NewCatalog(api).GetProduct(context.Background(), keyboard.ID)
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestCheckout_BuildCart(t *testing.T) {
	tests := []struct {
		name    string
		items   []backend.OrderItem
		catalog func(ctrl *gomock.Controller) backend.CatalogAPI
		expect  func(t *testing.T, cart *domain.Cart, err error)
	}{
		{
			name:  "success",
			items: []backend.OrderItem{{ProductID: keyboard.ID, Quantity: 2}, {ProductID: monitor.ID, Quantity: 1}},
			catalog: func(ctrl *gomock.Controller) backend.CatalogAPI {
				mock := storefrontbackendmock.NewCatalogAPI(ctrl)
				mock.EXPECT().GetProduct(gomock.Any(), keyboard.ID).Return(&keyboard, nil)
				mock.EXPECT().GetProduct(gomock.Any(), monitor.ID).Return(&monitor, nil)
				return mock
			},
			expect: func(t *testing.T, cart *domain.Cart, err error) {
				require.NoError(t, err)
				assert.Len(t, cart.Lines(), 2)
				assert.Equal(t, int64(2*4999+19999), cart.TotalCents())
			},
		},
		{
			name:  "insufficient_stock",
			items: []backend.OrderItem{{ProductID: mouse.ID, Quantity: 1}},
			catalog: func(ctrl *gomock.Controller) backend.CatalogAPI {
				mock := storefrontbackendmock.NewCatalogAPI(ctrl)
				mock.EXPECT().GetProduct(gomock.Any(), mouse.ID).Return(&mouse, nil)
				return mock
			},
			expect: func(t *testing.T, _ *domain.Cart, err error) {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			},
		},
		{
			name:  "invalid_quantity",
			items: []backend.OrderItem{{ProductID: keyboard.ID, Quantity: 0}},
			catalog: func(ctrl *gomock.Controller) backend.CatalogAPI {
				return storefrontbackendmock.NewCatalogAPI(ctrl)
			},
			expect: func(t *testing.T, _ *domain.Cart, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			},
		},
		{
			name: "empty",
			catalog: func(ctrl *gomock.Controller) backend.CatalogAPI {
				return storefrontbackendmock.NewCatalogAPI(ctrl)
			},
			expect: func(t *testing.T, _ *domain.Cart, err error) {
				assert.ErrorIs(t, err, domain.ErrEmptyCart)
			},
		},
		{
			name:  "error_when_product_lookup_fails",
			items: []backend.OrderItem{{ProductID: keyboard.ID, Quantity: 1}},
			catalog: func(ctrl *gomock.Controller) backend.CatalogAPI {
				mock := storefrontbackendmock.NewCatalogAPI(ctrl)
				mock.EXPECT().GetProduct(gomock.Any(), keyboard.ID).Return(nil, errors.New("unexpected"))
				return mock
			},
			expect: func(t *testing.T, _ *domain.Cart, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checkout := service.NewCheckout(tt.catalog(ctrl), storefrontbackendmock.NewOrderAPI(ctrl))

			cart, err := checkout.BuildCart(context.Background(), tt.items)
			tt.expect(t, cart, err)
		})
	}
}

func TestCheckout_PlaceOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(keyboard, 1))
	require.NoError(t, cart.Add(keyboard, 1))

	order := &domain.Order{ID: domain.OrderID{UUID: uuid.New()}, Status: domain.OrderStatusPending, TotalCents: 9998}
	orders := storefrontbackendmock.NewOrderAPI(ctrl)
	orders.EXPECT().CreateOrder(gomock.Any(), []backend.OrderItem{{ProductID: keyboard.ID, Quantity: 2}}).Return(order, nil)

	result, err := service.NewCheckout(storefrontbackendmock.NewCatalogAPI(ctrl), orders).PlaceOrder(context.Background(), cart)
	require.NoError(t, err)
	assert.Equal(t, order, result)
	assert.True(t, cart.IsEmpty())

	_, err = service.NewCheckout(storefrontbackendmock.NewCatalogAPI(ctrl), orders).PlaceOrder(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}
