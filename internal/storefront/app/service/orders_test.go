package service_test

import (
	"context"
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

func TestOrders_Cancel(t *testing.T) {
	orderID := domain.OrderID{UUID: uuid.New()}
	tests := []struct {
		name   string
		api    func(ctrl *gomock.Controller) backend.OrderAPI
		expect func(t *testing.T, order *domain.Order, err error)
	}{
		{
			name: "success",
			api: func(ctrl *gomock.Controller) backend.OrderAPI {
				mock := storefrontbackendmock.NewOrderAPI(ctrl)
				mock.EXPECT().GetOrder(gomock.Any(), orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderStatusPending}, nil)
				mock.EXPECT().CancelOrder(gomock.Any(), orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderStatusCancelled}, nil)
				return mock
			},
			expect: func(t *testing.T, order *domain.Order, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.OrderStatusCancelled, order.Status)
			},
		},
		{
			name: "not_cancellable_when_shipped",
			api: func(ctrl *gomock.Controller) backend.OrderAPI {
				mock := storefrontbackendmock.NewOrderAPI(ctrl)
				mock.EXPECT().GetOrder(gomock.Any(), orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderStatusShipped}, nil)
				return mock
			},
			expect: func(t *testing.T, _ *domain.Order, err error) {
				assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
			},
		},
		{
			name: "not_found",
			api: func(ctrl *gomock.Controller) backend.OrderAPI {
				mock := storefrontbackendmock.NewOrderAPI(ctrl)
				mock.EXPECT().GetOrder(gomock.Any(), orderID).Return(nil, &backend.Error{StatusCode: 404})
				return mock
			},
			expect: func(t *testing.T, _ *domain.Order, err error) {
				assert.ErrorIs(t, err, backend.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			order, err := service.NewOrders(tt.api(ctrl)).Cancel(context.Background(), orderID)
			tt.expect(t, order, err)
		})
	}
}
