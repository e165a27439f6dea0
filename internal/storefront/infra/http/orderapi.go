package http

import (
	"context"
	"net/http"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

var (
	createOrderRoute = pkghttp.Route{Method: http.MethodPost, URL: "/orders"}
	listOrdersRoute  = pkghttp.Route{Method: http.MethodGet, URL: "/orders"}
	getOrderRoute    = pkghttp.Route{Method: http.MethodGet, URL: "/orders/{orderID}"}
	cancelOrderRoute = pkghttp.Route{Method: http.MethodPost, URL: "/orders/{orderID}/cancel"}
)

type orderAPI struct {
	client pkghttp.Client
}

func NewOrderAPI(client pkghttp.Client) backend.OrderAPI {
	return orderAPI{client: client}
}

func (a orderAPI) CreateOrder(ctx context.Context, items []backend.OrderItem) (*domain.Order, error) {
	req := a.client.NewRequest(ctx, createOrderRoute).
		SetJSONBody(toCreateOrderIn(items))

	return orderFrom(send[OrderOut](req, "orders.createOrder", http.StatusCreated))
}

func (a orderAPI) ListOrders(ctx context.Context) ([]domain.Order, error) {
	out, err := send[[]OrderOut](a.client.NewRequest(ctx, listOrdersRoute), "orders.listOrders", http.StatusOK)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(out))
	for _, order := range out {
		orders = append(orders, toDomainOrder(order))
	}
	return orders, nil
}

func (a orderAPI) GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	req := a.client.NewRequest(ctx, getOrderRoute).
		SetPathParam("orderID", id.String())

	return orderFrom(send[OrderOut](req, "orders.getOrder", http.StatusOK))
}

func (a orderAPI) CancelOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	req := a.client.NewRequest(ctx, cancelOrderRoute).
		SetPathParam("orderID", id.String())

	return orderFrom(send[OrderOut](req, "orders.cancelOrder", http.StatusOK))
}

func orderFrom(out OrderOut, err error) (*domain.Order, error) {
	if err != nil {
		return nil, err
	}

	order := toDomainOrder(out)
	return &order, nil
}
