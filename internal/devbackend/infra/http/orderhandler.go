package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

type (
	CreateOrderHandler struct {
		orders service.Orders
	}

	ListOrdersHandler struct {
		orders service.Orders
	}

	GetOrderHandler struct {
		orders service.Orders
	}

	CancelOrderHandler struct {
		orders service.Orders
	}
)

func NewCreateOrderHandler(orders service.Orders) CreateOrderHandler {
	return CreateOrderHandler{orders: orders}
}

func (h CreateOrderHandler) Method() string {
	return http.MethodPost
}

func (h CreateOrderHandler) Path() string {
	return "/orders"
}

func (h CreateOrderHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	in, err := pkghttp.ParseRequest(r, pkghttp.JSONBody[createOrderIn](), err)
	if err != nil {
		return err
	}

	order, err := h.orders.Create(r.Context(), in.toReservations())
	if err != nil {
		return err
	}

	w.SetStatusCode(http.StatusCreated)
	w.SetJSONBody(toOrderOut(*order))
	return nil
}

func NewListOrdersHandler(orders service.Orders) ListOrdersHandler {
	return ListOrdersHandler{orders: orders}
}

func (h ListOrdersHandler) Method() string {
	return http.MethodGet
}

func (h ListOrdersHandler) Path() string {
	return "/orders"
}

func (h ListOrdersHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) error {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		return err
	}

	out := make([]orderOut, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderOut(order))
	}
	w.SetJSONBody(out)
	return nil
}

func NewGetOrderHandler(orders service.Orders) GetOrderHandler {
	return GetOrderHandler{orders: orders}
}

func (h GetOrderHandler) Method() string {
	return http.MethodGet
}

func (h GetOrderHandler) Path() string {
	return "/orders/{orderID}"
}

func (h GetOrderHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	orderID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("orderID"), err)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(r.Context(), domain.OrderID{UUID: orderID})
	if err != nil {
		return err
	}

	w.SetJSONBody(toOrderOut(*order))
	return nil
}

func NewCancelOrderHandler(orders service.Orders) CancelOrderHandler {
	return CancelOrderHandler{orders: orders}
}

func (h CancelOrderHandler) Method() string {
	return http.MethodPost
}

func (h CancelOrderHandler) Path() string {
	return "/orders/{orderID}/cancel"
}

func (h CancelOrderHandler) Handle(w pkghttp.ResponseWriter, r *http.Request) (err error) {
	orderID, err := pkghttp.ParseRequest(r, pkghttp.PathParameter[uuid.UUID]("orderID"), err)
	if err != nil {
		return err
	}

	order, err := h.orders.Cancel(r.Context(), domain.OrderID{UUID: orderID})
	if err != nil {
		return err
	}

	w.SetJSONBody(toOrderOut(*order))
	return nil
}
