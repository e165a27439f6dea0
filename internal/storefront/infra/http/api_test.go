package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	storefronthttp "github.com/klwxsrx/go-storefront/internal/storefront/infra/http"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
)

func newClient(t *testing.T, mux *http.ServeMux) pkghttp.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return pkghttp.NewClient(pkghttp.WithClientDestination("storefront-api", server.URL))
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuthAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in storefronthttp.LoginIn
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, storefronthttp.ErrorOut{Message: "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, storefronthttp.LoginOut{
			AccessToken: "access-1",
			User:        storefronthttp.UserOut{ID: "u1", Username: in.Username, Roles: []string{"customer"}},
		})
	})
	mux.HandleFunc("GET /auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, storefronthttp.RefreshOut{AccessToken: "access-2"})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api := storefronthttp.NewAuthAPI(newClient(t, mux), storefronthttp.DefaultAuthPaths())
	ctx := context.Background()

	result, err := api.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-1", string(result.Token))
	assert.Equal(t, domain.User{ID: "u1", Username: "alice", Roles: []string{"customer"}}, result.User)

	_, err = api.Login(ctx, "alice", "wrong")
	var backendErr *backend.Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusUnauthorized, backendErr.StatusCode)
	assert.Equal(t, "invalid credentials", backendErr.Message)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	token, err := api.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", string(token))

	assert.NoError(t, api.Logout(ctx))
}

func TestCatalogAPI(t *testing.T) {
	productID := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []storefronthttp.ProductData{{ID: productID, Name: "Keyboard", PriceCents: 4999, Stock: 3}})
	})
	mux.HandleFunc("GET /products/{productID}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("productID") != productID.String() {
			writeJSON(w, http.StatusNotFound, storefronthttp.ErrorOut{Message: "product not found"})
			return
		}
		writeJSON(w, http.StatusOK, storefronthttp.ProductData{ID: productID, Name: "Keyboard", PriceCents: 4999, Stock: 3})
	})
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		var in storefronthttp.ProductData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = uuid.New()
		writeJSON(w, http.StatusCreated, in)
	})
	mux.HandleFunc("DELETE /products/{productID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api := storefronthttp.NewCatalogAPI(newClient(t, mux))
	ctx := context.Background()

	products, err := api.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, productID, products[0].ID.UUID)

	product, err := api.GetProduct(ctx, domain.ProductID{UUID: productID})
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", product.Name)

	_, err = api.GetProduct(ctx, domain.ProductID{UUID: uuid.New()})
	assert.ErrorIs(t, err, backend.ErrNotFound)

	created, err := api.CreateProduct(ctx, domain.Product{Name: "Cable", PriceCents: 500, Stock: 10})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID.UUID)
	assert.Equal(t, "Cable", created.Name)

	assert.NoError(t, api.DeleteProduct(ctx, created.ID))
}

func TestOrderAPI(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()
	createdAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	order := storefronthttp.OrderOut{
		ID:         orderID,
		Status:     "pending",
		Items:      []storefronthttp.OrderLineOut{{ProductID: productID, Name: "Keyboard", UnitPriceCents: 4999, Quantity: 2}},
		TotalCents: 9998,
		CreatedAt:  createdAt,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var in storefronthttp.CreateOrderIn
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []storefronthttp.OrderItemIn{{ProductID: productID, Quantity: 2}}, in.Items)
		writeJSON(w, http.StatusCreated, order)
	})
	mux.HandleFunc("POST /orders/{orderID}/cancel", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusConflict, storefronthttp.ErrorOut{Message: "order already shipped"})
	})

	api := storefronthttp.NewOrderAPI(newClient(t, mux))
	ctx := context.Background()

	created, err := api.CreateOrder(ctx, []backend.OrderItem{{ProductID: domain.ProductID{UUID: productID}, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, created.Status)
	assert.Equal(t, int64(9998), created.TotalCents)
	assert.True(t, createdAt.Equal(created.CreatedAt))
	require.Len(t, created.Lines, 1)
	assert.Equal(t, 2, created.Lines[0].Quantity)

	_, err = api.CancelOrder(ctx, domain.OrderID{UUID: orderID})
	var backendErr *backend.Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusConflict, backendErr.StatusCode)
	assert.Equal(t, "order already shipped", backendErr.Message)
}

func TestAccountAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /profile", func(w http.ResponseWriter, r *http.Request) {
		var in storefronthttp.ProfileData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusOK, in)
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, storefronthttp.ErrorOut{Message: "permission denied"})
	})

	api := storefronthttp.NewAccountAPI(newClient(t, mux))
	ctx := context.Background()

	profile, err := api.UpdateProfile(ctx, domain.Profile{FullName: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.FullName)

	_, err = api.ListUsers(ctx)
	assert.ErrorIs(t, err, backend.ErrForbidden)
}
