package devbackend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/klwxsrx/go-storefront/internal/devbackend"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/internal/devbackend/infra/memory"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/lazy"
	"github.com/klwxsrx/go-storefront/pkg/log"
	pkgtime "github.com/klwxsrx/go-storefront/pkg/time"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testBackend struct {
	url       string
	clock     *testClock
	container devbackend.DependencyContainer
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	clock := &testClock{now: time.Now()}
	container := devbackend.NewDependencyContainer(context.Background(), devbackend.Config{
		JWTSecret:       []byte("test-secret"),
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		PasswordCost:    bcrypt.MinCost,
		Clock:           pkgtime.NewClockWithSource(clock.Now),
		SeedProducts: []domain.Product{
			{Name: "Keyboard", Category: "peripherals", PriceCents: 4999, Stock: 2},
		},
	}, lazy.Value(log.NewStub()))

	server := pkghttp.NewServer("", container.ServerOptions()...)
	container.MustRegisterHTTPHandlers(server)

	httpServer := httptest.NewServer(server)
	t.Cleanup(httpServer.Close)

	return &testBackend{url: httpServer.URL, clock: clock, container: container}
}

type testUserAgent struct {
	t      *testing.T
	client *http.Client
	url    string
	token  string
}

func (b *testBackend) newUserAgent(t *testing.T) *testUserAgent {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testUserAgent{t: t, client: &http.Client{Jar: jar}, url: b.url}
}

func (a *testUserAgent) do(method, path string, in any, out any) int {
	a.t.Helper()
	var body bytes.Buffer
	if in != nil {
		require.NoError(a.t, json.NewEncoder(&body).Encode(in))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, a.url+path, &body)
	require.NoError(a.t, err)
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testUserAgent) login(username, password string) int {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	code := a.do(http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password}, &out)
	a.token = out.AccessToken
	return code
}

func mustParseURL(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}

func TestDevBackend_Auth(t *testing.T) {
	backend := newTestBackend(t)
	alice := memory.DemoUsers[0]

	t.Run("wrong_password", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		assert.Equal(t, http.StatusUnauthorized, agent.login(alice.Username, "wrong"))
	})

	t.Run("refresh_without_cookie", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		assert.Equal(t, http.StatusBadRequest, agent.do(http.MethodGet, "/auth/refresh", nil, nil))
	})

	t.Run("protected_without_token", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		assert.Equal(t, http.StatusUnauthorized, agent.do(http.MethodGet, "/products", nil, nil))
	})

	t.Run("expired_access_token_is_refreshed_with_cookie", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		require.Equal(t, http.StatusOK, agent.login(alice.Username, alice.Password))
		require.Equal(t, http.StatusOK, agent.do(http.MethodGet, "/products", nil, nil))

		backend.clock.Advance(2 * time.Minute)
		assert.Equal(t, http.StatusUnauthorized, agent.do(http.MethodGet, "/products", nil, nil))

		var out struct {
			AccessToken string `json:"access_token"`
		}
		require.Equal(t, http.StatusOK, agent.do(http.MethodGet, "/auth/refresh", nil, &out))
		require.NotEmpty(t, out.AccessToken)
		agent.token = out.AccessToken
		assert.Equal(t, http.StatusOK, agent.do(http.MethodGet, "/products", nil, nil))
	})

	t.Run("rotated_refresh_token_can_not_be_reused", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		require.Equal(t, http.StatusOK, agent.login(alice.Username, alice.Password))
		oldCookies := agent.client.Jar.Cookies(mustParseURL(t, backend.url+"/auth/refresh"))
		require.Len(t, oldCookies, 1)

		require.Equal(t, http.StatusOK, agent.do(http.MethodGet, "/auth/refresh", nil, nil))

		replay := backend.newUserAgent(t)
		replay.client.Jar.SetCookies(mustParseURL(t, backend.url+"/auth"), []*http.Cookie{{
			Name:  oldCookies[0].Name,
			Value: oldCookies[0].Value,
			Path:  "/auth",
		}})
		assert.Equal(t, http.StatusUnauthorized, replay.do(http.MethodGet, "/auth/refresh", nil, nil))
		assert.Equal(t, http.StatusOK, agent.do(http.MethodGet, "/auth/refresh", nil, nil))
	})

	t.Run("expired_refresh_token", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		require.Equal(t, http.StatusOK, agent.login(alice.Username, alice.Password))

		backend.clock.Advance(2 * time.Hour)
		assert.Equal(t, http.StatusUnauthorized, agent.do(http.MethodGet, "/auth/refresh", nil, nil))
	})

	t.Run("logout_revokes_refresh_token", func(t *testing.T) {
		agent := backend.newUserAgent(t)
		require.Equal(t, http.StatusOK, agent.login(alice.Username, alice.Password))

		assert.Equal(t, http.StatusNoContent, agent.do(http.MethodPost, "/auth/logout", nil, nil))
		assert.Equal(t, http.StatusBadRequest, agent.do(http.MethodGet, "/auth/refresh", nil, nil))
	})
}

func TestDevBackend_Business(t *testing.T) {
	backend := newTestBackend(t)
	alice, admin := memory.DemoUsers[0], memory.DemoUsers[1]

	customer := backend.newUserAgent(t)
	require.Equal(t, http.StatusOK, customer.login(alice.Username, alice.Password))
	administrator := backend.newUserAgent(t)
	require.Equal(t, http.StatusOK, administrator.login(admin.Username, admin.Password))

	var products []struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}
	require.Equal(t, http.StatusOK, customer.do(http.MethodGet, "/products", nil, &products))
	require.Len(t, products, 1)
	productID := products[0].ID

	t.Run("admin_endpoints_require_role", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, customer.do(http.MethodGet, "/users", nil, nil))
		assert.Equal(t, http.StatusForbidden, customer.do(http.MethodDelete, "/products/"+productID, nil, nil))

		var users []map[string]any
		assert.Equal(t, http.StatusOK, administrator.do(http.MethodGet, "/users", nil, &users))
		assert.Len(t, users, 2)
	})

	t.Run("order_lifecycle", func(t *testing.T) {
		items := map[string]any{"items": []map[string]any{{"product_id": productID, "quantity": 3}}}
		assert.Equal(t, http.StatusConflict, customer.do(http.MethodPost, "/orders", items, nil))

		var order struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			TotalCents int64  `json:"total_cents"`
		}
		items = map[string]any{"items": []map[string]any{{"product_id": productID, "quantity": 2}}}
		require.Equal(t, http.StatusCreated, customer.do(http.MethodPost, "/orders", items, &order))
		assert.Equal(t, "pending", order.Status)
		assert.Equal(t, int64(9998), order.TotalCents)

		assert.Equal(t, http.StatusNotFound, administrator.do(http.MethodGet, "/orders/"+order.ID, nil, nil))

		require.Equal(t, http.StatusOK, customer.do(http.MethodPost, "/orders/"+order.ID+"/cancel", nil, &order))
		assert.Equal(t, "cancelled", order.Status)
		assert.Equal(t, http.StatusConflict, customer.do(http.MethodPost, "/orders/"+order.ID+"/cancel", nil, nil))

		var product struct {
			Stock int `json:"stock"`
		}
		require.Equal(t, http.StatusOK, customer.do(http.MethodGet, "/products/"+productID, nil, &product))
		assert.Equal(t, 2, product.Stock)
	})

	t.Run("profile_update", func(t *testing.T) {
		var profile map[string]string
		in := map[string]string{"full_name": "Alice L.", "email": "alice@wonderland.example", "address": "Looking Glass House"}
		require.Equal(t, http.StatusOK, customer.do(http.MethodPut, "/profile", in, &profile))
		assert.Equal(t, "Alice L.", profile["full_name"])

		in["email"] = "broken"
		assert.Equal(t, http.StatusBadRequest, customer.do(http.MethodPut, "/profile", in, nil))
	})

	t.Run("unknown_product", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, customer.do(http.MethodGet, "/products/6a7d1e38-0c36-4cf8-9c55-2d5f5a8a2a31", nil, nil))
		assert.Equal(t, http.StatusBadRequest, customer.do(http.MethodGet, "/products/not-a-uuid", nil, nil))
	})
}

func TestDevBackend_PruneRefreshTokens(t *testing.T) {
	backend := newTestBackend(t)
	alice := memory.DemoUsers[0]

	agent := backend.newUserAgent(t)
	require.Equal(t, http.StatusOK, agent.login(alice.Username, alice.Password))

	backend.clock.Advance(2 * time.Hour)
	require.NoError(t, backend.container.AuthService.MustLoad().PruneRefreshTokens(context.Background()))

	backend.clock.Advance(-2 * time.Hour)
	assert.Equal(t, http.StatusUnauthorized, agent.do(http.MethodGet, "/auth/refresh", nil, nil))
}
