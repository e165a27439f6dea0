package storefront_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/klwxsrx/go-storefront/internal/devbackend"
	devbackendmemory "github.com/klwxsrx/go-storefront/internal/devbackend/infra/memory"
	"github.com/klwxsrx/go-storefront/internal/storefront"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	storefronthttp "github.com/klwxsrx/go-storefront/internal/storefront/infra/http"
	"github.com/klwxsrx/go-storefront/pkg/auth"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/lazy"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/metric"
	"github.com/klwxsrx/go-storefront/pkg/session"
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

type testEnv struct {
	clock     *testClock
	refreshes *atomic.Int32
	store     session.Store
	container storefront.DependencyContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := &testClock{now: time.Now()}
	backendContainer := devbackend.NewDependencyContainer(context.Background(), devbackend.Config{
		JWTSecret:       []byte("test-secret"),
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		PasswordCost:    bcrypt.MinCost,
		Clock:           pkgtime.NewClockWithSource(clock.Now),
	}, lazy.Value(log.NewStub()))
	server := pkghttp.NewServer("", backendContainer.ServerOptions()...)
	backendContainer.MustRegisterHTTPHandlers(server)

	var refreshes atomic.Int32
	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == storefronthttp.DefaultRefreshPath {
			refreshes.Add(1)
		}
		server.ServeHTTP(w, r)
	}))
	t.Cleanup(httpServer.Close)

	store := session.NewMemoryStore()
	container := storefront.NewDependencyContainer(
		storefront.Config{
			APIURL:    httpServer.URL,
			AuthPaths: storefronthttp.DefaultAuthPaths(),
		},
		lazy.Value(store),
		lazy.Value(pkghttp.NewClientFactory(pkghttp.WithTimeout(5*time.Second))),
		lazy.Value(metric.NewMetricsStub()),
		lazy.Value(log.NewStub()),
	)

	return &testEnv{
		clock:     clock,
		refreshes: &refreshes,
		store:     store,
		container: container,
	}
}

func (e *testEnv) login(t *testing.T, user devbackendmemory.SeedUser) {
	t.Helper()
	_, err := e.container.AuthService.MustLoad().Login(context.Background(), user.Username, user.Password)
	require.NoError(t, err)
}

func TestStorefront_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, devbackendmemory.DemoUsers[0])
	ctx := context.Background()

	before, err := env.store.Token(ctx)
	require.NoError(t, err)

	env.clock.Advance(2 * time.Minute)

	catalog := env.container.CatalogService.MustLoad()
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = catalog.ListProducts(ctx, domain.ProductFilter{})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), env.refreshes.Load())

	after, err := env.store.Token(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, after)
	assert.NotEqual(t, before, after)
}

func TestStorefront_DashboardRecoversExpiredSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, devbackendmemory.DemoUsers[0])

	env.clock.Advance(2 * time.Minute)

	data, err := env.container.DashboardService.MustLoad().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data.Failures)
	assert.Equal(t, "Alice Liddell", data.Profile.FullName)
	assert.Len(t, data.Products, len(devbackendmemory.DemoProducts))
	assert.Equal(t, int32(1), env.refreshes.Load())
}

func TestStorefront_FailedRefreshClearsToken(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, devbackendmemory.DemoUsers[0])
	ctx := context.Background()

	env.clock.Advance(2 * time.Hour)

	_, err := env.container.OrdersService.MustLoad().List(ctx)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	assert.Equal(t, int32(1), env.refreshes.Load())

	token, err := env.store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := env.container.AuthService.MustLoad().CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestStorefront_LoginFailureDoesNotRefresh(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.container.AuthService.MustLoad().Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.Zero(t, env.refreshes.Load())
}

func TestStorefront_CheckoutAndCancel(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, devbackendmemory.DemoUsers[0])
	ctx := context.Background()

	products, err := env.container.CatalogService.MustLoad().ListProducts(ctx, domain.ProductFilter{
		Query:       "keyboard",
		InStockOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)

	checkout := env.container.CheckoutService.MustLoad()
	cart, err := checkout.BuildCart(ctx, []backend.OrderItem{{ProductID: products[0].ID, Quantity: 2}})
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 2*products[0].PriceCents, order.TotalCents)

	orders := env.container.OrdersService.MustLoad()
	cancelled, err := orders.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	_, err = orders.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
}

func TestStorefront_AdminRequiresRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	product := domain.Product{Name: "Webcam", Category: "peripherals", PriceCents: 5999, Stock: 4}

	env.login(t, devbackendmemory.DemoUsers[0])
	_, err := env.container.AdminService.MustLoad().CreateProduct(ctx, product)
	assert.ErrorIs(t, err, auth.ErrPermissionDenied)

	env.login(t, devbackendmemory.DemoUsers[1])
	created, err := env.container.AdminService.MustLoad().CreateProduct(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, "Webcam", created.Name)

	users, err := env.container.AdminService.MustLoad().ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(devbackendmemory.DemoUsers))

	require.NoError(t, env.container.AdminService.MustLoad().DeleteProduct(ctx, created.ID))
	_, err = env.container.CatalogService.MustLoad().GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestStorefront_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, devbackendmemory.DemoUsers[0])
	ctx := context.Background()

	require.NoError(t, env.container.AuthService.MustLoad().Logout(ctx))

	_, err := env.container.AuthService.MustLoad().CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)

	_, err = env.container.AccountService.MustLoad().Profile(ctx)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}
