package storefront

import (
	"context"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/infra/http"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/lazy"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/metric"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

const DestinationStorefrontAPI pkghttp.Destination = "storefront-api"

type Config struct {
	APIURL         string
	AuthPaths      http.AuthPaths
	SessionOptions []session.Option
	ClientOptions  []pkghttp.ClientOption
}

type DependencyContainer struct {
	SessionManager lazy.Loader[session.Manager]

	AuthService      lazy.Loader[service.Auth]
	CatalogService   lazy.Loader[service.Catalog]
	CheckoutService  lazy.Loader[service.Checkout]
	OrdersService    lazy.Loader[service.Orders]
	AccountService   lazy.Loader[service.Account]
	AdminService     lazy.Loader[service.Admin]
	DashboardService lazy.Loader[service.Dashboard]
}

func NewDependencyContainer(
	config Config,
	store lazy.Loader[session.Store],
	clientFactory lazy.Loader[pkghttp.ClientFactory],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	var authAPI lazy.Loader[backend.AuthAPI]
	manager := sessionManagerProvider(config, store, func() backend.AuthAPI { return authAPI.MustLoad() }, metrics, logger)
	client := clientProvider(config, clientFactory, manager, metrics, logger)
	authAPI = lazy.New(func() (backend.AuthAPI, error) {
		return http.NewAuthAPI(client.MustLoad(), config.AuthPaths), nil
	})

	catalogAPI := lazy.New(func() (backend.CatalogAPI, error) {
		return http.NewCatalogAPI(client.MustLoad()), nil
	})
	orderAPI := lazy.New(func() (backend.OrderAPI, error) {
		return http.NewOrderAPI(client.MustLoad()), nil
	})
	accountAPI := lazy.New(func() (backend.AccountAPI, error) {
		return http.NewAccountAPI(client.MustLoad()), nil
	})

	return DependencyContainer{
		SessionManager: manager,
		AuthService: lazy.New(func() (service.Auth, error) {
			return service.NewAuth(authAPI.MustLoad(), manager.MustLoad(), logger.MustLoad()), nil
		}),
		CatalogService: lazy.New(func() (service.Catalog, error) {
			return service.NewCatalog(catalogAPI.MustLoad()), nil
		}),
		CheckoutService: lazy.New(func() (service.Checkout, error) {
			return service.NewCheckout(catalogAPI.MustLoad(), orderAPI.MustLoad()), nil
		}),
		OrdersService: lazy.New(func() (service.Orders, error) {
			return service.NewOrders(orderAPI.MustLoad()), nil
		}),
		AccountService: lazy.New(func() (service.Account, error) {
			return service.NewAccount(accountAPI.MustLoad()), nil
		}),
		AdminService: lazy.New(func() (service.Admin, error) {
			return service.NewAdmin(catalogAPI.MustLoad(), accountAPI.MustLoad(), manager.MustLoad()), nil
		}),
		DashboardService: lazy.New(func() (service.Dashboard, error) {
			return service.NewDashboard(accountAPI.MustLoad(), orderAPI.MustLoad(), catalogAPI.MustLoad()), nil
		}),
	}
}

// sessionManagerProvider resolves the refresher on first refresh since the auth API itself depends on the manager.
func sessionManagerProvider(
	config Config,
	store lazy.Loader[session.Store],
	authAPI func() backend.AuthAPI,
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[session.Manager] {
	return lazy.New(func() (session.Manager, error) {
		sessionStore, err := store.Load()
		if err != nil {
			return nil, err
		}

		refresher := session.RefresherFunc(func(ctx context.Context) (session.Token, error) {
			return authAPI().Refresh(ctx)
		})

		opts := make([]session.Option, 0, len(config.SessionOptions)+2)
		opts = append(opts, session.WithLogger(logger.MustLoad()), session.WithMetrics(metrics.MustLoad()))
		opts = append(opts, config.SessionOptions...)
		return session.NewManager(sessionStore, refresher, opts...), nil
	})
}

func clientProvider(
	config Config,
	clientFactory lazy.Loader[pkghttp.ClientFactory],
	manager lazy.Loader[session.Manager],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[pkghttp.Client] {
	return lazy.New(func() (pkghttp.Client, error) {
		opts := make([]pkghttp.ClientOption, 0, len(config.ClientOptions)+1)
		opts = append(opts, config.ClientOptions...)
		opts = append(opts, pkghttp.WithBearerAuth(
			manager.MustLoad(),
			pkghttp.WithAuthExcludedPaths(config.AuthPaths.Excluded()...),
			pkghttp.WithAuthLogger(logger.MustLoad()),
			pkghttp.WithAuthMetrics(metrics.MustLoad()),
		))

		return clientFactory.MustLoad().InitClient(DestinationStorefrontAPI, config.APIURL, opts...), nil
	})
}
