package devbackend

import (
	"context"
	"fmt"
	"time"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/encoding"
	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
	"github.com/klwxsrx/go-storefront/internal/devbackend/infra/http"
	"github.com/klwxsrx/go-storefront/internal/devbackend/infra/memory"
	"github.com/klwxsrx/go-storefront/internal/devbackend/infra/password"
	"github.com/klwxsrx/go-storefront/pkg/auth"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/lazy"
	"github.com/klwxsrx/go-storefront/pkg/log"
	pkgtime "github.com/klwxsrx/go-storefront/pkg/time"
	"github.com/klwxsrx/go-storefront/pkg/worker"
)

const (
	DefaultAccessTokenTTL  = 5 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	jwtIssuer = "storefront-devserver"
)

type Config struct {
	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// PasswordCost is the bcrypt cost of seeded passwords, zero means the bcrypt default.
	PasswordCost int
	Clock        pkgtime.Clock
	SeedUsers    []memory.SeedUser
	SeedProducts []domain.Product
}

type DependencyContainer struct {
	AuthService lazy.Loader[service.Authentication]

	handlers lazy.Loader[handlers]
}

type handlers struct {
	public    []pkghttp.Handler
	protected []pkghttp.Handler
}

type repos struct {
	users         domain.UserRepo
	products      domain.ProductRepo
	orders        domain.OrderRepo
	refreshTokens domain.RefreshTokenRepo
}

func NewDependencyContainer(
	ctx context.Context,
	config Config,
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	config = withDefaults(config)

	passwordEncoder := lazy.New(func() (encoding.PasswordEncoder, error) {
		return password.NewEncoder(config.PasswordCost), nil
	})
	repositories := reposProvider(ctx, config, passwordEncoder)
	permissions := auth.NewPermissionService[service.Principal]()

	authService := lazy.New(func() (service.Authentication, error) {
		clock := config.Clock
		accessTokens := auth.NewJWTCodec(
			config.JWTSecret,
			jwtIssuer,
			config.AccessTokenTTL,
			auth.WithJWTClock(func() time.Time { return clock.Now(context.Background()) }),
		)

		r := repositories.MustLoad()
		return service.NewAuthentication(
			r.users,
			r.refreshTokens,
			accessTokens,
			passwordEncoder.MustLoad(),
			clock,
			config.RefreshTokenTTL,
			logger.MustLoad(),
		), nil
	})

	return DependencyContainer{
		AuthService: authService,
		handlers: lazy.New(func() (handlers, error) {
			r := repositories.MustLoad()
			catalog := service.NewCatalog(r.products, permissions)
			orders := service.NewOrders(r.orders, r.products, config.Clock)
			users := service.NewUsers(r.users, permissions)

			return handlers{
				public: []pkghttp.Handler{
					http.NewLoginHandler(authService.MustLoad()),
					http.NewRefreshHandler(authService.MustLoad()),
					http.NewLogoutHandler(authService.MustLoad()),
				},
				protected: []pkghttp.Handler{
					http.NewListProductsHandler(catalog),
					http.NewGetProductHandler(catalog),
					http.NewCreateProductHandler(catalog),
					http.NewUpdateProductHandler(catalog),
					http.NewDeleteProductHandler(catalog),
					http.NewCreateOrderHandler(orders),
					http.NewListOrdersHandler(orders),
					http.NewGetOrderHandler(orders),
					http.NewCancelOrderHandler(orders),
					http.NewGetProfileHandler(users),
					http.NewUpdateProfileHandler(users),
					http.NewListUsersHandler(users),
				},
			}, nil
		}),
	}
}

// ServerOptions authenticate bearer tokens and map service errors to status codes.
func (c DependencyContainer) ServerOptions() []pkghttp.ServerOption {
	return []pkghttp.ServerOption{
		pkghttp.WithAuth[service.Principal](c.AuthService.MustLoad(), pkghttp.BearerTokenProvider),
		http.WithErrorMapping(),
	}
}

func (c DependencyContainer) MustRegisterHTTPHandlers(registry pkghttp.HandlerRegistry) {
	h := c.handlers.MustLoad()
	for _, handler := range h.public {
		registry.Register(handler)
	}
	for _, handler := range h.protected {
		registry.Register(handler, pkghttp.WithAuthenticationRequirement())
	}
}

func (c DependencyContainer) RefreshTokenPruner(every time.Duration, logger log.Logger) worker.ErrorJob {
	return worker.PeriodicJob(func(ctx context.Context) error {
		return c.AuthService.MustLoad().PruneRefreshTokens(ctx)
	}, every, logger)
}

func withDefaults(config Config) Config {
	if config.AccessTokenTTL <= 0 {
		config.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if config.RefreshTokenTTL <= 0 {
		config.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	if config.Clock == nil {
		config.Clock = pkgtime.NewClock()
	}
	if config.SeedUsers == nil {
		config.SeedUsers = memory.DemoUsers
	}
	if config.SeedProducts == nil {
		config.SeedProducts = memory.DemoProducts
	}
	return config
}

func reposProvider(
	ctx context.Context,
	config Config,
	passwordEncoder lazy.Loader[encoding.PasswordEncoder],
) lazy.Loader[repos] {
	return lazy.New(func() (repos, error) {
		r := repos{
			users:         memory.NewUserRepo(),
			products:      memory.NewProductRepo(),
			orders:        memory.NewOrderRepo(),
			refreshTokens: memory.NewRefreshTokenRepo(),
		}

		err := memory.Seed(ctx, r.users, r.products, passwordEncoder.MustLoad(), config.SeedUsers, config.SeedProducts)
		if err != nil {
			return repos{}, fmt.Errorf("seed repositories: %w", err)
		}

		return r, nil
	})
}
