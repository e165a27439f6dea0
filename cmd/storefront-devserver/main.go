package main

import (
	"context"
	"time"

	"github.com/klwxsrx/go-storefront/internal/devbackend"
	"github.com/klwxsrx/go-storefront/internal/pkg/cmd"
	pkgcmd "github.com/klwxsrx/go-storefront/pkg/cmd"
	"github.com/klwxsrx/go-storefront/pkg/env"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/worker"
)

const refreshTokenPruningInterval = 10 * time.Minute

func main() {
	ctx, cancel := pkgcmd.WithTermination(context.Background())
	defer cancel()

	if err := env.LoadDotEnv(".env"); err != nil {
		panic(err)
	}

	infra := cmd.NewInfrastructureContainer(ctx, cmd.InfrastructureConfig{
		MetricsNamespace: "storefront_devserver",
		LogLevel:         log.LevelInfo,
	})
	defer infra.Close(ctx)

	logger := infra.Logger.MustLoad()
	defer pkgcmd.HandleAppPanic(ctx, logger)

	container := devbackend.NewDependencyContainer(ctx, devbackend.Config{
		JWTSecret:       []byte(env.Must(env.Parse[string]("DEVSERVER_JWT_SECRET"))),
		AccessTokenTTL:  env.Must(env.ParseOptional[time.Duration]("DEVSERVER_ACCESS_TOKEN_TTL", devbackend.DefaultAccessTokenTTL)),
		RefreshTokenTTL: env.Must(env.ParseOptional[time.Duration]("DEVSERVER_REFRESH_TOKEN_TTL", devbackend.DefaultRefreshTokenTTL)),
	}, infra.Logger)

	serverOpts := infra.HTTPServerOptions()
	serverOpts = append(serverOpts, container.ServerOptions()...)
	server := pkghttp.NewServer(
		env.Must(env.ParseOptional[string]("DEVSERVER_ADDRESS", pkghttp.DefaultServerAddress)),
		serverOpts...,
	)
	container.MustRegisterHTTPHandlers(server)

	logger.Info(ctx, "dev server started")
	worker.MustRunHub(ctx, logger,
		server.Listen,
		container.RefreshTokenPruner(refreshTokenPruningInterval, logger),
	)
}
