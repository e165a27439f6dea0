package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	sessionsql "github.com/klwxsrx/go-storefront/data/sql/session"
	"github.com/klwxsrx/go-storefront/pkg/env"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/lazy"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/metric"
	"github.com/klwxsrx/go-storefront/pkg/observability"
	"github.com/klwxsrx/go-storefront/pkg/redis"
	"github.com/klwxsrx/go-storefront/pkg/session"
	"github.com/klwxsrx/go-storefront/pkg/session/redisstore"
	"github.com/klwxsrx/go-storefront/pkg/session/sqlstore"
	"github.com/klwxsrx/go-storefront/pkg/sql"
)

type InfrastructureConfig struct {
	MetricsNamespace string
	LogWriter        io.Writer
	LogLevel         log.Level
	Session          SessionConfig
	ClientOptions    []pkghttp.ClientOption
}

type InfrastructureContainer struct {
	HTTPClientFactory lazy.Loader[pkghttp.ClientFactory]
	SessionStore      lazy.Loader[session.Store]
	DBMigrations      lazy.Loader[SQLMigrations]
	DB                lazy.Loader[sql.Database]
	Redis             lazy.Loader[redis.Client]
	Observer          lazy.Loader[observability.Observer]
	Prometheus        lazy.Loader[*metric.Prometheus]
	Metrics           lazy.Loader[metric.Metrics]
	Logger            lazy.Loader[log.Logger]
}

func NewInfrastructureContainer(ctx context.Context, config InfrastructureConfig) *InfrastructureContainer {
	logger := loggerProvider(config)
	prometheus := prometheusProvider(config)
	metrics := lazy.New(func() (metric.Metrics, error) {
		impl, err := prometheus.Load()
		if err != nil {
			return nil, err
		}
		return impl, nil
	})
	observer := observerProvider(logger)

	db := sqlDatabaseProvider(ctx, logger)
	dbMigrations := sqlMigrationsProvider(ctx, db, logger)
	redisClient := redisClientProvider(ctx, logger)

	return &InfrastructureContainer{
		HTTPClientFactory: httpClientFactoryProvider(config, observer, metrics, logger),
		SessionStore:      sessionStoreProvider(config.Session, db, dbMigrations, redisClient),
		DBMigrations:      dbMigrations,
		DB:                db,
		Redis:             redisClient,
		Observer:          observer,
		Prometheus:        prometheus,
		Metrics:           metrics,
		Logger:            logger,
	}
}

// HTTPServerOptions are the server middlewares shared by every service.
func (i *InfrastructureContainer) HTTPServerOptions() []pkghttp.ServerOption {
	return []pkghttp.ServerOption{
		pkghttp.WithHealthCheck(nil),
		pkghttp.WithMetricsHandler(i.Prometheus.MustLoad().Handler()),
		pkghttp.WithObservability(i.Observer.MustLoad(), pkghttp.DefaultRequestIDHeader),
		pkghttp.WithMetrics(i.Metrics.MustLoad()),
		pkghttp.WithLogging(i.Logger.MustLoad(), log.LevelInfo, log.LevelError),
	}
}

func (i *InfrastructureContainer) Close(ctx context.Context) {
	i.Redis.IfLoaded(func(client redis.Client) { _ = client.Close() })
	i.DB.IfLoaded(func(db sql.Database) { db.Close(ctx) })
}

func loggerProvider(config InfrastructureConfig) lazy.Loader[log.Logger] {
	return lazy.New(func() (log.Logger, error) {
		level := parseLogLevel(config.LogLevel)
		if config.LogWriter == nil {
			return log.New(level), nil
		}
		return log.NewWithWriter(config.LogWriter, level), nil
	})
}

func prometheusProvider(config InfrastructureConfig) lazy.Loader[*metric.Prometheus] {
	return lazy.New(func() (*metric.Prometheus, error) {
		return metric.NewPrometheus(config.MetricsNamespace), nil
	})
}

func observerProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[observability.Observer] {
	return lazy.New(func() (observability.Observer, error) {
		return observability.New(
			observability.WithFieldsLogging(logger.MustLoad(), observability.LogFieldRequestID),
		), nil
	})
}

func sqlDatabaseProvider(
	ctx context.Context,
	logger lazy.Loader[log.Logger],
) lazy.Loader[sql.Database] {
	return lazy.New(func() (sql.Database, error) {
		sqlConfig := sql.Config{
			DSN: sql.DSN{
				User:     env.Must(env.Parse[string]("DB_USER")),
				Password: env.Must(env.Parse[string]("DB_PASSWORD")),
				Address:  env.Must(env.Parse[string]("DB_ADDRESS")),
				Database: env.Must(env.Parse[string]("DB_NAME")),
			},
			ConnectionTimeout: env.Must(env.ParseOptional[time.Duration]("DB_CONNECTION_TIMEOUT", 0)),
		}

		db, err := sql.NewDatabase(ctx, sqlConfig, logger.MustLoad())
		if err != nil {
			return nil, fmt.Errorf("open sql connection: %w", err)
		}

		return db, nil
	})
}

func sqlMigrationsProvider(
	ctx context.Context,
	db lazy.Loader[sql.Database],
	logger lazy.Loader[log.Logger],
) lazy.Loader[SQLMigrations] {
	return lazy.New(func() (SQLMigrations, error) {
		return NewSQLMigrations(ctx, db.MustLoad(), logger.MustLoad()), nil
	})
}

func redisClientProvider(
	ctx context.Context,
	logger lazy.Loader[log.Logger],
) lazy.Loader[redis.Client] {
	return lazy.New(func() (redis.Client, error) {
		client, err := redis.NewClient(ctx, redis.Config{
			Address:  env.Must(env.Parse[string]("REDIS_ADDRESS")),
			Password: env.Must(env.ParseOptional[string]("REDIS_PASSWORD", "")),
			DB:       env.Must(env.ParseOptional[int]("REDIS_DB", 0)),
		}, logger.MustLoad())
		if err != nil {
			return nil, fmt.Errorf("open redis connection: %w", err)
		}

		return client, nil
	})
}

func sessionStoreProvider(
	config SessionConfig,
	db lazy.Loader[sql.Database],
	dbMigrations lazy.Loader[SQLMigrations],
	redisClient lazy.Loader[redis.Client],
) lazy.Loader[session.Store] {
	return lazy.New(func() (session.Store, error) {
		switch config.Store {
		case SessionStoreFile:
			return session.NewFileStore(config.File), nil
		case SessionStoreRedis:
			client, err := redisClient.Load()
			if err != nil {
				return nil, err
			}
			return redisstore.NewStore(client, config.Namespace, config.TTL), nil
		case SessionStorePostgres:
			database, err := db.Load()
			if err != nil {
				return nil, err
			}
			dbMigrations.MustLoad().MustRegister(sessionsql.Migrations)
			return sqlstore.NewStore(database, config.Namespace), nil
		default:
			return session.NewMemoryStore(), nil
		}
	})
}

func httpClientFactoryProvider(
	config InfrastructureConfig,
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[pkghttp.ClientFactory] {
	return lazy.New(func() (pkghttp.ClientFactory, error) {
		opts := []pkghttp.ClientOption{
			pkghttp.WithTimeout(env.Must(env.ParseOptional[time.Duration]("HTTP_CLIENT_TIMEOUT", 0))),
			pkghttp.WithRequestObservability(observer.MustLoad(), pkghttp.DefaultRequestIDHeader),
			pkghttp.WithRequestMetrics(metrics.MustLoad()),
			pkghttp.WithRequestLogging(logger.MustLoad(), log.LevelDebug, log.LevelWarn),
		}
		opts = append(opts, config.ClientOptions...)
		return pkghttp.NewClientFactory(opts...), nil
	})
}
