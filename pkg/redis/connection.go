package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/klwxsrx/go-storefront/pkg/log"
)

const defaultConnectionTimeout = 10 * time.Second

type Config struct {
	Address           string
	Password          string
	DB                int
	ConnectionTimeout time.Duration
}

type Client interface {
	goredis.UniversalClient
}

type client struct {
	*goredis.Client
	logger log.Logger
}

func NewClient(ctx context.Context, config Config, logger log.Logger) (Client, error) {
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = defaultConnectionTimeout
	}

	impl := goredis.NewClient(&goredis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 200 * time.Millisecond
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = config.ConnectionTimeout / 4
	eb.MaxElapsedTime = config.ConnectionTimeout

	err := backoff.Retry(func() error {
		return impl.Ping(ctx).Err()
	}, backoff.WithContext(eb, ctx))
	if err != nil {
		_ = impl.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", config.Address, err)
	}

	return &client{Client: impl, logger: logger}, nil
}

func (c *client) Close() error {
	err := c.Client.Close()
	if err != nil {
		c.logger.WithError(err).Error(context.Background(), "failed to close redis connection")
	}
	return err
}
